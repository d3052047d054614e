package app

import (
	"fmt"

	cryptoService "github.com/allisson/kyc/internal/crypto/service"
	kycHTTP "github.com/allisson/kyc/internal/kyc/http"
	kycRepository "github.com/allisson/kyc/internal/kyc/repository"
	kycUseCase "github.com/allisson/kyc/internal/kyc/usecase"
)

// FieldCipher returns the field cipher used to encrypt sensitive record fields.
func (c *Container) FieldCipher() cryptoService.FieldCipher {
	c.fieldCipherInit.Do(func() {
		c.fieldCipher = c.initFieldCipher()
	})
	return c.fieldCipher
}

// HashService returns the hash service used for PAN fingerprints.
func (c *Container) HashService() cryptoService.HashService {
	c.hashServiceInit.Do(func() {
		c.hashService = cryptoService.NewSHA256HashService()
	})
	return c.hashService
}

// RecordRepository returns the KYC record repository instance.
func (c *Container) RecordRepository() (kycUseCase.RecordRepository, error) {
	var err error
	c.recordRepoInit.Do(func() {
		c.recordRepo, err = c.initRecordRepository()
		if err != nil {
			c.initErrors["recordRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordRepo"]; exists {
		return nil, storedErr
	}
	return c.recordRepo, nil
}

// FingerprintRepository returns the PAN fingerprint repository instance.
func (c *Container) FingerprintRepository() (kycUseCase.FingerprintRepository, error) {
	var err error
	c.fingerprintRepoInit.Do(func() {
		c.fingerprintRepo, err = c.initFingerprintRepository()
		if err != nil {
			c.initErrors["fingerprintRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fingerprintRepo"]; exists {
		return nil, storedErr
	}
	return c.fingerprintRepo, nil
}

// RecordUseCase returns the KYC record use case instance.
func (c *Container) RecordUseCase() (kycUseCase.RecordUseCase, error) {
	var err error
	c.recordUseCaseInit.Do(func() {
		c.recordUseCase, err = c.initRecordUseCase()
		if err != nil {
			c.initErrors["recordUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordUseCase"]; exists {
		return nil, storedErr
	}
	return c.recordUseCase, nil
}

// RecordHandler returns the KYC record HTTP handler instance.
func (c *Container) RecordHandler() (*kycHTTP.RecordHandler, error) {
	var err error
	c.recordHandlerInit.Do(func() {
		c.recordHandler, err = c.initRecordHandler()
		if err != nil {
			c.initErrors["recordHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordHandler"]; exists {
		return nil, storedErr
	}
	return c.recordHandler, nil
}

// initFieldCipher creates the field cipher from the configured key material.
func (c *Container) initFieldCipher() cryptoService.FieldCipher {
	logger := c.Logger()

	if c.config.UsesInsecureDefaultKey() {
		logger.Warn("ENCRYPTION_KEY is not set, using the insecure built-in default; " +
			"set a real key before handling production data")
	}

	return cryptoService.NewAESCBCFieldCipher(c.config.EncryptionKey, c.config.EncryptionKeySalt, logger)
}

// initRecordRepository creates the record repository for the configured driver.
func (c *Container) initRecordRepository() (kycUseCase.RecordRepository, error) {
	if c.config.DBDriver == "memory" {
		return kycRepository.NewMemoryRecordRepository(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for record repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return kycRepository.NewMySQLRecordRepository(db), nil
	case "postgres":
		return kycRepository.NewPostgreSQLRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initFingerprintRepository creates the fingerprint repository for the configured driver.
func (c *Container) initFingerprintRepository() (kycUseCase.FingerprintRepository, error) {
	if c.config.DBDriver == "memory" {
		return kycRepository.NewMemoryFingerprintRepository(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for fingerprint repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return kycRepository.NewMySQLFingerprintRepository(db), nil
	case "postgres":
		return kycRepository.NewPostgreSQLFingerprintRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRecordUseCase creates the record use case with all its dependencies,
// wrapped with the metrics decorator when metrics are enabled.
func (c *Container) initRecordUseCase() (kycUseCase.RecordUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for record use case: %w", err)
	}

	recordRepo, err := c.RecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get record repository for record use case: %w", err)
	}

	fingerprintRepo, err := c.FingerprintRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get fingerprint repository for record use case: %w", err)
	}

	policy := kycUseCase.Policy{
		RequireAadhaar:     c.config.RequireAadhaar,
		RecheckPanOnUpdate: c.config.RecheckPanOnUpdate,
		FreePanOnDelete:    c.config.FreePanOnDelete,
	}

	useCase := kycUseCase.NewRecordUseCase(
		txManager,
		recordRepo,
		fingerprintRepo,
		c.FieldCipher(),
		c.HashService(),
		policy,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for record use case: %w", err)
		}
		useCase = kycUseCase.NewRecordUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}

// initRecordHandler creates the record HTTP handler.
func (c *Container) initRecordHandler() (*kycHTTP.RecordHandler, error) {
	useCase, err := c.RecordUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get record use case for record handler: %w", err)
	}

	return kycHTTP.NewRecordHandler(useCase, c.Logger()), nil
}

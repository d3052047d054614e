// Package repository implements data persistence for KYC records and the
// PAN fingerprint index, with dual database support (PostgreSQL and MySQL)
// plus an in-memory variant for tests and local development.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/kyc/internal/crypto/domain"
	"github.com/allisson/kyc/internal/database"
	apperrors "github.com/allisson/kyc/internal/errors"
	kycDomain "github.com/allisson/kyc/internal/kyc/domain"
)

// PostgreSQLRecordRepository implements KYC record persistence for PostgreSQL databases.
type PostgreSQLRecordRepository struct {
	db *sql.DB
}

// NewPostgreSQLRecordRepository creates a new PostgreSQL record repository instance.
func NewPostgreSQLRecordRepository(db *sql.DB) *PostgreSQLRecordRepository {
	return &PostgreSQLRecordRepository{db: db}
}

// Create inserts a new KYC record into the PostgreSQL database.
func (p *PostgreSQLRecordRepository) Create(ctx context.Context, record *kycDomain.Record) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO kyc_records (id, customer_ref, government_id, date_of_birth, pan, aadhaar,
			  pan_fingerprint, address, status, notes, encryption_scheme, submitted_ip, user_agent,
			  created_at, updated_at, verified_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.CustomerRef,
		record.GovernmentID,
		record.DateOfBirth,
		record.Pan,
		record.Aadhaar,
		record.PanFingerprint,
		record.Address,
		string(record.Status),
		record.Notes,
		string(record.EncryptionScheme),
		record.SubmittedIP,
		record.UserAgent,
		record.CreatedAt,
		record.UpdatedAt,
		record.VerifiedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create kyc record")
	}
	return nil
}

// Get retrieves a KYC record by its ID.
func (p *PostgreSQLRecordRepository) Get(
	ctx context.Context,
	recordID uuid.UUID,
) (*kycDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, customer_ref, government_id, date_of_birth, pan, aadhaar, pan_fingerprint,
			  address, status, notes, encryption_scheme, submitted_ip, user_agent, created_at,
			  updated_at, verified_at
			  FROM kyc_records
			  WHERE id = $1`

	record, err := scanRecord(querier.QueryRowContext(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kycDomain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get kyc record")
	}
	return record, nil
}

// Update persists the mutable fields of an existing KYC record.
func (p *PostgreSQLRecordRepository) Update(ctx context.Context, record *kycDomain.Record) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE kyc_records
			  SET customer_ref = $1, government_id = $2, date_of_birth = $3, pan = $4, aadhaar = $5,
			  pan_fingerprint = $6, address = $7, status = $8, notes = $9, encryption_scheme = $10,
			  updated_at = $11, verified_at = $12
			  WHERE id = $13`

	result, err := querier.ExecContext(
		ctx,
		query,
		record.CustomerRef,
		record.GovernmentID,
		record.DateOfBirth,
		record.Pan,
		record.Aadhaar,
		record.PanFingerprint,
		record.Address,
		string(record.Status),
		record.Notes,
		string(record.EncryptionScheme),
		record.UpdatedAt,
		record.VerifiedAt,
		record.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update kyc record")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to update kyc record")
	}
	if affected == 0 {
		return kycDomain.ErrRecordNotFound
	}
	return nil
}

// Delete removes a KYC record by its ID.
func (p *PostgreSQLRecordRepository) Delete(ctx context.Context, recordID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM kyc_records WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, recordID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete kyc record")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to delete kyc record")
	}
	if affected == 0 {
		return kycDomain.ErrRecordNotFound
	}
	return nil
}

// List retrieves KYC records ordered by creation time descending with pagination.
func (p *PostgreSQLRecordRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*kycDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, customer_ref, government_id, date_of_birth, pan, aadhaar, pan_fingerprint,
			  address, status, notes, encryption_scheme, submitted_ip, user_agent, created_at,
			  updated_at, verified_at
			  FROM kyc_records
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list kyc records")
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*kycDomain.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan kyc record")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list kyc records")
	}
	return records, nil
}

// PostgreSQLFingerprintRepository implements the PAN fingerprint index for
// PostgreSQL databases. The pan_fingerprints table carries a unique
// constraint on the fingerprint column; Create maps its violation to
// ErrDuplicatePan.
type PostgreSQLFingerprintRepository struct {
	db *sql.DB
}

// NewPostgreSQLFingerprintRepository creates a new PostgreSQL fingerprint repository instance.
func NewPostgreSQLFingerprintRepository(db *sql.DB) *PostgreSQLFingerprintRepository {
	return &PostgreSQLFingerprintRepository{db: db}
}

// Create inserts a new fingerprint entry.
func (p *PostgreSQLFingerprintRepository) Create(
	ctx context.Context,
	fingerprint string,
	recordID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO pan_fingerprints (fingerprint, record_id, created_at) VALUES ($1, $2, $3)`

	_, err := querier.ExecContext(ctx, query, fingerprint, recordID, time.Now().UTC())
	if err != nil {
		if database.IsUniqueViolation(err) {
			return kycDomain.ErrDuplicatePan
		}
		return apperrors.Wrap(err, "failed to create pan fingerprint")
	}
	return nil
}

// Exists reports whether a fingerprint is already registered.
func (p *PostgreSQLFingerprintRepository) Exists(
	ctx context.Context,
	fingerprint string,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS(SELECT 1 FROM pan_fingerprints WHERE fingerprint = $1)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, fingerprint).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check pan fingerprint")
	}
	return exists, nil
}

// DeleteByRecordID removes the fingerprint entries belonging to a record.
func (p *PostgreSQLFingerprintRepository) DeleteByRecordID(
	ctx context.Context,
	recordID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM pan_fingerprints WHERE record_id = $1`

	if _, err := querier.ExecContext(ctx, query, recordID); err != nil {
		return apperrors.Wrap(err, "failed to delete pan fingerprint")
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*kycDomain.Record, error) {
	var record kycDomain.Record
	var status, scheme string

	err := row.Scan(
		&record.ID,
		&record.CustomerRef,
		&record.GovernmentID,
		&record.DateOfBirth,
		&record.Pan,
		&record.Aadhaar,
		&record.PanFingerprint,
		&record.Address,
		&status,
		&record.Notes,
		&scheme,
		&record.SubmittedIP,
		&record.UserAgent,
		&record.CreatedAt,
		&record.UpdatedAt,
		&record.VerifiedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Status = kycDomain.VerificationStatus(status)
	record.EncryptionScheme = cryptoDomain.Scheme(scheme)
	return &record, nil
}

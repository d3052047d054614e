package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/kyc/internal/database"
	apperrors "github.com/allisson/kyc/internal/errors"
	kycDomain "github.com/allisson/kyc/internal/kyc/domain"
)

// MySQLRecordRepository implements KYC record persistence for MySQL databases.
type MySQLRecordRepository struct {
	db *sql.DB
}

// NewMySQLRecordRepository creates a new MySQL record repository instance.
func NewMySQLRecordRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db}
}

// Create inserts a new KYC record into the MySQL database.
func (m *MySQLRecordRepository) Create(ctx context.Context, record *kycDomain.Record) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO kyc_records (id, customer_ref, government_id, date_of_birth, pan, aadhaar,
			  pan_fingerprint, address, status, notes, encryption_scheme, submitted_ip, user_agent,
			  created_at, updated_at, verified_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID.String(),
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
func (m *MySQLRecordRepository) Get(
	ctx context.Context,
	recordID uuid.UUID,
) (*kycDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, customer_ref, government_id, date_of_birth, pan, aadhaar, pan_fingerprint,
			  address, status, notes, encryption_scheme, submitted_ip, user_agent, created_at,
			  updated_at, verified_at
			  FROM kyc_records
			  WHERE id = ?`

	record, err := scanRecord(querier.QueryRowContext(ctx, query, recordID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kycDomain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get kyc record")
	}
	return record, nil
}

// Update persists the mutable fields of an existing KYC record.
func (m *MySQLRecordRepository) Update(ctx context.Context, record *kycDomain.Record) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE kyc_records
			  SET customer_ref = ?, government_id = ?, date_of_birth = ?, pan = ?, aadhaar = ?,
			  pan_fingerprint = ?, address = ?, status = ?, notes = ?, encryption_scheme = ?,
			  updated_at = ?, verified_at = ?
			  WHERE id = ?`

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
		record.ID.String(),
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
func (m *MySQLRecordRepository) Delete(ctx context.Context, recordID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM kyc_records WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, recordID.String())
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
func (m *MySQLRecordRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*kycDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, customer_ref, government_id, date_of_birth, pan, aadhaar, pan_fingerprint,
			  address, status, notes, encryption_scheme, submitted_ip, user_agent, created_at,
			  updated_at, verified_at
			  FROM kyc_records
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

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

// MySQLFingerprintRepository implements the PAN fingerprint index for MySQL
// databases.
type MySQLFingerprintRepository struct {
	db *sql.DB
}

// NewMySQLFingerprintRepository creates a new MySQL fingerprint repository instance.
func NewMySQLFingerprintRepository(db *sql.DB) *MySQLFingerprintRepository {
	return &MySQLFingerprintRepository{db: db}
}

// Create inserts a new fingerprint entry.
func (m *MySQLFingerprintRepository) Create(
	ctx context.Context,
	fingerprint string,
	recordID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO pan_fingerprints (fingerprint, record_id, created_at) VALUES (?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, fingerprint, recordID.String(), time.Now().UTC())
	if err != nil {
		if database.IsUniqueViolation(err) {
			return kycDomain.ErrDuplicatePan
		}
		return apperrors.Wrap(err, "failed to create pan fingerprint")
	}
	return nil
}

// Exists reports whether a fingerprint is already registered.
func (m *MySQLFingerprintRepository) Exists(
	ctx context.Context,
	fingerprint string,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS(SELECT 1 FROM pan_fingerprints WHERE fingerprint = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, fingerprint).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check pan fingerprint")
	}
	return exists, nil
}

// DeleteByRecordID removes the fingerprint entries belonging to a record.
func (m *MySQLFingerprintRepository) DeleteByRecordID(
	ctx context.Context,
	recordID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM pan_fingerprints WHERE record_id = ?`

	if _, err := querier.ExecContext(ctx, query, recordID.String()); err != nil {
		return apperrors.Wrap(err, "failed to delete pan fingerprint")
	}
	return nil
}

package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	kycDomain "github.com/allisson/kyc/internal/kyc/domain"
)

// MemoryRecordRepository is an in-memory RecordRepository for tests and
// local development. It is safe for concurrent use.
type MemoryRecordRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*kycDomain.Record
}

// NewMemoryRecordRepository creates an empty in-memory record repository.
func NewMemoryRecordRepository() *MemoryRecordRepository {
	return &MemoryRecordRepository{records: make(map[uuid.UUID]*kycDomain.Record)}
}

// Create stores a copy of the record.
func (m *MemoryRecordRepository) Create(ctx context.Context, record *kycDomain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *record
	m.records[record.ID] = &clone
	return nil
}

// Get returns a copy of the record or ErrRecordNotFound.
func (m *MemoryRecordRepository) Get(
	ctx context.Context,
	recordID uuid.UUID,
) (*kycDomain.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[recordID]
	if !ok {
		return nil, kycDomain.ErrRecordNotFound
	}
	clone := *record
	return &clone, nil
}

// Update replaces a stored record.
func (m *MemoryRecordRepository) Update(ctx context.Context, record *kycDomain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.ID]; !ok {
		return kycDomain.ErrRecordNotFound
	}
	clone := *record
	m.records[record.ID] = &clone
	return nil
}

// Delete removes a stored record.
func (m *MemoryRecordRepository) Delete(ctx context.Context, recordID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[recordID]; !ok {
		return kycDomain.ErrRecordNotFound
	}
	delete(m.records, recordID)
	return nil
}

// List returns records ordered by creation time descending with pagination.
func (m *MemoryRecordRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*kycDomain.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*kycDomain.Record, 0, len(m.records))
	for _, record := range m.records {
		clone := *record
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// MemoryFingerprintRepository is an in-memory FingerprintRepository. It
// enforces fingerprint uniqueness the way the SQL unique constraint does.
type MemoryFingerprintRepository struct {
	mu           sync.RWMutex
	fingerprints map[string]uuid.UUID
}

// NewMemoryFingerprintRepository creates an empty in-memory fingerprint repository.
func NewMemoryFingerprintRepository() *MemoryFingerprintRepository {
	return &MemoryFingerprintRepository{fingerprints: make(map[string]uuid.UUID)}
}

// Create registers a fingerprint, returning ErrDuplicatePan on a collision.
func (m *MemoryFingerprintRepository) Create(
	ctx context.Context,
	fingerprint string,
	recordID uuid.UUID,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.fingerprints[fingerprint]; ok {
		return kycDomain.ErrDuplicatePan
	}
	m.fingerprints[fingerprint] = recordID
	return nil
}

// Exists reports whether a fingerprint is already registered.
func (m *MemoryFingerprintRepository) Exists(ctx context.Context, fingerprint string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.fingerprints[fingerprint]
	return ok, nil
}

// DeleteByRecordID removes the fingerprint entries belonging to a record.
func (m *MemoryFingerprintRepository) DeleteByRecordID(
	ctx context.Context,
	recordID uuid.UUID,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for fingerprint, owner := range m.fingerprints {
		if owner == recordID {
			delete(m.fingerprints, fingerprint)
		}
	}
	return nil
}

package memstore

import (
	"context"
	"sync"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
)

type entityKey struct {
	entityType string
	entityID   string
}

// AuditStore keeps conversion audit records in memory, append-only.
type AuditStore struct {
	mu       sync.RWMutex
	byEntity map[entityKey][]domain.ExecutionAuditRecord
}

// NewAuditStore creates an empty AuditStore.
func NewAuditStore() *AuditStore {
	return &AuditStore{byEntity: make(map[entityKey][]domain.ExecutionAuditRecord)}
}

// AppendAuditRecord stores one record.
func (s *AuditStore) AppendAuditRecord(_ context.Context, record domain.ExecutionAuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entityKey{entityType: record.EntityType, entityID: record.EntityID}
	s.byEntity[key] = append(s.byEntity[key], record)
	return nil
}

// ListRecentForEntity returns the latest records for an entity, newest first.
func (s *AuditStore) ListRecentForEntity(_ context.Context, entityType, entityID string, limit int) ([]domain.ExecutionAuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.byEntity[entityKey{entityType: entityType, entityID: entityID}]
	out := make([]domain.ExecutionAuditRecord, 0, limit)
	for i := len(rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, rows[i])
	}
	return out, nil
}

package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
)

// DefaultMemoryCapacity bounds the in-memory audit store. Oldest entries are
// evicted first once the capacity is reached.
const DefaultMemoryCapacity = 1024

// MemoryAuditLogRepository is a bounded in-memory implementation of the audit
// log repository. It backs deployments that run without a database: entries
// remain queryable and verifiable for the lifetime of the process.
type MemoryAuditLogRepository struct {
	mu       sync.RWMutex
	entries  []*auditDomain.AuditLogEntry
	capacity int
}

// NewMemoryAuditLogRepository creates an in-memory audit log repository with
// the given capacity. A non-positive capacity falls back to DefaultMemoryCapacity.
func NewMemoryAuditLogRepository(capacity int) *MemoryAuditLogRepository {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryAuditLogRepository{
		entries:  make([]*auditDomain.AuditLogEntry, 0, capacity),
		capacity: capacity,
	}
}

// Create stores an audit log entry, evicting the oldest entry when full.
func (r *MemoryAuditLogRepository) Create(_ context.Context, entry *auditDomain.AuditLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == r.capacity {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:len(r.entries)-1]
	}
	r.entries = append(r.entries, entry)
	return nil
}

// Get retrieves an audit log entry by its identifier.
// Returns ErrEntryNotFound when no entry matches.
func (r *MemoryAuditLogRepository) Get(_ context.Context, auditID uuid.UUID) (*auditDomain.AuditLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if entry.AuditID == auditID {
			return entry, nil
		}
	}
	return nil, auditDomain.ErrEntryNotFound
}

// List returns entries ordered newest first with offset/limit pagination.
func (r *MemoryAuditLogRepository) List(
	_ context.Context,
	offset, limit int,
) ([]*auditDomain.AuditLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]*auditDomain.AuditLogEntry, 0, limit)
	for i := len(r.entries) - 1 - offset; i >= 0 && len(results) < limit; i-- {
		results = append(results, r.entries[i])
	}
	return results, nil
}

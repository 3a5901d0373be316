// Package usecase orchestrates audit trail recording, listing, and
// tamper-evidence verification.
package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
)

// AuditLogRepository defines persistence operations for audit entries.
// Entries are append-only; no update or delete operations exist.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *auditDomain.AuditLogEntry) error
	Get(ctx context.Context, auditID uuid.UUID) (*auditDomain.AuditLogEntry, error)
	List(ctx context.Context, offset, limit int) ([]*auditDomain.AuditLogEntry, error)
}

// AuditUseCase manages the tamper-evident audit trail.
type AuditUseCase interface {
	// Record builds, signs, and persists an audit entry for an operation.
	// The details map is redacted before storage and never mutated.
	Record(
		ctx context.Context,
		eventType, userID, resource, action string,
		result auditDomain.Result,
		details map[string]any,
	) (*auditDomain.AuditLogEntry, error)

	// List retrieves audit entries, newest first, with pagination.
	List(ctx context.Context, offset, limit int) ([]*auditDomain.AuditLogEntry, error)

	// Verify checks the stored signature of the entry with the given ID.
	// Returns nil when the entry is intact, ErrSignatureInvalid when tampered.
	Verify(ctx context.Context, auditID uuid.UUID) error
}

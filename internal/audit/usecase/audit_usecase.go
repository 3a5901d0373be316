package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
	auditService "github.com/finbase/securemsg/internal/audit/service"
)

// auditUseCase implements AuditUseCase.
type auditUseCase struct {
	recorder auditService.Recorder
	signer   auditService.Signer
	repo     AuditLogRepository
	logger   *slog.Logger
}

// NewAuditUseCase creates a new audit use case instance.
func NewAuditUseCase(
	recorder auditService.Recorder,
	signer auditService.Signer,
	repo AuditLogRepository,
	logger *slog.Logger,
) AuditUseCase {
	return &auditUseCase{
		recorder: recorder,
		signer:   signer,
		repo:     repo,
		logger:   logger,
	}
}

// Record builds, signs, and persists an audit entry.
//
// A persistence failure is logged but does not propagate: the audited
// operation already happened, and failing it retroactively because the trail
// is unavailable would turn an observability problem into an outage. The
// entry is still returned so callers can fall back to log-based auditing.
func (a *auditUseCase) Record(
	ctx context.Context,
	eventType, userID, resource, action string,
	result auditDomain.Result,
	details map[string]any,
) (*auditDomain.AuditLogEntry, error) {
	entry := a.recorder.CreateEntry(eventType, userID, resource, action, result, details)

	signature, err := a.signer.Sign(entry)
	if err != nil {
		return nil, err
	}
	entry.Signature = signature

	if err := a.repo.Create(ctx, entry); err != nil {
		a.logger.Error("failed to persist audit log entry",
			slog.String("audit_id", entry.AuditID.String()),
			slog.String("event_type", entry.EventType),
			slog.Any("error", err),
		)
	}

	return entry, nil
}

// List retrieves audit entries, newest first, with pagination.
func (a *auditUseCase) List(ctx context.Context, offset, limit int) ([]*auditDomain.AuditLogEntry, error) {
	return a.repo.List(ctx, offset, limit)
}

// Verify re-checks the stored signature of a persisted entry.
func (a *auditUseCase) Verify(ctx context.Context, auditID uuid.UUID) error {
	entry, err := a.repo.Get(ctx, auditID)
	if err != nil {
		return err
	}

	return a.signer.Verify(entry)
}

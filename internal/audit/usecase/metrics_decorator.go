package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
	"github.com/finbase/securemsg/internal/metrics"
)

// auditUseCaseWithMetrics decorates AuditUseCase with metrics instrumentation.
type auditUseCaseWithMetrics struct {
	next    AuditUseCase
	metrics metrics.BusinessMetrics
}

// NewAuditUseCaseWithMetrics wraps an AuditUseCase with metrics recording.
func NewAuditUseCaseWithMetrics(useCase AuditUseCase, m metrics.BusinessMetrics) AuditUseCase {
	return &auditUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Record records metrics for audit entry creation.
func (a *auditUseCaseWithMetrics) Record(
	ctx context.Context,
	eventType, userID, resource, action string,
	result auditDomain.Result,
	details map[string]any,
) (*auditDomain.AuditLogEntry, error) {
	start := time.Now()
	entry, err := a.next.Record(ctx, eventType, userID, resource, action, result, details)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "audit", "audit_record", status)
	a.metrics.RecordDuration(ctx, "audit", "audit_record", time.Since(start), status)

	return entry, err
}

// List records metrics for audit trail listing.
func (a *auditUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*auditDomain.AuditLogEntry, error) {
	start := time.Now()
	entries, err := a.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "audit", "audit_list", status)
	a.metrics.RecordDuration(ctx, "audit", "audit_list", time.Since(start), status)

	return entries, err
}

// Verify records metrics for audit entry verification.
func (a *auditUseCaseWithMetrics) Verify(ctx context.Context, auditID uuid.UUID) error {
	start := time.Now()
	err := a.next.Verify(ctx, auditID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "audit", "audit_verify", status)
	a.metrics.RecordDuration(ctx, "audit", "audit_verify", time.Since(start), status)

	return err
}

package usecase

import (
	"context"
	"time"

	messageDomain "github.com/finbase/securemsg/internal/message/domain"
	"github.com/finbase/securemsg/internal/metrics"
)

// secureChannelUseCaseWithMetrics decorates SecureChannelUseCase with metrics
// instrumentation.
type secureChannelUseCaseWithMetrics struct {
	next    SecureChannelUseCase
	metrics metrics.BusinessMetrics
}

// NewSecureChannelUseCaseWithMetrics wraps a SecureChannelUseCase with metrics recording.
func NewSecureChannelUseCaseWithMetrics(
	useCase SecureChannelUseCase,
	m metrics.BusinessMetrics,
) SecureChannelUseCase {
	return &secureChannelUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Seal records metrics for message sealing operations.
func (s *secureChannelUseCaseWithMetrics) Seal(
	ctx context.Context,
	msg messageDomain.DomainMessage,
) (*messageDomain.SealedMessage, error) {
	start := time.Now()
	sealed, err := s.next.Seal(ctx, msg)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "message", "message_seal", status)
	s.metrics.RecordDuration(ctx, "message", "message_seal", time.Since(start), status)

	return sealed, err
}

// Open records metrics for message opening operations.
func (s *secureChannelUseCaseWithMetrics) Open(
	ctx context.Context,
	sealed *messageDomain.SealedMessage,
) (messageDomain.DomainMessage, error) {
	start := time.Now()
	msg, err := s.next.Open(ctx, sealed)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "message", "message_open", status)
	s.metrics.RecordDuration(ctx, "message", "message_open", time.Since(start), status)

	return msg, err
}

// Validate passes through without metrics; it is a pure in-memory check.
func (s *secureChannelUseCaseWithMetrics) Validate(
	msg messageDomain.DomainMessage,
) messageDomain.ValidationResult {
	return s.next.Validate(msg)
}

// Redact passes through without metrics; it is a pure in-memory transformation.
func (s *secureChannelUseCaseWithMetrics) Redact(data map[string]any) map[string]any {
	return s.next.Redact(data)
}

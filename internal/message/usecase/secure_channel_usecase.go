package usecase

import (
	"context"
	"strings"
	"time"

	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
	auditService "github.com/finbase/securemsg/internal/audit/service"
	auditUsecase "github.com/finbase/securemsg/internal/audit/usecase"
	apperrors "github.com/finbase/securemsg/internal/errors"
	messageDomain "github.com/finbase/securemsg/internal/message/domain"
	messageService "github.com/finbase/securemsg/internal/message/service"
	"github.com/finbase/securemsg/internal/redact"
)

const auditResource = "secure-channel"

// secureChannelUseCase implements SecureChannelUseCase.
type secureChannelUseCase struct {
	codec     messageService.EnvelopeCodec
	signer    messageService.IntegritySigner
	validator messageService.MessageValidator
	redactor  *redact.Redactor
	audit     auditUsecase.AuditUseCase
}

// NewSecureChannelUseCase creates a new secure channel use case instance.
func NewSecureChannelUseCase(
	codec messageService.EnvelopeCodec,
	signer messageService.IntegritySigner,
	validator messageService.MessageValidator,
	redactor *redact.Redactor,
	audit auditUsecase.AuditUseCase,
) SecureChannelUseCase {
	return &secureChannelUseCase{
		codec:     codec,
		signer:    signer,
		validator: validator,
		redactor:  redactor,
		audit:     audit,
	}
}

// Seal validates, encrypts, and signs an outbound message.
//
// The signature covers the plaintext canonical form, not the envelope: a
// receiver verifies it against the decrypted message, so integrity holds
// end to end regardless of how the envelope traveled.
func (s *secureChannelUseCase) Seal(
	ctx context.Context,
	msg messageDomain.DomainMessage,
) (*messageDomain.SealedMessage, error) {
	prepared, err := s.prepare(msg)
	if err != nil {
		s.record(ctx, "message.sealed", auditDomain.ResultFailure, msg, err)
		return nil, err
	}

	if result := s.validator.Validate(prepared); !result.Valid {
		err := validationError(result)
		s.record(ctx, "message.sealed", auditDomain.ResultFailure, prepared, err)
		return nil, err
	}

	envelope, err := s.codec.Encrypt(prepared)
	if err != nil {
		s.record(ctx, "message.sealed", auditDomain.ResultFailure, prepared, err)
		return nil, err
	}

	signature, err := s.signer.Sign(prepared)
	if err != nil {
		s.record(ctx, "message.sealed", auditDomain.ResultFailure, prepared, err)
		return nil, apperrors.Wrap(messageDomain.ErrEncryptionFailed, "failed to sign message")
	}

	s.record(ctx, "message.sealed", auditDomain.ResultSuccess, prepared, nil)

	return &messageDomain.SealedMessage{
		Envelope:  envelope,
		Signature: signature,
	}, nil
}

// Open decrypts a sealed message, verifies its signature, and re-validates it.
func (s *secureChannelUseCase) Open(
	ctx context.Context,
	sealed *messageDomain.SealedMessage,
) (messageDomain.DomainMessage, error) {
	msg, err := s.codec.Decrypt(sealed.Envelope)
	if err != nil {
		s.record(ctx, "message.opened", auditDomain.ResultFailure, nil, err)
		return nil, err
	}

	if !s.signer.Verify(msg, sealed.Signature) {
		err := messageDomain.ErrSignatureInvalid
		s.record(ctx, "message.opened", auditDomain.ResultFailure, msg, err)
		return nil, err
	}

	if result := s.validator.Validate(msg); !result.Valid {
		err := validationError(result)
		s.record(ctx, "message.opened", auditDomain.ResultFailure, msg, err)
		return nil, err
	}

	s.record(ctx, "message.opened", auditDomain.ResultSuccess, msg, nil)

	return msg, nil
}

// Validate exposes the validation step on its own.
func (s *secureChannelUseCase) Validate(msg messageDomain.DomainMessage) messageDomain.ValidationResult {
	return s.validator.Validate(msg)
}

// Redact returns a deep-copied, masked rendition of data.
func (s *secureChannelUseCase) Redact(data map[string]any) map[string]any {
	return s.redactor.Mask(data)
}

// prepare deep-copies the message and fills in the identifier and timestamp
// when absent. The caller's map is never touched.
func (s *secureChannelUseCase) prepare(msg messageDomain.DomainMessage) (messageDomain.DomainMessage, error) {
	prepared := make(messageDomain.DomainMessage, len(msg)+2)
	for k, v := range msg {
		prepared[k] = v
	}

	if prepared.MessageID() == "" {
		id, err := auditService.GenerateSecureMessageID()
		if err != nil {
			return nil, apperrors.Wrap(messageDomain.ErrEncryptionFailed, "failed to generate message id")
		}
		prepared[messageDomain.FieldMessageID] = id
	}

	if _, ok := prepared[messageDomain.FieldTimestamp]; !ok {
		prepared[messageDomain.FieldTimestamp] = time.Now().UTC().Format(time.RFC3339)
	}

	return prepared, nil
}

// record writes an audit entry for a seal or open attempt. The message's
// fields are redacted before entering the trail.
func (s *secureChannelUseCase) record(
	ctx context.Context,
	eventType string,
	result auditDomain.Result,
	msg messageDomain.DomainMessage,
	cause error,
) {
	details := map[string]any{}
	if msg != nil {
		if id := msg.MessageID(); id != "" {
			details["messageId"] = id
		}
		if et := msg.EventType(); et != "" {
			details["messageEventType"] = et
		}
	}
	if cause != nil {
		details["reason"] = cause.Error()
	}

	// Audit failures are handled inside the audit use case; nothing to do here.
	_, _ = s.audit.Record(ctx, eventType, "", auditResource, actionFor(eventType), result, details)
}

func actionFor(eventType string) string {
	if strings.HasSuffix(eventType, "opened") {
		return "open"
	}
	return "seal"
}

// validationError folds a failed validation result into a single error.
func validationError(result messageDomain.ValidationResult) error {
	return apperrors.Wrap(messageDomain.ErrMessageInvalid, strings.Join(result.Errors, "; "))
}

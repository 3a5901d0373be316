// Package usecase orchestrates the secure message pipeline: validation,
// envelope encryption, integrity signing, and audit recording.
package usecase

import (
	"context"

	messageDomain "github.com/finbase/securemsg/internal/message/domain"
)

// SecureChannelUseCase is the single entry point for protecting outbound
// messages and opening inbound ones.
type SecureChannelUseCase interface {
	// Seal validates a message, encrypts it into an envelope, and signs the
	// plaintext. Messages without an identifier or timestamp get them
	// assigned; the input map is never mutated. Every call is audited.
	Seal(ctx context.Context, msg messageDomain.DomainMessage) (*messageDomain.SealedMessage, error)

	// Open decrypts a sealed message, verifies its integrity signature, and
	// re-validates the recovered message. Every call is audited.
	Open(ctx context.Context, sealed *messageDomain.SealedMessage) (messageDomain.DomainMessage, error)

	// Validate exposes the validation step on its own, for callers that want
	// to pre-flight messages without sealing them.
	Validate(msg messageDomain.DomainMessage) messageDomain.ValidationResult

	// Redact returns a deep-copied, masked rendition of data, safe for
	// logging and diagnostics.
	Redact(data map[string]any) map[string]any
}

package domain

import (
	"github.com/finbase/securemsg/internal/errors"
)

// Message security error definitions.
//
// The two cryptographic failure errors are deliberately opaque: callers learn
// that an operation failed, never why. Distinguishable decryption failures
// (bad encoding vs. bad tag vs. bad padding) are a classic oracle that lets an
// attacker probe the cipher, so every internal failure collapses into the same
// sentinel before leaving this layer. Full detail goes to the diagnostic log only.
var (
	// ErrEncryptionFailed indicates an envelope could not be produced.
	ErrEncryptionFailed = errors.Wrap(errors.ErrInternal, "encryption failed")

	// ErrDecryptionFailed indicates an envelope could not be opened.
	//
	// Covers bad base64, malformed JSON, an unsupported algorithm identifier,
	// authentication-tag mismatch, and cipher errors, indistinguishably.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrInvalidEnvelope indicates an envelope failed structural decoding.
	// Internal to this layer: the codec translates it to ErrDecryptionFailed
	// before returning to callers.
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid envelope")

	// ErrAlgorithmMismatch indicates an envelope carries an algorithm identifier
	// other than the one this codec supports. Internal to this layer: surfaced
	// to callers as ErrDecryptionFailed.
	ErrAlgorithmMismatch = errors.Wrap(errors.ErrInvalidInput, "algorithm mismatch")

	// ErrSignatureInvalid indicates an inbound message's integrity signature
	// did not verify.
	ErrSignatureInvalid = errors.Wrap(errors.ErrInvalidInput, "signature invalid")

	// ErrMessageInvalid indicates an inbound message failed structural or
	// temporal validation after decryption.
	ErrMessageInvalid = errors.Wrap(errors.ErrInvalidInput, "message invalid")
)

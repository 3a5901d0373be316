// Package service implements the envelope codec, integrity signer, and message
// validator for the security layer.
package service

import (
	messageDomain "github.com/finbase/securemsg/internal/message/domain"
)

// EnvelopeCodec encrypts domain messages into transport-safe envelopes and back.
type EnvelopeCodec interface {
	// Encrypt serializes and encrypts a message, returning the base64-encoded envelope.
	// Any internal failure surfaces as the opaque ErrEncryptionFailed.
	Encrypt(msg messageDomain.DomainMessage) (string, error)

	// Decrypt decodes and decrypts an envelope back into the original message.
	// Any internal failure surfaces as the opaque ErrDecryptionFailed.
	Decrypt(encoded string) (messageDomain.DomainMessage, error)
}

// IntegritySigner computes and verifies keyed-hash signatures over messages,
// independent of the envelope's AEAD layer.
type IntegritySigner interface {
	// Sign returns the hex-encoded HMAC-SHA256 signature of the message's canonical form.
	Sign(msg messageDomain.DomainMessage) (string, error)

	// Verify recomputes the expected signature and compares in constant time.
	// A signature of unexpected length is a verification failure, never a fault.
	Verify(msg messageDomain.DomainMessage, signature string) bool
}

// MessageValidator performs structural, temporal, and size validation of
// messages before they enter business logic.
type MessageValidator interface {
	// Validate collects all validation problems; it never short-circuits and
	// never returns a Go error for validation failures.
	Validate(msg messageDomain.DomainMessage) messageDomain.ValidationResult
}

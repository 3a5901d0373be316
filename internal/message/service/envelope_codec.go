package service

import (
	"log/slog"

	cryptoDomain "github.com/finbase/securemsg/internal/crypto/domain"
	cryptoService "github.com/finbase/securemsg/internal/crypto/service"
	messageDomain "github.com/finbase/securemsg/internal/message/domain"
)

// EnvelopeCodecService implements EnvelopeCodec using an AEAD cipher pinned to
// a single algorithm identifier.
//
// Every encryption call generates a fresh random IV and binds the fixed
// associated-data tag (messageDomain.AssociatedData); decryption re-derives the
// cipher input from the envelope's explicit IV. Envelopes carrying any other
// algorithm identifier are rejected on decode.
//
// Error discipline: callers only ever see ErrEncryptionFailed or
// ErrDecryptionFailed. The reason an operation failed (bad base64, malformed
// JSON, tag mismatch, cipher error) is logged at debug level and deliberately
// withheld from the caller to avoid building a decryption oracle.
//
// The service is stateless apart from read-only key material and is safe for
// concurrent use.
type EnvelopeCodecService struct {
	aead   cryptoService.AEAD
	alg    cryptoDomain.Algorithm
	logger *slog.Logger
}

// NewEnvelopeCodec creates an envelope codec for the given algorithm using the
// encryption key from keys.
//
// Returns ErrUnsupportedAlgorithm or ErrInvalidKeySize from the AEAD manager
// when the cipher cannot be constructed; both are startup configuration errors.
func NewEnvelopeCodec(
	keys *cryptoDomain.KeyMaterial,
	alg cryptoDomain.Algorithm,
	aeadManager cryptoService.AEADManager,
	logger *slog.Logger,
) (*EnvelopeCodecService, error) {
	aead, err := aeadManager.CreateCipher(keys.EncryptionKey, alg)
	if err != nil {
		return nil, err
	}

	return &EnvelopeCodecService{
		aead:   aead,
		alg:    alg,
		logger: logger,
	}, nil
}

// Encrypt serializes msg to its canonical form, encrypts it under a fresh IV
// with the protocol's associated-data tag, and returns the base64-encoded
// envelope.
func (c *EnvelopeCodecService) Encrypt(msg messageDomain.DomainMessage) (string, error) {
	plaintext, err := msg.Canonical()
	if err != nil {
		return "", c.encryptFailure("serialize message", err)
	}

	sealed, iv, err := c.aead.Encrypt(plaintext, []byte(messageDomain.AssociatedData))
	if err != nil {
		return "", c.encryptFailure("run cipher", err)
	}

	// The cipher appends the authentication tag to the ciphertext; the envelope
	// carries the tag as its own field.
	tagStart := len(sealed) - c.aead.Overhead()
	envelope := messageDomain.NewSecureEnvelope(iv, sealed[:tagStart], sealed[tagStart:], c.alg)

	encoded, err := envelope.Encode()
	if err != nil {
		return "", c.encryptFailure("encode envelope", err)
	}

	return encoded, nil
}

// Decrypt decodes an envelope, checks its algorithm pin, verifies the
// authentication tag, and returns the original message.
func (c *EnvelopeCodecService) Decrypt(encoded string) (messageDomain.DomainMessage, error) {
	envelope, err := messageDomain.DecodeSecureEnvelope(encoded)
	if err != nil {
		return nil, c.decryptFailure("decode envelope", err)
	}

	if envelope.Algorithm != c.alg {
		return nil, c.decryptFailure("check algorithm", messageDomain.ErrAlgorithmMismatch)
	}

	iv, ciphertext, authTag, err := envelope.Materialize()
	if err != nil {
		return nil, c.decryptFailure("materialize envelope", err)
	}

	plaintext, err := c.aead.Decrypt(append(ciphertext, authTag...), iv, []byte(messageDomain.AssociatedData))
	if err != nil {
		return nil, c.decryptFailure("open cipher", err)
	}

	msg, err := messageDomain.ParseDomainMessage(plaintext)
	if err != nil {
		return nil, c.decryptFailure("parse message", err)
	}

	return msg, nil
}

// encryptFailure logs the internal cause and returns the opaque encryption error.
func (c *EnvelopeCodecService) encryptFailure(stage string, err error) error {
	c.logger.Debug("envelope encryption failed",
		slog.String("stage", stage),
		slog.Any("error", err),
	)
	return messageDomain.ErrEncryptionFailed
}

// decryptFailure logs the internal cause and returns the opaque decryption error.
func (c *EnvelopeCodecService) decryptFailure(stage string, err error) error {
	c.logger.Debug("envelope decryption failed",
		slog.String("stage", stage),
		slog.Any("error", err),
	)
	return messageDomain.ErrDecryptionFailed
}

package domain

import (
	"github.com/finbase/securemsg/internal/errors"
)

// Cryptographic configuration and operation error definitions.
//
// Key-loading errors are fatal startup conditions: the process must not come up
// with missing or malformed key material. Operation errors are deliberately
// opaque so callers cannot distinguish why a cryptographic operation failed.
var (
	// ErrEncryptionKeyNotSet indicates MESSAGE_ENCRYPTION_KEY is not configured.
	ErrEncryptionKeyNotSet = errors.New("MESSAGE_ENCRYPTION_KEY is not set")

	// ErrSigningKeyNotSet indicates MESSAGE_SIGNING_KEY is not configured.
	ErrSigningKeyNotSet = errors.New("MESSAGE_SIGNING_KEY is not set")

	// ErrInvalidKeyEncoding indicates a configured key is not valid hex
	// (or valid base64 in wrapped-key mode).
	ErrInvalidKeyEncoding = errors.Wrap(errors.ErrInvalidInput, "invalid key encoding")

	// ErrInvalidKeySize indicates a cryptographic key does not decode to exactly 32 bytes.
	//
	// Both the encryption key and the signing key must be 256 bits. This is checked
	// once at startup; key material of any other length never reaches the ciphers.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	//
	// Supported algorithms: AES256GCM (aes-256-gcm), ChaCha20Poly1305 (chacha20-poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrKeyUnwrapFailed indicates the KMS keeper could not unwrap a wrapped key.
	ErrKeyUnwrapFailed = errors.Wrap(errors.ErrInternal, "key unwrap failed")
)

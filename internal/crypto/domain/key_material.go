// Package domain defines the cryptographic key material and algorithm types
// for the message security layer.
package domain

import (
	"encoding/hex"
	"fmt"
)

// KeyMaterial holds the two independent symmetric keys used by the security layer.
//
// The encryption key drives the AEAD envelope codec; the signing key drives the
// independent HMAC integrity layer. Keeping them separate means a compromise of
// one layer does not compromise the other, and allows independent rotation.
//
// KeyMaterial is loaded exactly once at process start and is read-only afterwards,
// which makes it safe to share across goroutines without locking.
type KeyMaterial struct {
	EncryptionKey []byte
	SigningKey    []byte
}

// NewKeyMaterial builds KeyMaterial from two hex-encoded secrets.
//
// Both secrets must decode to exactly 32 bytes. Absence or wrong length is a
// configuration error that must abort process initialization; it is never a
// recoverable runtime condition.
//
// Returns:
//   - ErrEncryptionKeyNotSet / ErrSigningKeyNotSet when a secret is empty
//   - ErrInvalidKeyEncoding when a secret is not valid hex
//   - ErrInvalidKeySize when a secret does not decode to 32 bytes
func NewKeyMaterial(encryptionKeyHex, signingKeyHex string) (*KeyMaterial, error) {
	if encryptionKeyHex == "" {
		return nil, ErrEncryptionKeyNotSet
	}
	if signingKeyHex == "" {
		return nil, ErrSigningKeyNotSet
	}

	encryptionKey, err := decodeKey("encryption key", encryptionKeyHex)
	if err != nil {
		return nil, err
	}

	signingKey, err := decodeKey("signing key", signingKeyHex)
	if err != nil {
		Zero(encryptionKey)
		return nil, err
	}

	return &KeyMaterial{
		EncryptionKey: encryptionKey,
		SigningKey:    signingKey,
	}, nil
}

// decodeKey hex-decodes a single key and validates its length.
func decodeKey(name, value string) ([]byte, error) {
	key, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid hex", ErrInvalidKeyEncoding, name)
	}
	if len(key) != KeySize {
		Zero(key)
		return nil, fmt.Errorf("%w: %s must be %d bytes, got %d", ErrInvalidKeySize, name, KeySize, len(key))
	}
	return key, nil
}

// Close securely clears the key material from memory.
//
// Should be called during application shutdown so key bytes do not linger in
// memory longer than necessary.
func (k *KeyMaterial) Close() {
	Zero(k.EncryptionKey)
	Zero(k.SigningKey)
	k.EncryptionKey = nil
	k.SigningKey = nil
}

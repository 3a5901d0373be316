package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	cryptoDomain "github.com/finbase/securemsg/internal/crypto/domain"
	messageDomain "github.com/finbase/securemsg/internal/message/domain"
)

// IntegritySignerService implements IntegritySigner using HMAC-SHA256 under the
// dedicated signing key.
//
// The signature is an integrity layer independent of the envelope's AEAD:
// tampering detection on the logical message does not depend on the
// transport-level envelope. Sign and Verify operate over the same canonical
// representation the codec encrypts, so a signature computed before encryption
// verifies against the message recovered after decryption.
type IntegritySignerService struct {
	key []byte
}

// NewIntegritySigner creates a signer using the signing key from keys.
func NewIntegritySigner(keys *cryptoDomain.KeyMaterial) *IntegritySignerService {
	return &IntegritySignerService{key: keys.SigningKey}
}

// Sign computes the hex-encoded HMAC-SHA256 signature of the message's
// canonical form.
func (s *IntegritySignerService) Sign(msg messageDomain.DomainMessage) (string, error) {
	canonical, err := msg.Canonical()
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize message: %w", err)
	}

	mac := hmac.New(sha256.New, s.key)
	mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify recomputes the expected signature and compares it with the supplied one.
//
// The length check runs before the comparison: hmac.Equal assumes equal-length
// inputs, and a signature of unexpected length must read as "verification
// failed", never as a panic or error to propagate. The comparison itself is
// constant-time to avoid timing side channels.
func (s *IntegritySignerService) Verify(msg messageDomain.DomainMessage, signature string) bool {
	expected, err := s.Sign(msg)
	if err != nil {
		return false
	}

	if len(signature) != len(expected) {
		return false
	}

	return hmac.Equal([]byte(signature), []byte(expected))
}

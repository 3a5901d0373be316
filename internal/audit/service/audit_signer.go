package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
	cryptoDomain "github.com/finbase/securemsg/internal/crypto/domain"
)

// signerService signs audit entries with HMAC-SHA256 under a key derived from
// the message signing key via HKDF-SHA256. Derivation separates audit signing
// from message signing even though both start from the same configured key.
type signerService struct {
	root []byte
}

// NewSigner creates an audit entry signer using the signing key from keys.
func NewSigner(keys *cryptoDomain.KeyMaterial) Signer {
	return &signerService{root: keys.SigningKey}
}

// deriveSigningKey derives the 32-byte audit signing key from the root key.
// Info parameter: "audit-entry-signing-v1" (versioned for future rotation).
func (s *signerService) deriveSigningKey() ([]byte, error) {
	reader := hkdf.New(sha256.New, s.root, nil, []byte("audit-entry-signing-v1"))

	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}

	return key, nil
}

// canonicalize converts an entry to a canonical byte representation.
// Variable-length fields are length-prefixed to prevent ambiguity; the
// Signature field itself is excluded.
func (s *signerService) canonicalize(entry *auditDomain.AuditLogEntry) ([]byte, error) {
	buf := make([]byte, 0, 1024)

	buf = append(buf, entry.AuditID[:]...)

	timeBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(timeBytes, uint64(entry.Timestamp.UnixNano()))
	buf = append(buf, timeBytes...)

	buf = appendLengthPrefixed(buf, []byte(entry.EventType))
	buf = appendLengthPrefixed(buf, []byte(entry.UserID))
	buf = appendLengthPrefixed(buf, []byte(entry.Resource))
	buf = appendLengthPrefixed(buf, []byte(entry.Action))
	buf = appendLengthPrefixed(buf, []byte(string(entry.Result)))

	if entry.Details != nil {
		// JSON serialization sorts map keys, giving a deterministic form.
		detailBytes, err := json.Marshal(entry.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal audit details: %w", err)
		}
		buf = appendLengthPrefixed(buf, detailBytes)
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	buf = appendLengthPrefixed(buf, []byte(entry.SourceIP))
	buf = appendLengthPrefixed(buf, []byte(entry.UserAgent))
	buf = appendLengthPrefixed(buf, []byte(entry.SessionID))

	return buf, nil
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	if len(data) > 0xFFFFFFFF {
		panic("data length exceeds uint32 max")
	}
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))
	buf = append(buf, length...)
	buf = append(buf, data...)
	return buf
}

// Sign generates the HMAC-SHA256 signature for an audit entry.
func (s *signerService) Sign(entry *auditDomain.AuditLogEntry) ([]byte, error) {
	key, err := s.deriveSigningKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive audit signing key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	canonical, err := s.canonicalize(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize audit entry: %w", err)
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

// Verify checks the entry's stored signature against its contents.
func (s *signerService) Verify(entry *auditDomain.AuditLogEntry) error {
	expected, err := s.Sign(entry)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if len(entry.Signature) != len(expected) {
		return auditDomain.ErrSignatureInvalid
	}
	if !hmac.Equal(entry.Signature, expected) {
		return auditDomain.ErrSignatureInvalid
	}

	return nil
}

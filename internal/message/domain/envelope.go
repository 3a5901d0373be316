package domain

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"

	cryptoDomain "github.com/finbase/securemsg/internal/crypto/domain"
)

// SecureEnvelope is the wire-level encoded unit that crosses the transport
// boundary. It is self-describing: the IV, ciphertext, authentication tag,
// and algorithm identifier travel together, hex-encoded, inside a JSON object
// that is base64-encoded as a whole so it is safe to carry as a string field
// in any transport.
//
// Lifecycle: created fresh per outbound message, never mutated or reused;
// consumed exactly once per inbound message and discarded after decode.
type SecureEnvelope struct {
	IV        string                 `json:"iv"`
	Encrypted string                 `json:"encrypted"`
	AuthTag   string                 `json:"authTag"`
	Algorithm cryptoDomain.Algorithm `json:"algorithm"`
}

// NewSecureEnvelope builds an envelope from raw cipher outputs.
// The ciphertext must not include the authentication tag; the tag is carried
// as its own field.
func NewSecureEnvelope(iv, ciphertext, authTag []byte, alg cryptoDomain.Algorithm) SecureEnvelope {
	return SecureEnvelope{
		IV:        hex.EncodeToString(iv),
		Encrypted: hex.EncodeToString(ciphertext),
		AuthTag:   hex.EncodeToString(authTag),
		Algorithm: alg,
	}
}

// Encode serializes the envelope to its transport form: base64 of the JSON object.
func (e SecureEnvelope) Encode() (string, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// DecodeSecureEnvelope parses the transport form back into an envelope.
//
// Structural problems (bad base64, malformed JSON, non-hex fields) surface as
// ErrInvalidEnvelope with detail. The envelope codec is responsible for
// collapsing these into the opaque decryption error before they reach callers.
func DecodeSecureEnvelope(encoded string) (SecureEnvelope, error) {
	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return SecureEnvelope{}, fmt.Errorf("%w: not valid base64", ErrInvalidEnvelope)
	}

	var envelope SecureEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return SecureEnvelope{}, fmt.Errorf("%w: not valid JSON", ErrInvalidEnvelope)
	}

	return envelope, nil
}

// Materialize decodes the envelope's hex fields into raw bytes for the cipher.
func (e SecureEnvelope) Materialize() (iv, ciphertext, authTag []byte, err error) {
	iv, err = hex.DecodeString(e.IV)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: iv is not valid hex", ErrInvalidEnvelope)
	}

	ciphertext, err = hex.DecodeString(e.Encrypted)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: ciphertext is not valid hex", ErrInvalidEnvelope)
	}

	authTag, err = hex.DecodeString(e.AuthTag)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: authTag is not valid hex", ErrInvalidEnvelope)
	}

	return iv, ciphertext, authTag, nil
}

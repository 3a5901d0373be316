// Package domain defines the domain message, secure envelope, and validation
// types exchanged over the financial event bus.
package domain

import (
	"encoding/json"
	"time"
)

// DomainMessage is the logical event before encryption: a mapping of field
// names to values, expected to carry messageId, timestamp, and eventType plus
// arbitrary domain payload.
//
// The security layer never retains references to a DomainMessage beyond a
// single call; ownership stays with the calling service.
type DomainMessage map[string]any

// MessageID returns the message identifier, or "" when absent or not a string.
func (m DomainMessage) MessageID() string {
	return m.stringField(FieldMessageID)
}

// EventType returns the event type, or "" when absent or not a string.
func (m DomainMessage) EventType() string {
	return m.stringField(FieldEventType)
}

// Timestamp returns the message timestamp and whether one could be parsed.
//
// Accepted representations: time.Time, RFC 3339 strings, and numeric Unix
// epoch milliseconds (the formats producers on the bus actually emit).
func (m DomainMessage) Timestamp() (time.Time, bool) {
	value, ok := m[FieldTimestamp]
	if !ok {
		return time.Time{}, false
	}

	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, false
		}
		return ts, true
	case float64:
		return time.UnixMilli(int64(v)), true
	case int64:
		return time.UnixMilli(v), true
	case int:
		return time.UnixMilli(int64(v)), true
	case json.Number:
		millis, err := v.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(millis), true
	default:
		return time.Time{}, false
	}
}

// Canonical returns the canonical serialized form of the message.
//
// encoding/json marshals map keys in sorted order, so the representation is
// deterministic: the signer and the codec both operate on this exact byte
// sequence, and a signature computed before encryption verifies against the
// message recovered after decryption.
func (m DomainMessage) Canonical() ([]byte, error) {
	return json.Marshal(m)
}

// ParseDomainMessage reconstructs a DomainMessage from its canonical form.
func ParseDomainMessage(data []byte) (DomainMessage, error) {
	var m DomainMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m DomainMessage) stringField(key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// ValidationResult carries the outcome of message validation. Validation
// failures are data, not faults: all problems are collected so callers can
// report every issue at once.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// SealedMessage is the transport-ready pair produced by the outbound pipeline:
// the base64-encoded encrypted envelope plus the independent hex-encoded
// integrity signature over the original message.
type SealedMessage struct {
	Envelope  string
	Signature string
}

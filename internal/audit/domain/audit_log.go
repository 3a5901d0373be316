// Package domain defines the audit trail entities for the security layer.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Result is the outcome classification of an audited operation.
type Result string

const (
	ResultSuccess Result = "SUCCESS"
	ResultFailure Result = "FAILURE"
)

// DefaultUserID is recorded when the caller does not supply an acting user.
const DefaultUserID = "system"

// RedactedSourceIP replaces the real source address in production so audit
// records never leak client network identity.
const RedactedSourceIP = "[REDACTED]"

// AuditLogEntry records a security-relevant operation for compliance and
// incident investigation. Details already went through the redaction engine
// before the entry was built; nothing sensitive is stored in plaintext.
//
// Entries are append-only. The Signature field makes them tamper-evident:
// it covers every other field, so any post-hoc modification is detectable.
type AuditLogEntry struct {
	AuditID   uuid.UUID
	Timestamp time.Time
	EventType string
	UserID    string
	Resource  string
	Action    string
	Result    Result
	Details   map[string]any
	SourceIP  string
	UserAgent string
	SessionID string
	Signature []byte
}

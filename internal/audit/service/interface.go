// Package service implements audit entry construction and tamper-evident signing.
package service

import (
	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
)

// Recorder builds audit entries with the defaults and redaction the audit
// trail requires. It does not persist anything; persistence belongs to the
// use case layer.
type Recorder interface {
	// CreateEntry assembles a complete entry for the given operation. The
	// details map is deep-copied and redacted; the input is never mutated.
	CreateEntry(eventType, userID, resource, action string, result auditDomain.Result, details map[string]any) *auditDomain.AuditLogEntry
}

// Signer makes audit entries tamper-evident with a keyed signature over a
// canonical representation of every field.
type Signer interface {
	// Sign computes the signature for an entry. The entry's Signature field
	// is not part of the signed content.
	Sign(entry *auditDomain.AuditLogEntry) ([]byte, error)

	// Verify checks an entry's stored signature against its contents.
	// Returns nil when intact, ErrSignatureInvalid when tampered.
	Verify(entry *auditDomain.AuditLogEntry) error
}

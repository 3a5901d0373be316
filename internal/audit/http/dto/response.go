// Package dto provides data transfer objects for audit log HTTP responses.
package dto

import (
	"encoding/hex"
	"time"

	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
)

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	AuditID   string         `json:"audit_id"`
	Timestamp time.Time      `json:"timestamp"`
	EventType string         `json:"event_type"`
	UserID    string         `json:"user_id"`
	Resource  string         `json:"resource"`
	Action    string         `json:"action"`
	Result    string         `json:"result"`
	Details   map[string]any `json:"details,omitempty"`
	SourceIP  string         `json:"source_ip"`
	UserAgent string         `json:"user_agent"`
	SessionID string         `json:"session_id"`
	Signature string         `json:"signature"`
}

// MapAuditLogEntryToResponse converts a domain audit log entry to an API response.
func MapAuditLogEntryToResponse(entry *auditDomain.AuditLogEntry) AuditLogResponse {
	return AuditLogResponse{
		AuditID:   entry.AuditID.String(),
		Timestamp: entry.Timestamp,
		EventType: entry.EventType,
		UserID:    entry.UserID,
		Resource:  entry.Resource,
		Action:    entry.Action,
		Result:    string(entry.Result),
		Details:   entry.Details,
		SourceIP:  entry.SourceIP,
		UserAgent: entry.UserAgent,
		SessionID: entry.SessionID,
		Signature: hex.EncodeToString(entry.Signature),
	}
}

// ListAuditLogsResponse represents a paginated list of audit log entries in API responses.
type ListAuditLogsResponse struct {
	Data []AuditLogResponse `json:"data"`
}

// MapAuditLogEntriesToListResponse converts a slice of domain entries to a list API response.
func MapAuditLogEntriesToListResponse(entries []*auditDomain.AuditLogEntry) ListAuditLogsResponse {
	responses := make([]AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, MapAuditLogEntryToResponse(entry))
	}
	return ListAuditLogsResponse{
		Data: responses,
	}
}

// VerifyAuditLogResponse reports whether an entry's signature is intact.
type VerifyAuditLogResponse struct {
	AuditID string `json:"audit_id"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
}

// Package repository provides persistence for audit log entries.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
	"github.com/finbase/securemsg/internal/database"
	apperrors "github.com/finbase/securemsg/internal/errors"
)

// PostgreSQLAuditLogRepository implements audit log persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLAuditLogRepository struct {
	db *sql.DB
}

// NewPostgreSQLAuditLogRepository creates a new PostgreSQL audit log repository.
func NewPostgreSQLAuditLogRepository(db *sql.DB) *PostgreSQLAuditLogRepository {
	return &PostgreSQLAuditLogRepository{db: db}
}

// Create inserts a new audit entry. Entries are append-only; there is no
// update path. Handles nil details as database NULL.
func (p *PostgreSQLAuditLogRepository) Create(ctx context.Context, entry *auditDomain.AuditLogEntry) error {
	querier := database.GetTx(ctx, p.db)

	var detailsJSON []byte
	var err error

	if entry.Details != nil {
		detailsJSON, err = json.Marshal(entry.Details)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit log details")
		}
	}

	query := `INSERT INTO audit_logs (audit_id, timestamp, event_type, user_id, resource, action, result,
			  details, source_ip, user_agent, session_id, signature)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = querier.ExecContext(
		ctx,
		query,
		entry.AuditID,
		entry.Timestamp,
		entry.EventType,
		entry.UserID,
		entry.Resource,
		entry.Action,
		string(entry.Result),
		detailsJSON,
		entry.SourceIP,
		entry.UserAgent,
		entry.SessionID,
		entry.Signature,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit log entry")
	}

	return nil
}

// Get retrieves a single audit entry by its identifier.
func (p *PostgreSQLAuditLogRepository) Get(ctx context.Context, auditID uuid.UUID) (*auditDomain.AuditLogEntry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT audit_id, timestamp, event_type, user_id, resource, action, result,
			  details, source_ip, user_agent, session_id, signature
			  FROM audit_logs
			  WHERE audit_id = $1`

	entry, err := scanAuditLogEntry(querier.QueryRowContext(ctx, query, auditID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auditDomain.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get audit log entry")
	}

	return entry, nil
}

// List retrieves audit entries ordered newest first with pagination.
// Returns an empty slice when no entries match.
func (p *PostgreSQLAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*auditDomain.AuditLogEntry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT audit_id, timestamp, event_type, user_id, resource, action, result,
			  details, source_ip, user_agent, session_id, signature
			  FROM audit_logs
			  ORDER BY timestamp DESC, audit_id DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit log entries")
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*auditDomain.AuditLogEntry, 0)
	for rows.Next() {
		entry, err := scanAuditLogEntry(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit log entry")
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit log entries")
	}

	return entries, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuditLogEntry(row rowScanner) (*auditDomain.AuditLogEntry, error) {
	var entry auditDomain.AuditLogEntry
	var result string
	var detailsJSON []byte

	err := row.Scan(
		&entry.AuditID,
		&entry.Timestamp,
		&entry.EventType,
		&entry.UserID,
		&entry.Resource,
		&entry.Action,
		&result,
		&detailsJSON,
		&entry.SourceIP,
		&entry.UserAgent,
		&entry.SessionID,
		&entry.Signature,
	)
	if err != nil {
		return nil, err
	}

	entry.Result = auditDomain.Result(result)

	if detailsJSON != nil {
		if err := json.Unmarshal(detailsJSON, &entry.Details); err != nil {
			return nil, err
		}
	}

	return &entry, nil
}

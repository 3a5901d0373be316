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

// MySQLAuditLogRepository implements audit log persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLAuditLogRepository struct {
	db *sql.DB
}

// NewMySQLAuditLogRepository creates a new MySQL audit log repository.
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{db: db}
}

// Create inserts a new audit entry using BINARY(16) for the UUID key.
// Entries are append-only; there is no update path.
func (m *MySQLAuditLogRepository) Create(ctx context.Context, entry *auditDomain.AuditLogEntry) error {
	querier := database.GetTx(ctx, m.db)

	var detailsJSON []byte
	var err error

	if entry.Details != nil {
		detailsJSON, err = json.Marshal(entry.Details)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit log details")
		}
	}

	auditID, err := entry.AuditID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit log id")
	}

	query := `INSERT INTO audit_logs (audit_id, timestamp, event_type, user_id, resource, action, result,
			  details, source_ip, user_agent, session_id, signature)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		auditID,
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
func (m *MySQLAuditLogRepository) Get(ctx context.Context, auditID uuid.UUID) (*auditDomain.AuditLogEntry, error) {
	querier := database.GetTx(ctx, m.db)

	binaryID, err := auditID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal audit log id")
	}

	query := `SELECT audit_id, timestamp, event_type, user_id, resource, action, result,
			  details, source_ip, user_agent, session_id, signature
			  FROM audit_logs
			  WHERE audit_id = ?`

	entry, err := scanMySQLAuditLogEntry(querier.QueryRowContext(ctx, query, binaryID))
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
func (m *MySQLAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*auditDomain.AuditLogEntry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT audit_id, timestamp, event_type, user_id, resource, action, result,
			  details, source_ip, user_agent, session_id, signature
			  FROM audit_logs
			  ORDER BY timestamp DESC, audit_id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit log entries")
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*auditDomain.AuditLogEntry, 0)
	for rows.Next() {
		entry, err := scanMySQLAuditLogEntry(rows)
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

func scanMySQLAuditLogEntry(row rowScanner) (*auditDomain.AuditLogEntry, error) {
	var entry auditDomain.AuditLogEntry
	var binaryID []byte
	var result string
	var detailsJSON []byte

	err := row.Scan(
		&binaryID,
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

	auditID, err := uuid.FromBytes(binaryID)
	if err != nil {
		return nil, err
	}
	entry.AuditID = auditID
	entry.Result = auditDomain.Result(result)

	if detailsJSON != nil {
		if err := json.Unmarshal(detailsJSON, &entry.Details); err != nil {
			return nil, err
		}
	}

	return &entry, nil
}

package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
	"github.com/finbase/securemsg/internal/redact"
)

// RecorderService implements Recorder.
//
// Environment awareness: in production the source IP is replaced with the
// redaction marker so audit records carry no client network identity; outside
// production the loopback address is recorded to keep local traces readable.
type RecorderService struct {
	redactor   *redact.Redactor
	userAgent  string
	production bool
	now        func() time.Time
}

// NewRecorder creates a recorder. userAgent identifies the recording service
// in each entry; production controls source IP redaction.
func NewRecorder(redactor *redact.Redactor, userAgent string, production bool) *RecorderService {
	return &RecorderService{
		redactor:   redactor,
		userAgent:  userAgent,
		production: production,
		now:        time.Now,
	}
}

// CreateEntry assembles a complete audit entry for the given operation.
func (r *RecorderService) CreateEntry(
	eventType, userID, resource, action string,
	result auditDomain.Result,
	details map[string]any,
) *auditDomain.AuditLogEntry {
	if userID == "" {
		userID = auditDomain.DefaultUserID
	}

	sourceIP := "127.0.0.1"
	if r.production {
		sourceIP = auditDomain.RedactedSourceIP
	}

	return &auditDomain.AuditLogEntry{
		AuditID:   uuid.Must(uuid.NewV7()),
		Timestamp: r.now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Resource:  resource,
		Action:    action,
		Result:    result,
		Details:   r.redactor.Mask(details),
		SourceIP:  sourceIP,
		UserAgent: r.userAgent,
		SessionID: uuid.NewString(),
	}
}

// GenerateSecureMessageID produces a unique, non-guessable message identifier
// in the form "<unix-millis>-<16 hex chars>". The suffix hashes the timestamp
// together with fresh randomness, so identifiers are unpredictable even for
// messages created in the same millisecond.
func GenerateSecureMessageID() (string, error) {
	now := time.Now().UnixMilli()

	entropy := make([]byte, 16)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("failed to gather randomness for message id: %w", err)
	}

	h := sha256.New()
	fmt.Fprintf(h, "%d", now)
	h.Write(entropy)
	suffix := hex.EncodeToString(h.Sum(nil))[:16]

	return fmt.Sprintf("%d-%s", now, suffix), nil
}

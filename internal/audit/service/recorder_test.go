package service_test

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
	"github.com/finbase/securemsg/internal/audit/service"
	"github.com/finbase/securemsg/internal/redact"
)

func newRecorder(production bool) *service.RecorderService {
	return service.NewRecorder(redact.New(), "securemsg/1.0", production)
}

func TestRecorder_CreateEntry(t *testing.T) {
	t.Run("PopulatesAllFields", func(t *testing.T) {
		recorder := newRecorder(false)

		entry := recorder.CreateEntry(
			"message.sealed", "alice", "payments", "seal",
			auditDomain.ResultSuccess,
			map[string]any{"messageId": "msg-001"},
		)

		assert.NotEmpty(t, entry.AuditID)
		assert.WithinDuration(t, time.Now().UTC(), entry.Timestamp, time.Second)
		assert.Equal(t, "message.sealed", entry.EventType)
		assert.Equal(t, "alice", entry.UserID)
		assert.Equal(t, "payments", entry.Resource)
		assert.Equal(t, "seal", entry.Action)
		assert.Equal(t, auditDomain.ResultSuccess, entry.Result)
		assert.Equal(t, "msg-001", entry.Details["messageId"])
		assert.Equal(t, "securemsg/1.0", entry.UserAgent)
		assert.NotEmpty(t, entry.SessionID)
		assert.Empty(t, entry.Signature)
	})

	t.Run("DefaultUserID", func(t *testing.T) {
		entry := newRecorder(false).CreateEntry(
			"message.sealed", "", "payments", "seal", auditDomain.ResultSuccess, nil,
		)

		assert.Equal(t, "system", entry.UserID)
	})

	t.Run("SourceIPOutsideProduction", func(t *testing.T) {
		entry := newRecorder(false).CreateEntry(
			"message.sealed", "", "payments", "seal", auditDomain.ResultSuccess, nil,
		)

		assert.Equal(t, "127.0.0.1", entry.SourceIP)
	})

	t.Run("SourceIPRedactedInProduction", func(t *testing.T) {
		entry := newRecorder(true).CreateEntry(
			"message.sealed", "", "payments", "seal", auditDomain.ResultSuccess, nil,
		)

		assert.Equal(t, "[REDACTED]", entry.SourceIP)
	})

	t.Run("FreshSessionIDPerEntry", func(t *testing.T) {
		recorder := newRecorder(false)

		first := recorder.CreateEntry("e", "", "r", "a", auditDomain.ResultSuccess, nil)
		second := recorder.CreateEntry("e", "", "r", "a", auditDomain.ResultSuccess, nil)

		assert.NotEqual(t, first.SessionID, second.SessionID)
		assert.NotEqual(t, first.AuditID, second.AuditID)
	})

	t.Run("RedactsDetails", func(t *testing.T) {
		details := map[string]any{
			"cardNumber": "4111111111111111",
			"amount":     float64(100),
		}

		entry := newRecorder(false).CreateEntry(
			"message.sealed", "", "payments", "seal", auditDomain.ResultFailure, details,
		)

		assert.Equal(t, "41************11", entry.Details["cardNumber"])
		assert.Equal(t, float64(100), entry.Details["amount"])
		// Input map stays untouched.
		assert.Equal(t, "4111111111111111", details["cardNumber"])
	})
}

func TestGenerateSecureMessageID(t *testing.T) {
	pattern := regexp.MustCompile(`^\d+-[0-9a-f]{16}$`)

	t.Run("Format", func(t *testing.T) {
		id, err := service.GenerateSecureMessageID()

		require.NoError(t, err)
		assert.Regexp(t, pattern, id)

		millis, err := strconv.ParseInt(strings.SplitN(id, "-", 2)[0], 10, 64)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), time.UnixMilli(millis), time.Second)
	})

	t.Run("Unique", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 1000; i++ {
			id, err := service.GenerateSecureMessageID()
			require.NoError(t, err)

			_, dup := seen[id]
			require.False(t, dup, "duplicate id %s", id)
			seen[id] = struct{}{}
		}
	})
}

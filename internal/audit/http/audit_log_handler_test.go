package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
	"github.com/finbase/securemsg/internal/audit/http/dto"
	apperrors "github.com/finbase/securemsg/internal/errors"
)

// MockAuditUseCase is a mock implementation of usecase.AuditUseCase
type MockAuditUseCase struct {
	mock.Mock
}

func (m *MockAuditUseCase) Record(
	ctx context.Context,
	eventType, userID, resource, action string,
	result auditDomain.Result,
	details map[string]any,
) (*auditDomain.AuditLogEntry, error) {
	args := m.Called(ctx, eventType, userID, resource, action, result, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditDomain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*auditDomain.AuditLogEntry, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditUseCase) Verify(ctx context.Context, auditID uuid.UUID) error {
	args := m.Called(ctx, auditID)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEntry() *auditDomain.AuditLogEntry {
	return &auditDomain.AuditLogEntry{
		AuditID:   uuid.New(),
		Timestamp: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		EventType: "message.sealed",
		UserID:    "system",
		Resource:  "secure-channel",
		Action:    "seal",
		Result:    auditDomain.ResultSuccess,
		Details:   map[string]any{"messageId": "msg-001"},
		SourceIP:  "127.0.0.1",
		UserAgent: "securemsg/1.0",
		SessionID: uuid.NewString(),
		Signature: []byte{0xde, 0xad, 0xbe, 0xef},
	}
}

func performGet(t *testing.T, handler gin.HandlerFunc, target string, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = params

	handler(c)
	return recorder
}

func TestAuditLogHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := new(MockAuditUseCase)
		handler := NewAuditLogHandler(useCase, testLogger())

		entry := sampleEntry()
		useCase.On("List", mock.Anything, 0, 50).Return([]*auditDomain.AuditLogEntry{entry}, nil)

		recorder := performGet(t, handler.ListHandler, "/v1/audit-logs", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var response dto.ListAuditLogsResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, entry.AuditID.String(), response.Data[0].AuditID)
		assert.Equal(t, "deadbeef", response.Data[0].Signature)
	})

	t.Run("CustomPagination", func(t *testing.T) {
		useCase := new(MockAuditUseCase)
		handler := NewAuditLogHandler(useCase, testLogger())

		useCase.On("List", mock.Anything, 10, 25).Return([]*auditDomain.AuditLogEntry{}, nil)

		recorder := performGet(t, handler.ListHandler, "/v1/audit-logs?offset=10&limit=25", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("InvalidPagination", func(t *testing.T) {
		useCase := new(MockAuditUseCase)
		handler := NewAuditLogHandler(useCase, testLogger())

		recorder := performGet(t, handler.ListHandler, "/v1/audit-logs?limit=abc", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "List")
	})

	t.Run("RepositoryError", func(t *testing.T) {
		useCase := new(MockAuditUseCase)
		handler := NewAuditLogHandler(useCase, testLogger())

		useCase.On("List", mock.Anything, 0, 50).Return(nil, apperrors.ErrInternal)

		recorder := performGet(t, handler.ListHandler, "/v1/audit-logs", nil)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestAuditLogHandler_VerifyHandler(t *testing.T) {
	t.Run("IntactEntry", func(t *testing.T) {
		useCase := new(MockAuditUseCase)
		handler := NewAuditLogHandler(useCase, testLogger())

		auditID := uuid.New()
		useCase.On("Verify", mock.Anything, auditID).Return(nil)

		recorder := performGet(t, handler.VerifyHandler,
			"/v1/audit-logs/"+auditID.String()+"/verify",
			gin.Params{{Key: "audit_id", Value: auditID.String()}})

		assert.Equal(t, http.StatusOK, recorder.Code)
		var response dto.VerifyAuditLogResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.True(t, response.Valid)
		assert.Equal(t, auditID.String(), response.AuditID)
		assert.Empty(t, response.Error)
	})

	t.Run("TamperedEntry", func(t *testing.T) {
		useCase := new(MockAuditUseCase)
		handler := NewAuditLogHandler(useCase, testLogger())

		auditID := uuid.New()
		useCase.On("Verify", mock.Anything, auditID).Return(auditDomain.ErrSignatureInvalid)

		recorder := performGet(t, handler.VerifyHandler,
			"/v1/audit-logs/"+auditID.String()+"/verify",
			gin.Params{{Key: "audit_id", Value: auditID.String()}})

		assert.Equal(t, http.StatusOK, recorder.Code)
		var response dto.VerifyAuditLogResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.False(t, response.Valid)
		assert.NotEmpty(t, response.Error)
	})

	t.Run("EntryNotFound", func(t *testing.T) {
		useCase := new(MockAuditUseCase)
		handler := NewAuditLogHandler(useCase, testLogger())

		auditID := uuid.New()
		useCase.On("Verify", mock.Anything, auditID).Return(auditDomain.ErrEntryNotFound)

		recorder := performGet(t, handler.VerifyHandler,
			"/v1/audit-logs/"+auditID.String()+"/verify",
			gin.Params{{Key: "audit_id", Value: auditID.String()}})

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("InvalidUUID", func(t *testing.T) {
		useCase := new(MockAuditUseCase)
		handler := NewAuditLogHandler(useCase, testLogger())

		recorder := performGet(t, handler.VerifyHandler,
			"/v1/audit-logs/not-a-uuid/verify",
			gin.Params{{Key: "audit_id", Value: "not-a-uuid"}})

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "Verify")
	})
}

// Package http provides HTTP handlers for audit log operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditDomain "github.com/finbase/securemsg/internal/audit/domain"
	"github.com/finbase/securemsg/internal/audit/http/dto"
	auditUseCase "github.com/finbase/securemsg/internal/audit/usecase"
	apperrors "github.com/finbase/securemsg/internal/errors"
	"github.com/finbase/securemsg/internal/httputil"
)

// AuditLogHandler handles HTTP requests for audit log operations.
type AuditLogHandler struct {
	auditUseCase auditUseCase.AuditUseCase
	logger       *slog.Logger
}

// NewAuditLogHandler creates a new audit log handler with required dependencies.
func NewAuditLogHandler(
	auditUseCase auditUseCase.AuditUseCase,
	logger *slog.Logger,
) *AuditLogHandler {
	return &AuditLogHandler{
		auditUseCase: auditUseCase,
		logger:       logger,
	}
}

// ListHandler retrieves audit log entries with pagination support.
// GET /v1/audit-logs?offset=0&limit=50
// Returns 200 OK with entries ordered by timestamp descending (newest first).
func (h *AuditLogHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	entries, err := h.auditUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapAuditLogEntriesToListResponse(entries)
	c.JSON(http.StatusOK, response)
}

// VerifyHandler checks the tamper-evidence signature of a single audit log entry.
// GET /v1/audit-logs/:audit_id/verify
// Returns 200 OK with the verification verdict; a failed signature is a verdict,
// not a transport error. Returns 404 when the entry does not exist.
func (h *AuditLogHandler) VerifyHandler(c *gin.Context) {
	auditID, err := uuid.Parse(c.Param("audit_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid audit_id format: must be a UUID"),
			h.logger)
		return
	}

	err = h.auditUseCase.Verify(c.Request.Context(), auditID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.VerifyAuditLogResponse{
			AuditID: auditID.String(),
			Valid:   true,
		})
	case apperrors.Is(err, auditDomain.ErrSignatureInvalid):
		c.JSON(http.StatusOK, dto.VerifyAuditLogResponse{
			AuditID: auditID.String(),
			Valid:   false,
			Error:   auditDomain.ErrSignatureInvalid.Error(),
		})
	default:
		httputil.HandleErrorGin(c, err, h.logger)
	}
}

// Package http provides HTTP handlers for the secure message pipeline:
// sealing, opening, validation, and redaction.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbase/securemsg/internal/httputil"
	messageDomain "github.com/finbase/securemsg/internal/message/domain"
	"github.com/finbase/securemsg/internal/message/http/dto"
	messageUseCase "github.com/finbase/securemsg/internal/message/usecase"
	customValidation "github.com/finbase/securemsg/internal/validation"
)

// MessageHandler handles HTTP requests for secure message operations.
type MessageHandler struct {
	channel messageUseCase.SecureChannelUseCase
	logger  *slog.Logger
}

// NewMessageHandler creates a new message handler with required dependencies.
func NewMessageHandler(
	channel messageUseCase.SecureChannelUseCase,
	logger *slog.Logger,
) *MessageHandler {
	return &MessageHandler{
		channel: channel,
		logger:  logger,
	}
}

// SealHandler validates, encrypts, and signs a message.
// POST /v1/messages/seal
// Returns 200 OK with the envelope and signature.
func (h *MessageHandler) SealHandler(c *gin.Context) {
	var req dto.SealMessageRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	sealed, err := h.channel.Seal(c.Request.Context(), req.Message)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSealedMessageToResponse(sealed))
}

// OpenHandler decrypts an envelope and verifies its signature.
// POST /v1/messages/open
// Returns 200 OK with the recovered message.
func (h *MessageHandler) OpenHandler(c *gin.Context) {
	var req dto.OpenMessageRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	sealed := &messageDomain.SealedMessage{
		Envelope:  req.Envelope,
		Signature: req.Signature,
	}

	msg, err := h.channel.Open(c.Request.Context(), sealed)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.OpenMessageResponse{Message: msg})
}

// ValidateHandler pre-flights a message without sealing it.
// POST /v1/messages/validate
// Returns 200 OK with the full list of validation problems; an invalid
// message is not an HTTP error.
func (h *MessageHandler) ValidateHandler(c *gin.Context) {
	var req dto.ValidateMessageRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.channel.Validate(req.Message)

	c.JSON(http.StatusOK, dto.MapValidationResultToResponse(result))
}

// RedactHandler masks sensitive fields in arbitrary data.
// POST /v1/messages/redact
// Returns 200 OK with the masked rendition.
func (h *MessageHandler) RedactHandler(c *gin.Context) {
	var req dto.RedactRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RedactResponse{Data: h.channel.Redact(req.Data)})
}

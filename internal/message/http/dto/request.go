// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/finbase/securemsg/internal/validation"
)

// SealMessageRequest contains the message to protect.
type SealMessageRequest struct {
	Message map[string]any `json:"message" binding:"required"`
}

// Validate checks if the seal request is valid.
func (r *SealMessageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Message, validation.Required),
	)
}

// OpenMessageRequest contains a sealed envelope and its integrity signature.
type OpenMessageRequest struct {
	Envelope  string `json:"envelope" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// Validate checks if the open request is valid.
func (r *OpenMessageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Envelope, validation.Required, customValidation.Base64),
		validation.Field(&r.Signature, validation.Required, customValidation.NoWhitespace),
	)
}

// ValidateMessageRequest contains a message to pre-flight without sealing.
type ValidateMessageRequest struct {
	Message map[string]any `json:"message" binding:"required"`
}

// Validate checks if the validate request is valid.
func (r *ValidateMessageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Message, validation.Required),
	)
}

// RedactRequest contains arbitrary data to mask for safe logging.
type RedactRequest struct {
	Data map[string]any `json:"data" binding:"required"`
}

// Validate checks if the redact request is valid.
func (r *RedactRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Data, validation.Required),
	)
}

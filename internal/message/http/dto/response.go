package dto

import (
	messageDomain "github.com/finbase/securemsg/internal/message/domain"
)

// SealMessageResponse carries the sealed envelope and its signature.
type SealMessageResponse struct {
	Envelope  string `json:"envelope"`
	Signature string `json:"signature"`
}

// MapSealedMessageToResponse converts a domain sealed message to an API response.
func MapSealedMessageToResponse(sealed *messageDomain.SealedMessage) SealMessageResponse {
	return SealMessageResponse{
		Envelope:  sealed.Envelope,
		Signature: sealed.Signature,
	}
}

// OpenMessageResponse carries the recovered message.
type OpenMessageResponse struct {
	Message map[string]any `json:"message"`
}

// ValidateMessageResponse reports the outcome of message validation.
type ValidateMessageResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// MapValidationResultToResponse converts a domain validation result to an API response.
func MapValidationResultToResponse(result messageDomain.ValidationResult) ValidateMessageResponse {
	return ValidateMessageResponse{
		Valid:  result.Valid,
		Errors: result.Errors,
	}
}

// RedactResponse carries the masked rendition of the submitted data.
type RedactResponse struct {
	Data map[string]any `json:"data"`
}

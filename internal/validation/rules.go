// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/finbase/securemsg/internal/errors"
)

var (
	// eventTypeRegex matches dot-separated event type names (e.g., "payment.created").
	eventTypeRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
// Built with validation.By so it also fires on empty input, which the
// string-rule helpers skip.
var NotBlank = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_not_blank_type", "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "must not be blank")
	}
	return nil
})

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// EventType validates event type names: dot-separated identifier segments
var EventType = validation.NewStringRuleWithError(
	func(s string) bool {
		return eventTypeRegex.MatchString(s)
	},
	validation.NewError("validation_event_type", "must be a dot-separated event type name"),
)

// HexKey validates that a string is a hex-encoded 32-byte key
var HexKey = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_hex_key_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_hex_key", "must be valid hex-encoded data")
	}
	if len(key) != 32 {
		return validation.NewError("validation_hex_key_size", "must decode to exactly 32 bytes")
	}
	return nil
})

// Base64 validates that a string is valid base64-encoded data.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	_, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

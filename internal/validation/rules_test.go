package validation_test

import (
	"strings"
	"testing"

	jellydator "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/finbase/securemsg/internal/errors"
	"github.com/finbase/securemsg/internal/validation"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("NilError", func(t *testing.T) {
		assert.Nil(t, validation.WrapValidationError(nil))
	})

	t.Run("NonNilError", func(t *testing.T) {
		err := validation.WrapValidationError(jellydator.NewError("code", "bad value"))

		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"NonEmpty", "payment.created", false},
		{"Empty", "", true},
		{"OnlySpaces", "   ", true},
		{"Tabs", "\t\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := jellydator.Validate(tt.value, validation.NotBlank)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, jellydator.Validate("abc", validation.NoWhitespace))
	assert.Error(t, jellydator.Validate(" abc", validation.NoWhitespace))
	assert.Error(t, jellydator.Validate("abc ", validation.NoWhitespace))
}

func TestEventType(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"Simple", "payment", false},
		{"DotSeparated", "payment.created", false},
		{"MultiSegment", "credit.score.updated", false},
		{"WithUnderscore", "payment.charge_back", false},
		{"LeadingDot", ".payment", true},
		{"TrailingDot", "payment.", true},
		{"LeadingDigit", "1payment", true},
		{"Spaces", "payment created", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := jellydator.Validate(tt.value, validation.EventType)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHexKey(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{"Valid32ByteKey", strings.Repeat("ab", 32), false},
		{"EmptyDeferredToRequired", "", false},
		{"NotHex", "zz" + strings.Repeat("ab", 31), true},
		{"TooShort", strings.Repeat("ab", 16), true},
		{"TooLong", strings.Repeat("ab", 33), true},
		{"NotString", 12345, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := jellydator.Validate(tt.value, validation.HexKey)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBase64(t *testing.T) {
	assert.NoError(t, jellydator.Validate("aGVsbG8=", validation.Base64))
	assert.NoError(t, jellydator.Validate("", validation.Base64))
	assert.Error(t, jellydator.Validate("not base64!!", validation.Base64))
}

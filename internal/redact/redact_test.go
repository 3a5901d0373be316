package redact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbase/securemsg/internal/redact"
)

func TestMaskString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty", "", ""},
		{"SingleChar", "a", "*"},
		{"FourChars", "1234", "****"},
		{"FiveChars", "12345", "12*45"},
		{"TenChars", "1234567890", "12******90"},
		{"SSNFormat", "123-45-6789", "12*******89"},
		{"CardNumber", "4111111111111111", "41************11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, redact.MaskString(tt.input))
		})
	}
}

func TestRedactor_Mask(t *testing.T) {
	redactor := redact.New()

	t.Run("SensitiveFieldsMasked_SiblingsUntouched", func(t *testing.T) {
		// Arrange
		data := map[string]any{
			"ssn":       "123-45-6789",
			"eventType": "user.created",
			"amount":    99.50,
		}

		// Act
		masked := redactor.Mask(data)

		// Assert
		assert.Equal(t, "12*******89", masked["ssn"])
		assert.Equal(t, "user.created", masked["eventType"])
		assert.Equal(t, 99.50, masked["amount"])
	})

	t.Run("CamelCaseSynonyms", func(t *testing.T) {
		data := map[string]any{
			"cardNumber":    "4111111111111111",
			"accountNumber": "000123456789",
			"routingNumber": "121000248",
			"taxId":         "98-7654321",
			"email":         "jane.doe@example.com",
			"phoneNumber":   "+15551234567",
			"password":      "hunter2",
		}

		masked := redactor.Mask(data)

		for key, original := range data {
			assert.NotEqual(t, original, masked[key], "field %q should be masked", key)
		}
		assert.Equal(t, "41************11", masked["cardNumber"])
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		data := map[string]any{
			"SSN":       "123-45-6789",
			"Email":     "jane@example.com",
			"PASSWORD":  "secret123",
			"CardNumber": "4111111111111111",
		}

		masked := redactor.Mask(data)

		for key := range data {
			assert.NotEqual(t, data[key], masked[key], "field %q should be masked", key)
		}
	})

	t.Run("NestedMaps", func(t *testing.T) {
		data := map[string]any{
			"customer": map[string]any{
				"name": "Jane Doe",
				"ssn":  "123-45-6789",
				"bank": map[string]any{
					"iban": "GB82WEST12345698765432",
				},
			},
		}

		masked := redactor.Mask(data)

		customer := masked["customer"].(map[string]any)
		assert.Equal(t, "Jane Doe", customer["name"])
		assert.Equal(t, "12*******89", customer["ssn"])
		bank := customer["bank"].(map[string]any)
		assert.Equal(t, "GB******************32", bank["iban"])
	})

	t.Run("SlicesWalked", func(t *testing.T) {
		data := map[string]any{
			"accounts": []any{
				map[string]any{"accountNumber": "000123456789", "label": "checking"},
			},
		}

		masked := redactor.Mask(data)

		accounts := masked["accounts"].([]any)
		first := accounts[0].(map[string]any)
		assert.Equal(t, "00********89", first["accountNumber"])
		assert.Equal(t, "checking", first["label"])
	})

	t.Run("NonStringValuesUntouched", func(t *testing.T) {
		data := map[string]any{
			"pin":   1234,
			"email": nil,
		}

		masked := redactor.Mask(data)

		assert.Equal(t, 1234, masked["pin"])
		assert.Nil(t, masked["email"])
	})

	t.Run("OriginalNeverMutated", func(t *testing.T) {
		data := map[string]any{
			"ssn": "123-45-6789",
			"nested": map[string]any{
				"password": "hunter2",
			},
		}

		_ = redactor.Mask(data)

		assert.Equal(t, "123-45-6789", data["ssn"])
		assert.Equal(t, "hunter2", data["nested"].(map[string]any)["password"])
	})

	t.Run("NilInput", func(t *testing.T) {
		assert.Nil(t, redactor.Mask(nil))
	})
}

func TestRedactor_CustomRules(t *testing.T) {
	t.Run("AdditionalRule", func(t *testing.T) {
		// Arrange
		redactor := redact.New(redact.WithAdditionalRules(
			redact.MustRule("internal-ref", `ledger.?ref`),
		))
		data := map[string]any{
			"ledgerRef": "LR-20260829-0001",
			"ssn":       "123-45-6789",
		}

		// Act
		masked := redactor.Mask(data)

		// Assert - custom rule applies and defaults are preserved
		assert.Equal(t, "LR************01", masked["ledgerRef"])
		assert.Equal(t, "12*******89", masked["ssn"])
	})

	t.Run("ReplacedRules", func(t *testing.T) {
		redactor := redact.New(redact.WithRules(
			redact.MustRule("only-this", `^secretCode$`),
		))
		data := map[string]any{
			"secretCode": "abcdef",
			"ssn":        "123-45-6789",
		}

		masked := redactor.Mask(data)

		assert.Equal(t, "ab**ef", masked["secretCode"])
		// Default rules were replaced, so ssn passes through.
		assert.Equal(t, "123-45-6789", masked["ssn"])
	})
}

func TestRedactor_Sensitive(t *testing.T) {
	redactor := redact.New()

	require.True(t, redactor.Sensitive("ssn"))
	require.True(t, redactor.Sensitive("customerCardNumber"))
	require.True(t, redactor.Sensitive("bank_account_number"))
	require.False(t, redactor.Sensitive("eventType"))
	require.False(t, redactor.Sensitive("amount"))
}

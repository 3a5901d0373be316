package domain_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/finbase/securemsg/internal/crypto/domain"
	apperrors "github.com/finbase/securemsg/internal/errors"
)

func TestNewKeyMaterial_Success(t *testing.T) {
	// Arrange
	encryptionKeyHex := strings.Repeat("ab", 32)
	signingKeyHex := strings.Repeat("cd", 32)

	// Act
	km, err := cryptoDomain.NewKeyMaterial(encryptionKeyHex, signingKeyHex)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, km)
	assert.Len(t, km.EncryptionKey, 32)
	assert.Len(t, km.SigningKey, 32)
	assert.Equal(t, encryptionKeyHex, hex.EncodeToString(km.EncryptionKey))
	assert.Equal(t, signingKeyHex, hex.EncodeToString(km.SigningKey))
}

func TestNewKeyMaterial_Errors(t *testing.T) {
	validKey := strings.Repeat("ab", 32)

	t.Run("MissingEncryptionKey", func(t *testing.T) {
		km, err := cryptoDomain.NewKeyMaterial("", validKey)

		require.Error(t, err)
		assert.Nil(t, km)
		assert.ErrorIs(t, err, cryptoDomain.ErrEncryptionKeyNotSet)
	})

	t.Run("MissingSigningKey", func(t *testing.T) {
		km, err := cryptoDomain.NewKeyMaterial(validKey, "")

		require.Error(t, err)
		assert.Nil(t, km)
		assert.ErrorIs(t, err, cryptoDomain.ErrSigningKeyNotSet)
	})

	t.Run("NotHexEncoded", func(t *testing.T) {
		km, err := cryptoDomain.NewKeyMaterial("not-hex!", validKey)

		require.Error(t, err)
		assert.Nil(t, km)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyEncoding)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("EncryptionKeyTooShort", func(t *testing.T) {
		km, err := cryptoDomain.NewKeyMaterial(strings.Repeat("ab", 16), validKey)

		require.Error(t, err)
		assert.Nil(t, km)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("SigningKeyTooLong", func(t *testing.T) {
		km, err := cryptoDomain.NewKeyMaterial(validKey, strings.Repeat("ab", 33))

		require.Error(t, err)
		assert.Nil(t, km)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})
}

func TestKeyMaterial_Close(t *testing.T) {
	// Arrange
	km, err := cryptoDomain.NewKeyMaterial(strings.Repeat("ab", 32), strings.Repeat("cd", 32))
	require.NoError(t, err)

	// Act
	km.Close()

	// Assert
	assert.Nil(t, km.EncryptionKey)
	assert.Nil(t, km.SigningKey)
}

func TestZero(t *testing.T) {
	t.Run("NonNilSlice", func(t *testing.T) {
		b := []byte{1, 2, 3, 4}

		cryptoDomain.Zero(b)

		assert.Equal(t, []byte{0, 0, 0, 0}, b)
	})

	t.Run("NilSlice", func(t *testing.T) {
		assert.NotPanics(t, func() {
			cryptoDomain.Zero(nil)
		})
	})
}

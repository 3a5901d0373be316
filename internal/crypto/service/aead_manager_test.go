package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/finbase/securemsg/internal/crypto/domain"
	"github.com/finbase/securemsg/internal/crypto/service"
)

func TestAEADManager_CreateCipher(t *testing.T) {
	manager := service.NewAEADManager()

	t.Run("AES256GCM", func(t *testing.T) {
		cipher, err := manager.CreateCipher(randomKey(t), cryptoDomain.AES256GCM)

		require.NoError(t, err)
		assert.IsType(t, &service.AESGCMCipher{}, cipher)
	})

	t.Run("ChaCha20Poly1305", func(t *testing.T) {
		cipher, err := manager.CreateCipher(randomKey(t), cryptoDomain.ChaCha20Poly1305)

		require.NoError(t, err)
		assert.IsType(t, &service.ChaCha20Poly1305Cipher{}, cipher)
	})

	t.Run("InvalidKeySize", func(t *testing.T) {
		cipher, err := manager.CreateCipher(make([]byte, 16), cryptoDomain.AES256GCM)

		require.Error(t, err)
		assert.Nil(t, cipher)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("UnsupportedAlgorithm", func(t *testing.T) {
		cipher, err := manager.CreateCipher(randomKey(t), cryptoDomain.Algorithm("des-ede3"))

		require.Error(t, err)
		assert.Nil(t, cipher)
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})
}

func TestAEADManager_CiphersRoundTrip(t *testing.T) {
	manager := service.NewAEADManager()

	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AES256GCM, cryptoDomain.ChaCha20Poly1305} {
		t.Run(string(alg), func(t *testing.T) {
			// Arrange
			cipher, err := manager.CreateCipher(randomKey(t), alg)
			require.NoError(t, err)
			plaintext := []byte("event payload")
			aad := []byte("financial-messages")

			// Act
			ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
			require.NoError(t, err)
			decrypted, err := cipher.Decrypt(ciphertext, nonce, aad)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)
			assert.Equal(t, 16, cipher.Overhead())
		})
	}
}

package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

// ivSize is the initialization vector length used for AES-GCM envelopes.
// Envelopes carry a 16-byte IV, so GCM is configured with a 16-byte nonce
// instead of the 12-byte default.
const ivSize = 16

// AESGCMCipher implements the AEAD interface using AES-256-GCM
// (Advanced Encryption Standard with Galois/Counter Mode).
//
// AES-GCM provides authenticated encryption with associated data (AEAD), combining
// the confidentiality of AES encryption with the authenticity of GMAC. This
// implementation uses AES-256 with a 256-bit key.
//
// Security properties:
//   - 256-bit key size (maximum security level)
//   - 16-byte IV, randomly generated per encryption call, never derived
//     implicitly from the cipher state
//   - 16-byte authentication tag (appended to the ciphertext)
//   - Authenticated encryption prevents tampering and forgery
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use from multiple
//	goroutines. Each encryption operation generates a unique IV independently.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits) for AES-256. Using a shorter or longer
// key will result in an error. Keys should be generated using crypto/rand for
// cryptographic security.
//
// Parameters:
//   - key: A 32-byte (256-bit) encryption key
//
// Returns:
//   - A new AESGCMCipher instance ready for encryption/decryption
//   - An error if the key size is invalid or cipher initialization fails
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != 32 {
		return nil, errors.New("key must be exactly 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM with optional additional authenticated data.
//
// The AAD (Additional Authenticated Data) is authenticated but not encrypted, binding
// the ciphertext to a context (here: the message-domain tag) without encrypting it.
// This prevents ciphertext from being replayed in a different protocol context even
// if intercepted. Pass nil for AAD if no additional data needs to be authenticated.
//
// A unique 16-byte IV is randomly generated for each encryption operation using
// crypto/rand. The IV must be stored alongside the ciphertext for later decryption.
// With GCM, it's critical that IVs are never reused with the same key.
//
// The returned ciphertext includes the 16-byte authentication tag appended to the end.
//
// Parameters:
//   - plaintext: The data to encrypt (can be empty)
//   - aad: Additional data to authenticate but not encrypt (can be nil)
//
// Returns:
//   - ciphertext: The encrypted data with authentication tag appended
//   - nonce: The randomly generated 16-byte IV used for this encryption
//   - err: Any error encountered during IV generation or encryption
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt decrypts ciphertext using AES-256-GCM with the provided nonce and AAD.
//
// The same AAD used during encryption must be provided for successful decryption.
// If the AAD doesn't match, authentication will fail and an error will be returned.
//
// This method verifies the authentication tag before returning plaintext, ensuring
// the ciphertext hasn't been tampered with. If verification fails, no plaintext is
// returned to prevent processing of potentially malicious data.
//
// Parameters:
//   - ciphertext: The encrypted data to decrypt (includes authentication tag)
//   - nonce: The 16-byte IV that was used during encryption
//   - aad: The same additional data provided during encryption (can be nil)
//
// Returns:
//   - plaintext: The decrypted data
//   - err: An error if authentication fails, the nonce is invalid, or the ciphertext has been modified
func (a *AESGCMCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// Overhead returns the byte length of the GCM authentication tag (16 bytes).
func (a *AESGCMCipher) Overhead() int {
	return a.aead.Overhead()
}

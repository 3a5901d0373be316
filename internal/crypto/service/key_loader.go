package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/finbase/securemsg/internal/config"
	cryptoDomain "github.com/finbase/securemsg/internal/crypto/domain"
)

// KeyLoaderService loads the layer's key material from process configuration.
//
// Two modes are supported:
//   - Plain mode (default): MESSAGE_ENCRYPTION_KEY and MESSAGE_SIGNING_KEY hold
//     hex-encoded 32-byte keys.
//   - Wrapped mode: when KMS_KEY_URI is configured, the two variables hold
//     base64 ciphertexts produced by the KMS key-wrapping key; they are unwrapped
//     through a gocloud.dev secrets keeper at startup.
//
// Either way, loading happens once during initialization and any failure is a
// fatal configuration error.
type KeyLoaderService struct {
	kms KMSService
}

// NewKeyLoader creates a new KeyLoaderService with the provided KMS service.
func NewKeyLoader(kms KMSService) *KeyLoaderService {
	return &KeyLoaderService{kms: kms}
}

// Load reads, decodes, and validates the key material described by cfg.
//
// Returns the sentinel configuration errors from the crypto domain when keys
// are missing, malformed, or of the wrong length. The caller must treat any
// error as fatal and abort initialization.
func (kl *KeyLoaderService) Load(ctx context.Context, cfg *config.Config) (*cryptoDomain.KeyMaterial, error) {
	if cfg.KMSKeyURI == "" {
		return cryptoDomain.NewKeyMaterial(cfg.MessageEncryptionKey, cfg.MessageSigningKey)
	}

	keeper, err := kl.kms.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyUnwrapFailed, err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	encryptionKey, err := kl.unwrap(ctx, keeper, "encryption key", cfg.MessageEncryptionKey, cryptoDomain.ErrEncryptionKeyNotSet)
	if err != nil {
		return nil, err
	}

	signingKey, err := kl.unwrap(ctx, keeper, "signing key", cfg.MessageSigningKey, cryptoDomain.ErrSigningKeyNotSet)
	if err != nil {
		cryptoDomain.Zero(encryptionKey)
		return nil, err
	}

	return &cryptoDomain.KeyMaterial{
		EncryptionKey: encryptionKey,
		SigningKey:    signingKey,
	}, nil
}

// unwrap base64-decodes a wrapped secret and decrypts it through the keeper.
func (kl *KeyLoaderService) unwrap(
	ctx context.Context,
	keeper KMSKeeper,
	name, wrapped string,
	notSetErr error,
) ([]byte, error) {
	if wrapped == "" {
		return nil, notSetErr
	}

	ciphertext, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid base64", cryptoDomain.ErrInvalidKeyEncoding, name)
	}

	key, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", cryptoDomain.ErrKeyUnwrapFailed, name)
	}
	if len(key) != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, fmt.Errorf(
			"%w: unwrapped %s must be %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize, name, cryptoDomain.KeySize, len(key),
		)
	}

	return key, nil
}

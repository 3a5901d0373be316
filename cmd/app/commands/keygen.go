package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	cryptoDomain "github.com/finbase/securemsg/internal/crypto/domain"
	cryptoService "github.com/finbase/securemsg/internal/crypto/service"
)

// RunKeygen generates a fresh encryption key and signing key for the message
// security layer. Key material is zeroed from memory after encoding.
//
// Without KMS parameters the keys are printed hex-encoded, ready for
// MESSAGE_ENCRYPTION_KEY and MESSAGE_SIGNING_KEY. When kmsProvider and
// kmsKeyURI are both set, each key is wrapped by the KMS key and printed as
// base64 ciphertext, together with the KMS configuration.
//
// Security: never use the localsecrets provider in production. Use cloud KMS
// providers (gcpkms, awskms, azurekeyvault, hashivault).
func RunKeygen(
	ctx context.Context,
	kms cryptoService.KMSService,
	writer io.Writer,
	kmsProvider, kmsKeyURI string,
) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf("--kms-provider and --kms-key-uri must be set together")
	}

	encryptionKey := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(encryptionKey); err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}
	defer cryptoDomain.Zero(encryptionKey)

	signingKey := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(signingKey); err != nil {
		return fmt.Errorf("failed to generate signing key: %w", err)
	}
	defer cryptoDomain.Zero(signingKey)

	if kmsKeyURI == "" {
		_, _ = fmt.Fprintln(writer, "# Message Key Configuration (plain mode)")
		_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "MESSAGE_ENCRYPTION_KEY=\"%s\"\n", hex.EncodeToString(encryptionKey))
		_, _ = fmt.Fprintf(writer, "MESSAGE_SIGNING_KEY=\"%s\"\n", hex.EncodeToString(signingKey))
		return nil
	}

	keeperInterface, err := kms.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeperInterface.Close(); closeErr != nil {
			_, _ = fmt.Fprintf(writer, "Warning: failed to close KMS keeper: %v\n", closeErr)
		}
	}()

	keeper, ok := keeperInterface.(interface {
		Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	})
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	wrappedEncryptionKey, err := keeper.Encrypt(ctx, encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to wrap encryption key: %w", err)
	}

	wrappedSigningKey, err := keeper.Encrypt(ctx, signingKey)
	if err != nil {
		return fmt.Errorf("failed to wrap signing key: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "# Message Key Configuration (KMS mode)")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "MESSAGE_ENCRYPTION_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(wrappedEncryptionKey))
	_, _ = fmt.Fprintf(writer, "MESSAGE_SIGNING_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(wrappedSigningKey))

	return nil
}

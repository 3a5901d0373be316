package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/finbase/securemsg/internal/crypto/domain"
	cryptoService "github.com/finbase/securemsg/internal/crypto/service"
)

// KeyMaterial returns the loaded message keys.
// Keys are loaded on first access, unwrapping through the KMS when configured.
func (c *Container) KeyMaterial() (*cryptoDomain.KeyMaterial, error) {
	var err error
	c.keyMaterialInit.Do(func() {
		c.keyMaterial, err = c.initKeyMaterial()
		if err != nil {
			c.initErrors["keyMaterial"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyMaterial"]; exists {
		return nil, storedErr
	}
	return c.keyMaterial, nil
}

// AEADManager returns the AEAD cipher factory.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KMSService returns the KMS service for key unwrapping.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// initKeyMaterial loads the message keys from configuration.
func (c *Container) initKeyMaterial() (*cryptoDomain.KeyMaterial, error) {
	loader := cryptoService.NewKeyLoader(c.KMSService())

	keys, err := loader.Load(context.Background(), c.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load key material: %w", err)
	}

	return keys, nil
}

package app

import (
	"fmt"

	cryptoDomain "github.com/finbase/securemsg/internal/crypto/domain"
	messageHTTP "github.com/finbase/securemsg/internal/message/http"
	messageService "github.com/finbase/securemsg/internal/message/service"
	messageUsecase "github.com/finbase/securemsg/internal/message/usecase"
	"github.com/finbase/securemsg/internal/redact"
)

// EnvelopeCodec returns the envelope encryption codec.
func (c *Container) EnvelopeCodec() (messageService.EnvelopeCodec, error) {
	var err error
	c.envelopeCodecInit.Do(func() {
		c.envelopeCodec, err = c.initEnvelopeCodec()
		if err != nil {
			c.initErrors["envelopeCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envelopeCodec"]; exists {
		return nil, storedErr
	}
	return c.envelopeCodec, nil
}

// IntegritySigner returns the message integrity signer.
func (c *Container) IntegritySigner() (messageService.IntegritySigner, error) {
	var err error
	c.integritySignerInit.Do(func() {
		c.integritySigner, err = c.initIntegritySigner()
		if err != nil {
			c.initErrors["integritySigner"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["integritySigner"]; exists {
		return nil, storedErr
	}
	return c.integritySigner, nil
}

// MessageValidator returns the message validator.
func (c *Container) MessageValidator() messageService.MessageValidator {
	c.validatorInit.Do(func() {
		c.messageValidator = messageService.NewMessageValidator()
	})
	return c.messageValidator
}

// Redactor returns the sensitive data redactor.
func (c *Container) Redactor() *redact.Redactor {
	c.redactorInit.Do(func() {
		c.redactor = redact.New()
	})
	return c.redactor
}

// SecureChannel returns the secure channel use case.
func (c *Container) SecureChannel() (messageUsecase.SecureChannelUseCase, error) {
	var err error
	c.secureChannelInit.Do(func() {
		c.secureChannel, err = c.initSecureChannel()
		if err != nil {
			c.initErrors["secureChannel"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secureChannel"]; exists {
		return nil, storedErr
	}
	return c.secureChannel, nil
}

// MessageHandler returns the HTTP handler for secure message operations.
func (c *Container) MessageHandler() (*messageHTTP.MessageHandler, error) {
	var err error
	c.messageHandlerInit.Do(func() {
		c.messageHandler, err = c.initMessageHandler()
		if err != nil {
			c.initErrors["messageHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["messageHandler"]; exists {
		return nil, storedErr
	}
	return c.messageHandler, nil
}

// initEnvelopeCodec creates the envelope codec with the configured algorithm.
func (c *Container) initEnvelopeCodec() (messageService.EnvelopeCodec, error) {
	keys, err := c.KeyMaterial()
	if err != nil {
		return nil, fmt.Errorf("failed to get key material for envelope codec: %w", err)
	}

	return messageService.NewEnvelopeCodec(
		keys,
		cryptoDomain.Algorithm(c.config.EnvelopeAlgorithm),
		c.AEADManager(),
		c.Logger(),
	)
}

// initIntegritySigner creates the integrity signer.
func (c *Container) initIntegritySigner() (messageService.IntegritySigner, error) {
	keys, err := c.KeyMaterial()
	if err != nil {
		return nil, fmt.Errorf("failed to get key material for integrity signer: %w", err)
	}

	return messageService.NewIntegritySigner(keys), nil
}

// initSecureChannel creates the secure channel use case with all its dependencies.
func (c *Container) initSecureChannel() (messageUsecase.SecureChannelUseCase, error) {
	codec, err := c.EnvelopeCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope codec for secure channel: %w", err)
	}

	signer, err := c.IntegritySigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get integrity signer for secure channel: %w", err)
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for secure channel: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for secure channel: %w", err)
	}

	useCase := messageUsecase.NewSecureChannelUseCase(
		codec,
		signer,
		c.MessageValidator(),
		c.Redactor(),
		auditUseCase,
	)

	return messageUsecase.NewSecureChannelUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initMessageHandler creates the message HTTP handler.
func (c *Container) initMessageHandler() (*messageHTTP.MessageHandler, error) {
	channel, err := c.SecureChannel()
	if err != nil {
		return nil, fmt.Errorf("failed to get secure channel for message handler: %w", err)
	}

	return messageHTTP.NewMessageHandler(channel, c.Logger()), nil
}

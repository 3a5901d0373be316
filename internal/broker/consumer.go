package broker

import (
	"context"
	"log/slog"

	"github.com/segmentio/kafka-go"

	messageDomain "github.com/finbase/securemsg/internal/message/domain"
	messageUsecase "github.com/finbase/securemsg/internal/message/usecase"
)

// MessageReader is the subset of kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// SecureConsumer reads envelopes from the broker and opens them through the
// secure channel: signature verification, decryption, and re-validation all
// happen before a message reaches the handler.
type SecureConsumer struct {
	reader  MessageReader
	channel messageUsecase.SecureChannelUseCase
	logger  *slog.Logger
}

// NewSecureConsumer creates a consumer over an already-configured reader.
// The reader should carry the Dialer from SecurityConfig.
func NewSecureConsumer(
	reader MessageReader,
	channel messageUsecase.SecureChannelUseCase,
	logger *slog.Logger,
) *SecureConsumer {
	return &SecureConsumer{
		reader:  reader,
		channel: channel,
		logger:  logger,
	}
}

// Consume blocks until the next broker record arrives, then opens it.
//
// Records that fail to open return the pipeline's error (opaque decryption
// failure, invalid signature, or invalid message) together with a nil
// message; the caller decides whether to skip or halt.
func (c *SecureConsumer) Consume(ctx context.Context) (messageDomain.DomainMessage, error) {
	record, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return nil, err
	}

	sealed := &messageDomain.SealedMessage{
		Envelope:  string(record.Value),
		Signature: signatureFrom(record),
	}

	msg, err := c.channel.Open(ctx, sealed)
	if err != nil {
		c.logger.Warn("rejected inbound message",
			slog.String("topic", record.Topic),
			slog.Int64("offset", record.Offset),
			slog.Any("error", err),
		)
		return nil, err
	}

	return msg, nil
}

// signatureFrom extracts the integrity signature header. A missing header
// yields an empty signature, which verification rejects downstream.
func signatureFrom(record kafka.Message) string {
	for _, header := range record.Headers {
		if header.Key == SignatureHeader {
			return string(header.Value)
		}
	}
	return ""
}

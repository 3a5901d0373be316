package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	messageDomain "github.com/finbase/securemsg/internal/message/domain"
	messageUsecase "github.com/finbase/securemsg/internal/message/usecase"
)

// sealOutput is the JSON document written by the seal command and read back
// by the open command.
type sealOutput struct {
	Envelope  string `json:"envelope"`
	Signature string `json:"signature"`
}

// RunSeal reads a JSON message from the input, seals it, and writes the
// envelope and signature as JSON to the output.
func RunSeal(
	ctx context.Context,
	channel messageUsecase.SecureChannelUseCase,
	logger *slog.Logger,
	tuple IOTuple,
) error {
	var msg messageDomain.DomainMessage
	if err := json.NewDecoder(tuple.Reader).Decode(&msg); err != nil {
		return fmt.Errorf("failed to decode input message: %w", err)
	}

	sealed, err := channel.Seal(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to seal message: %w", err)
	}

	logger.Debug("message sealed", slog.String("message_id", msg.MessageID()))

	encoder := json.NewEncoder(tuple.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sealOutput{
		Envelope:  sealed.Envelope,
		Signature: sealed.Signature,
	}); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	return nil
}

// RunOpen reads an envelope and signature as JSON from the input, opens the
// sealed message, and writes the recovered message JSON to the output.
func RunOpen(
	ctx context.Context,
	channel messageUsecase.SecureChannelUseCase,
	logger *slog.Logger,
	tuple IOTuple,
) error {
	var input sealOutput
	if err := json.NewDecoder(tuple.Reader).Decode(&input); err != nil {
		return fmt.Errorf("failed to decode input envelope: %w", err)
	}

	msg, err := channel.Open(ctx, &messageDomain.SealedMessage{
		Envelope:  input.Envelope,
		Signature: input.Signature,
	})
	if err != nil {
		return fmt.Errorf("failed to open message: %w", err)
	}

	logger.Debug("message opened")

	encoder := json.NewEncoder(tuple.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(msg); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	return nil
}

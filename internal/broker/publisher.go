package broker

import (
	"context"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	messageDomain "github.com/finbase/securemsg/internal/message/domain"
	messageUsecase "github.com/finbase/securemsg/internal/message/usecase"
)

// SignatureHeader carries the integrity signature alongside the envelope, so
// consumers can verify the message without parsing the payload first.
const SignatureHeader = "x-signature"

// sealWorkers bounds concurrent sealing during batch publishes.
const sealWorkers = 8

// MessageWriter is the subset of kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// SecurePublisher seals messages through the secure channel and writes the
// resulting envelopes to the broker. The message key is the message
// identifier, keeping retries for the same message in one partition.
type SecurePublisher struct {
	writer  MessageWriter
	channel messageUsecase.SecureChannelUseCase
	limiter *rate.Limiter
	logger  *slog.Logger
}

// PublisherOption configures a SecurePublisher.
type PublisherOption func(*SecurePublisher)

// WithRateLimit throttles publishing to perSecond operations with the given
// burst. A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) PublisherOption {
	return func(p *SecurePublisher) {
		if perSecond > 0 {
			p.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// NewSecurePublisher creates a publisher over an already-configured writer.
// The writer should carry the Transport from SecurityConfig.
func NewSecurePublisher(
	writer MessageWriter,
	channel messageUsecase.SecureChannelUseCase,
	logger *slog.Logger,
	opts ...PublisherOption,
) *SecurePublisher {
	p := &SecurePublisher{
		writer:  writer,
		channel: channel,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish seals a single message and writes it to the broker.
func (p *SecurePublisher) Publish(ctx context.Context, msg messageDomain.DomainMessage) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	record, err := p.seal(ctx, msg)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, record); err != nil {
		return err
	}

	p.logger.Debug("published secure message",
		slog.String("key", string(record.Key)),
	)

	return nil
}

// PublishBatch seals msgs concurrently, preserving order, and writes them in
// a single broker call. One unsealable message fails the whole batch before
// anything is written.
func (p *SecurePublisher) PublishBatch(ctx context.Context, msgs []messageDomain.DomainMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	records := make([]kafka.Message, len(msgs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(sealWorkers)

	for i, msg := range msgs {
		group.Go(func() error {
			if err := p.wait(groupCtx); err != nil {
				return err
			}
			record, err := p.seal(groupCtx, msg)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, records...); err != nil {
		return err
	}

	p.logger.Debug("published secure message batch",
		slog.Int("count", len(records)),
	)

	return nil
}

// seal runs the secure pipeline and builds the broker record.
func (p *SecurePublisher) seal(
	ctx context.Context,
	msg messageDomain.DomainMessage,
) (kafka.Message, error) {
	sealed, err := p.channel.Seal(ctx, msg)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(msg.MessageID()),
		Value: []byte(sealed.Envelope),
		Headers: []kafka.Header{
			{Key: SignatureHeader, Value: []byte(sealed.Signature)},
		},
	}, nil
}

func (p *SecurePublisher) wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}

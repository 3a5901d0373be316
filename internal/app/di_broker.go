package app

import (
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/finbase/securemsg/internal/broker"
)

// BrokerSecurityConfig returns the broker security settings.
// TLS material is loaded from disk on first access.
func (c *Container) BrokerSecurityConfig() (*broker.SecurityConfig, error) {
	var err error
	c.brokerSecurityInit.Do(func() {
		c.brokerSecurity, err = broker.NewSecurityConfig(c.config)
		if err != nil {
			c.initErrors["brokerSecurity"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["brokerSecurity"]; exists {
		return nil, storedErr
	}
	return c.brokerSecurity, nil
}

// PublisherFor builds a secure publisher for the given topic. Each call
// creates a new kafka writer; callers own its lifecycle and should close it
// through the returned writer when done.
func (c *Container) PublisherFor(topic string) (*broker.SecurePublisher, *kafka.Writer, error) {
	securityConfig, err := c.BrokerSecurityConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get broker security config for publisher: %w", err)
	}

	channel, err := c.SecureChannel()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get secure channel for publisher: %w", err)
	}

	writer := &kafka.Writer{
		Addr:            kafka.TCP(securityConfig.BootstrapServers...),
		Topic:           topic,
		Balancer:        &kafka.Hash{},
		Transport:       securityConfig.Transport(),
		MaxAttempts:     securityConfig.MaxAttempts,
		WriteBackoffMin: securityConfig.WriteBackoffMin,
		WriteBackoffMax: securityConfig.WriteBackoffMax,
	}

	var opts []broker.PublisherOption
	if c.config.BrokerPublishRateLimit > 0 {
		opts = append(opts, broker.WithRateLimit(
			c.config.BrokerPublishRateLimit,
			c.config.BrokerPublishBurst,
		))
	}

	return broker.NewSecurePublisher(writer, channel, c.Logger(), opts...), writer, nil
}

// ConsumerFor builds a secure consumer for the given topic and consumer group.
// Each call creates a new kafka reader; callers own its lifecycle and should
// close it through the returned reader when done.
func (c *Container) ConsumerFor(topic, groupID string) (*broker.SecureConsumer, *kafka.Reader, error) {
	securityConfig, err := c.BrokerSecurityConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get broker security config for consumer: %w", err)
	}

	channel, err := c.SecureChannel()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get secure channel for consumer: %w", err)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: securityConfig.BootstrapServers,
		Topic:   topic,
		GroupID: groupID,
		Dialer:  securityConfig.Dialer(),
	})

	return broker.NewSecureConsumer(reader, channel, c.Logger()), reader, nil
}

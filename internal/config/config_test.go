package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "aes-256-gcm", cfg.EnvelopeAlgorithm)
	assert.Equal(t, "localhost:9092", cfg.BrokerBootstrapServers)
	assert.Equal(t, "securemsg", cfg.BrokerClientID)
	assert.Equal(t, 10*time.Second, cfg.BrokerDialTimeout)
	assert.Equal(t, 3, cfg.BrokerMaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.BrokerWriteBackoffMin)
	assert.Equal(t, time.Second, cfg.BrokerWriteBackoffMax)
	assert.False(t, cfg.AuditStoreEnabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "securemsg", cfg.MetricsNamespace)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("BROKER_SASL_MECHANISM", "scram-sha-512")
	t.Setenv("BROKER_TLS_ENABLED", "true")
	t.Setenv("AUDIT_STORE_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9999, cfg.ServerPort)
	assert.Equal(t, "scram-sha-512", cfg.BrokerSASLMechanism)
	assert.True(t, cfg.BrokerTLSEnabled)
	assert.True(t, cfg.AuditStoreEnabled)
}

func TestIsProduction(t *testing.T) {
	tests := []struct {
		environment string
		expected    bool
	}{
		{"production", true},
		{"staging", false},
		{"development", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			assert.Equal(t, tt.expected, cfg.IsProduction())
		})
	}
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		expected string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetGinMode())
		})
	}
}

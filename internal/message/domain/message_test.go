package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/finbase/securemsg/internal/crypto/domain"
	"github.com/finbase/securemsg/internal/message/domain"
)

func TestDomainMessage_Fields(t *testing.T) {
	msg := domain.DomainMessage{
		"messageId": "msg-001",
		"eventType": "payment.created",
		"amount":    125.00,
	}

	assert.Equal(t, "msg-001", msg.MessageID())
	assert.Equal(t, "payment.created", msg.EventType())
}

func TestDomainMessage_MissingFields(t *testing.T) {
	msg := domain.DomainMessage{"amount": 1}

	assert.Empty(t, msg.MessageID())
	assert.Empty(t, msg.EventType())

	_, ok := msg.Timestamp()
	assert.False(t, ok)
}

func TestDomainMessage_Timestamp(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("TimeValue", func(t *testing.T) {
		msg := domain.DomainMessage{"timestamp": now}

		ts, ok := msg.Timestamp()

		require.True(t, ok)
		assert.Equal(t, now, ts)
	})

	t.Run("RFC3339String", func(t *testing.T) {
		msg := domain.DomainMessage{"timestamp": now.Format(time.RFC3339)}

		ts, ok := msg.Timestamp()

		require.True(t, ok)
		assert.WithinDuration(t, now, ts, time.Second)
	})

	t.Run("EpochMillisFloat", func(t *testing.T) {
		msg := domain.DomainMessage{"timestamp": float64(now.UnixMilli())}

		ts, ok := msg.Timestamp()

		require.True(t, ok)
		assert.Equal(t, now.UnixMilli(), ts.UnixMilli())
	})

	t.Run("MalformedString", func(t *testing.T) {
		msg := domain.DomainMessage{"timestamp": "yesterday"}

		_, ok := msg.Timestamp()

		assert.False(t, ok)
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		msg := domain.DomainMessage{"timestamp": []any{1, 2}}

		_, ok := msg.Timestamp()

		assert.False(t, ok)
	})
}

func TestDomainMessage_CanonicalRoundTrip(t *testing.T) {
	// Arrange
	msg := domain.DomainMessage{
		"messageId": "msg-002",
		"eventType": "transfer.settled",
		"nested":    map[string]any{"a": "b"},
	}

	// Act
	data, err := msg.Canonical()
	require.NoError(t, err)
	parsed, err := domain.ParseDomainMessage(data)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "msg-002", parsed.MessageID())
	assert.Equal(t, "transfer.settled", parsed.EventType())
}

func TestDomainMessage_CanonicalIsDeterministic(t *testing.T) {
	msg := domain.DomainMessage{
		"zeta":  "last",
		"alpha": "first",
		"mid":   3,
	}

	first, err := msg.Canonical()
	require.NoError(t, err)
	second, err := msg.Canonical()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Keys are serialized in sorted order.
	assert.Equal(t, `{"alpha":"first","mid":3,"zeta":"last"}`, string(first))
}

func TestSecureEnvelope_EncodeDecode(t *testing.T) {
	// Arrange
	envelope := domain.NewSecureEnvelope(
		[]byte{0x01, 0x02},
		[]byte{0xaa, 0xbb},
		[]byte{0xcc},
		cryptoDomain.AES256GCM,
	)

	// Act
	encoded, err := envelope.Encode()
	require.NoError(t, err)
	decoded, err := domain.DecodeSecureEnvelope(encoded)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, envelope, decoded)

	iv, ciphertext, authTag, err := decoded.Materialize()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, iv)
	assert.Equal(t, []byte{0xaa, 0xbb}, ciphertext)
	assert.Equal(t, []byte{0xcc}, authTag)
}

func TestDecodeSecureEnvelope_Errors(t *testing.T) {
	t.Run("NotBase64", func(t *testing.T) {
		_, err := domain.DecodeSecureEnvelope("not base64!!")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidEnvelope)
	})

	t.Run("NotJSON", func(t *testing.T) {
		_, err := domain.DecodeSecureEnvelope("bm90IGpzb24=")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidEnvelope)
	})
}

func TestSecureEnvelope_MaterializeErrors(t *testing.T) {
	envelope := domain.SecureEnvelope{
		IV:        "zz",
		Encrypted: "aabb",
		AuthTag:   "cc",
		Algorithm: cryptoDomain.AES256GCM,
	}

	_, _, _, err := envelope.Materialize()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidEnvelope)
}

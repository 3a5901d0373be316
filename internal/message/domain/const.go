package domain

import "time"

// AssociatedData is the fixed associated-data tag bound into every envelope's
// AEAD computation. It pins ciphertexts to this message protocol: an envelope
// produced under a different tag (or cut-and-pasted from another protocol)
// fails authentication on decrypt. Encrypt and decrypt sites must share this
// exact constant.
const AssociatedData = "financial-messages"

// Well-known field names every domain message is expected to carry.
const (
	FieldMessageID = "messageId"
	FieldTimestamp = "timestamp"
	FieldEventType = "eventType"
)

const (
	// MaxMessageSize is the ceiling, in bytes, for a message's canonical
	// serialized form. Messages at or above this size fail validation.
	MaxMessageSize = 1 << 20

	// MaxMessageAge is the maximum allowed distance between a message's
	// timestamp and the current time, in either direction.
	MaxMessageAge = time.Hour

	// MaxClockDrift is how far in the future a message timestamp may be,
	// tolerating clock skew between producers and consumers.
	MaxClockDrift = 60 * time.Second
)

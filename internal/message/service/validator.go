package service

import (
	"fmt"
	"time"

	messageDomain "github.com/finbase/securemsg/internal/message/domain"
)

// MessageValidatorService implements MessageValidator: structural, temporal and
// size checks for domain messages prior to sealing and after opening.
//
// Validate never returns an error. Every finding is collected into the
// ValidationResult, so callers see the full set of problems in one pass.
type MessageValidatorService struct {
	now func() time.Time
}

// NewMessageValidator creates a validator using the wall clock.
func NewMessageValidator() *MessageValidatorService {
	return NewMessageValidatorAt(time.Now)
}

// NewMessageValidatorAt creates a validator with an explicit clock, used by
// tests to pin temporal checks.
func NewMessageValidatorAt(now func() time.Time) *MessageValidatorService {
	return &MessageValidatorService{now: now}
}

// Validate checks required fields, timestamp sanity and serialized size.
func (v *MessageValidatorService) Validate(msg messageDomain.DomainMessage) messageDomain.ValidationResult {
	result := messageDomain.ValidationResult{Valid: true}

	fail := func(format string, args ...any) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	if msg == nil {
		fail("message must be a non-empty object")
		return result
	}

	if msg.MessageID() == "" {
		fail("missing required field: %s", messageDomain.FieldMessageID)
	}
	if msg.EventType() == "" {
		fail("missing required field: %s", messageDomain.FieldEventType)
	}

	if _, ok := msg[messageDomain.FieldTimestamp]; !ok {
		fail("missing required field: %s", messageDomain.FieldTimestamp)
	} else {
		ts, ok := msg.Timestamp()
		if !ok {
			fail("invalid timestamp: %v", msg[messageDomain.FieldTimestamp])
		} else {
			now := v.now()
			if now.Sub(ts) > messageDomain.MaxMessageAge {
				fail("invalid timestamp: message is older than %s", messageDomain.MaxMessageAge)
			}
			if ts.Sub(now) > messageDomain.MaxClockDrift {
				fail("invalid timestamp: message timestamp is more than %s in the future", messageDomain.MaxClockDrift)
			}
		}
	}

	canonical, err := msg.Canonical()
	if err != nil {
		fail("message is not serializable: %v", err)
		return result
	}
	if len(canonical) >= messageDomain.MaxMessageSize {
		fail("message size %d exceeds maximum limit of %d bytes", len(canonical), messageDomain.MaxMessageSize)
	}

	return result
}

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/finbase/securemsg/internal/redact"
)

// RunRedact reads a JSON object from the input, masks sensitive fields, and
// writes the redacted JSON to the output. Useful for preparing payloads for
// log shipping or support tickets.
func RunRedact(redactor *redact.Redactor, tuple IOTuple) error {
	var data map[string]any
	if err := json.NewDecoder(tuple.Reader).Decode(&data); err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}

	encoder := json.NewEncoder(tuple.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(redactor.Mask(data)); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	return nil
}

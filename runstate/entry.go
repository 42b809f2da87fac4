package runstate

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

// ParseError is returned for a record that cannot be decoded or folded. It
// carries the raw record so a broken log can be located.
type ParseError struct {
	Record string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse log record: %v\n%s", e.Err, e.Record)
}

// Unwrap implements the errors.Unwrap interface
func (e *ParseError) Unwrap() error {
	return e.Err
}

// DecodeEntry decodes one raw record into a validated LogEntry
func DecodeEntry(record string) (types.LogEntry, error) {
	var entry types.LogEntry
	if err := yaml.Unmarshal([]byte(record), &entry); err != nil {
		return types.LogEntry{}, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return types.LogEntry{}, err
	}
	return entry, nil
}

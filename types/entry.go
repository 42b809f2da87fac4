package types

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Level is the severity a log entry was emitted at
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// SubType identifies the kind of event a log entry records
type SubType string

const (
	SubTypeMessage                 SubType = "Message"
	SubTypeRunStart                SubType = "RunStart"
	SubTypeTestStart               SubType = "TestStart"
	SubTypeIterationStart          SubType = "IterationStart"
	SubTypeInteractorStart         SubType = "InteractorStart"
	SubTypeInteractorEnd           SubType = "InteractorEnd"
	SubTypePrepValidationInfoStart SubType = "PrepValidationInfoStart"
	SubTypePrepValidationInfoEnd   SubType = "PrepValidationInfoEnd"
	SubTypeValidationStart         SubType = "ValidationStart"
	SubTypeValidatorStart          SubType = "ValidatorStart"
	SubTypeValidatorEnd            SubType = "ValidatorEnd"
	SubTypeValidationEnd           SubType = "ValidationEnd"
	SubTypeIterationEnd            SubType = "IterationEnd"
	SubTypeTestEnd                 SubType = "TestEnd"
	SubTypeRunEnd                  SubType = "RunEnd"
	SubTypeStartDefect             SubType = "StartDefect"
	SubTypeEndDefect               SubType = "EndDefect"
	SubTypeCheckPass               SubType = "CheckPass"
	SubTypeCheckFail               SubType = "CheckFail"
	SubTypeException               SubType = "Exception"
	SubTypeFilterLog               SubType = "FilterLog"
	SubTypeSummary                 SubType = "Summary"
)

// AllSubTypes lists every subtype the logger can emit, in wire order
var AllSubTypes = []SubType{
	SubTypeMessage,
	SubTypeRunStart,
	SubTypeTestStart,
	SubTypeIterationStart,
	SubTypeInteractorStart,
	SubTypeInteractorEnd,
	SubTypePrepValidationInfoStart,
	SubTypePrepValidationInfoEnd,
	SubTypeValidationStart,
	SubTypeValidatorStart,
	SubTypeValidatorEnd,
	SubTypeValidationEnd,
	SubTypeIterationEnd,
	SubTypeTestEnd,
	SubTypeRunEnd,
	SubTypeStartDefect,
	SubTypeEndDefect,
	SubTypeCheckPass,
	SubTypeCheckFail,
	SubTypeException,
	SubTypeFilterLog,
	SubTypeSummary,
}

// IsValid reports whether s is one of AllSubTypes
func (s SubType) IsValid() bool {
	return slices.Contains(AllSubTypes, s)
}

// PopControl tells the reader how an entry changes folder nesting
type PopControl string

const (
	PushFolder PopControl = "PushFolder"
	PopFolder  PopControl = "PopFolder"
	NoAction   PopControl = "NoAction"
)

// LogEntry is a single event from a raw run log
type LogEntry struct {
	Timestamp      string     `yaml:"timestamp"`
	Level          Level      `yaml:"level"`
	SubType        SubType    `yaml:"subType"`
	Message        string     `yaml:"message"`
	AdditionalInfo string     `yaml:"additionalInfo,omitempty"`
	PopControl     PopControl `yaml:"popControl"`
	Callstack      string     `yaml:"callstack,omitempty"`
}

// Validate checks the closed-set fields of the entry. An empty PopControl is
// normalised to NoAction.
func (e *LogEntry) Validate() error {
	switch e.Level {
	case LevelInfo, LevelWarn, LevelError:
	default:
		return fmt.Errorf("unknown level %q", e.Level)
	}
	if !e.SubType.IsValid() {
		return fmt.Errorf("unknown subType %q", e.SubType)
	}
	switch e.PopControl {
	case "":
		e.PopControl = NoAction
	case PushFolder, PopFolder, NoAction:
	default:
		return fmt.Errorf("unknown popControl %q", e.PopControl)
	}
	return nil
}

// Info decodes AdditionalInfo as a YAML mapping. An empty AdditionalInfo
// yields a nil map.
func (e LogEntry) Info() (map[string]any, error) {
	if e.AdditionalInfo == "" {
		return nil, nil
	}
	var info map[string]any
	if err := yaml.Unmarshal([]byte(e.AdditionalInfo), &info); err != nil {
		return nil, fmt.Errorf("additionalInfo of %s entry is not a YAML mapping: %w", e.SubType, err)
	}
	return info, nil
}

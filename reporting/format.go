// Package reporting renders the elements log of a summarised run as
// human-readable text reports.
package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

const width = 80

var (
	majorRule   = strings.Repeat("=", width)
	minorRule   = strings.Repeat("-", width)
	sectionRule = strings.Repeat("#", width-1)
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseTimestamp reads a log timestamp in any of the layouts the logger emits
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// FormatDuration renders d as HH:MM:SS, with .mmm appended when there is a
// millisecond part
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	ms := (d % time.Second) / time.Millisecond
	if ms == 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%02d:%02d:%02d.%03d", sign, h, m, s, ms)
}

// Elapsed formats the time between two log timestamps. It is empty when
// either timestamp cannot be read.
func Elapsed(start, end string) string {
	from, err := ParseTimestamp(start)
	if err != nil {
		return ""
	}
	to, err := ParseTimestamp(end)
	if err != nil {
		return ""
	}
	return FormatDuration(to.Sub(from))
}

// Prop is one key/value line of a padded block
type Prop struct {
	Key   string
	Value string
}

// Align selects where the padding of a props block goes
type Align int

const (
	// AlignLeft starts every value in the column after the longest key
	AlignLeft Align = iota
	// AlignRight ends every single-line value in a common column
	AlignRight
)

// PadProps renders props one per line. Values containing a newline are not
// padded; they follow their key as an indented block.
func PadProps(props []Prop, align Align) string {
	keyWidth, lineWidth := 0, 0
	for _, p := range props {
		if isMultiline(p.Value) {
			continue
		}
		keyWidth = max(keyWidth, runewidth.StringWidth(p.Key))
		lineWidth = max(lineWidth, runewidth.StringWidth(p.Key)+2+runewidth.StringWidth(p.Value))
	}

	var b strings.Builder
	for _, p := range props {
		if isMultiline(p.Value) {
			b.WriteString(p.Key + ":\n")
			for _, line := range strings.Split(strings.TrimRight(p.Value, "\n"), "\n") {
				b.WriteString(strings.TrimRight("  "+line, " \t") + "\n")
			}
			continue
		}
		var pad int
		switch align {
		case AlignRight:
			pad = lineWidth - runewidth.StringWidth(p.Key) - runewidth.StringWidth(p.Value) - 1
		default:
			pad = keyWidth - runewidth.StringWidth(p.Key) + 1
		}
		line := p.Key + ":" + strings.Repeat(" ", max(pad, 1)) + p.Value
		b.WriteString(strings.TrimRight(line, " \t") + "\n")
	}
	return b.String()
}

func isMultiline(s string) bool {
	return strings.Contains(s, "\n")
}

// PropsOf turns the YAML mapping form of v into props, in the order the
// encoder emits them. Nested values are rendered as YAML text. Keys listed in
// omit are left out.
func PropsOf(v any, omit ...string) ([]Prop, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode props: %w", err)
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("props need a mapping, got %s", node.Tag)
	}

	skip := make(map[string]bool, len(omit))
	for _, k := range omit {
		skip[k] = true
	}

	props := make([]Prop, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if skip[key.Value] {
			continue
		}
		if value.Kind == yaml.ScalarNode {
			props = append(props, Prop{Key: key.Value, Value: value.Value})
			continue
		}
		text, err := marshalYAML(value)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", key.Value, err)
		}
		props = append(props, Prop{Key: key.Value, Value: text})
	}
	return props, nil
}

// marshalYAML renders v as block YAML indented by two spaces
func marshalYAML(v any) (string, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func header(rule, title string) string {
	return rule + "\n" + title + "\n" + rule + "\n"
}

package reporting

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "00:00:00"},
		{"seconds", 5 * time.Second, "00:00:05"},
		{"minutes and seconds", 3*time.Minute + 7*time.Second, "00:03:07"},
		{"hours", 2*time.Hour + 4*time.Minute, "02:04:00"},
		{"milliseconds", 1*time.Second + 45*time.Millisecond, "00:00:01.045"},
		{"sub-millisecond dropped", 1500 * time.Microsecond, "00:00:00.001"},
		{"negative", -(90*time.Second + 250*time.Millisecond), "-00:01:30.250"},
		{"over a day", 26 * time.Hour, "26:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}

func TestElapsed(t *testing.T) {
	assert.Equal(t, "00:01:10", Elapsed("2019-03-12 16:21:05", "2019-03-12 16:22:15"))
	assert.Equal(t, "00:00:00.500", Elapsed("2019-03-12T16:21:05Z", "2019-03-12T16:21:05.5Z"))
	assert.Equal(t, "-00:00:01", Elapsed("2019-03-12 16:21:05", "2019-03-12 16:21:04"))
	assert.Empty(t, Elapsed("yesterday", "2019-03-12 16:21:05"))
}

func TestPadProps_Left(t *testing.T) {
	got := PadProps([]Prop{
		{Key: "when", Value: "a user logs in"},
		{Key: "status", Value: "PASS"},
		{Key: "notes", Value: ""},
	}, AlignLeft)

	assert.Equal(t, "when:   a user logs in\nstatus: PASS\nnotes:\n", got)
}

func TestPadProps_Right(t *testing.T) {
	got := PadProps([]Prop{
		{Key: "testCases", Value: "3"},
		{Key: "iterations", Value: "17"},
		{Key: "x", Value: "100"},
	}, AlignRight)

	assert.Equal(t, "testCases:   3\niterations: 17\nx:         100\n", got)
	for _, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
		assert.Len(t, line, 14)
	}
}

func TestPadProps_MultilineValuesAreBlocks(t *testing.T) {
	got := PadProps([]Prop{
		{Key: "id", Value: "1"},
		{Key: "config", Value: "country: AU\nroles:\n  - admin\n"},
		{Key: "environment", Value: "TST"},
	}, AlignLeft)

	assert.Equal(t, strings.Join([]string{
		"id:          1",
		"config:",
		"  country: AU",
		"  roles:",
		"    - admin",
		"environment: TST",
	}, "\n")+"\n", got)
}

func TestPadProps_WideRunes(t *testing.T) {
	got := PadProps([]Prop{
		{Key: "名前", Value: "x"},
		{Key: "name", Value: "y"},
	}, AlignLeft)
	assert.Equal(t, "名前: x\nname: y\n", got)
}

// readProps parses a padded block back into props. Single-line values are
// trimmed; an indented block under a bare key becomes a multi-line value.
func readProps(t *testing.T, block string) []Prop {
	t.Helper()
	var props []Prop
	lines := strings.Split(strings.TrimSuffix(block, "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if key, ok := strings.CutSuffix(line, ":"); ok {
			var value strings.Builder
			for i+1 < len(lines) && strings.HasPrefix(lines[i+1], "  ") {
				i++
				value.WriteString(strings.TrimPrefix(lines[i], "  ") + "\n")
			}
			props = append(props, Prop{Key: key, Value: value.String()})
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		require.True(t, ok, "line %q has no key", line)
		props = append(props, Prop{Key: key, Value: strings.TrimSpace(value)})
	}
	return props
}

func TestPadProps_Idempotent(t *testing.T) {
	props := []Prop{
		{Key: "start", Value: "2019-03-12 16:21:07"},
		{Key: "runConfig", Value: "country: AU\nroles:\n  - admin\n"},
		{Key: "iterationsWithErrors", Value: "12"},
		{Key: "id", Value: "3"},
	}
	for _, align := range []Align{AlignLeft, AlignRight} {
		first := PadProps(props, align)
		parsed := readProps(t, first)
		assert.Equal(t, props, parsed)
		assert.Equal(t, first, PadProps(parsed, align), "align %d", align)
	}
	assert.Empty(t, PadProps(nil, AlignLeft))
}

func TestPropsOf(t *testing.T) {
	props, err := PropsOf(map[string]any{
		"name":        "nightly",
		"environment": "TST",
		"countries":   []string{"AU", "NZ"},
		"depth":       2,
	}, "name")
	require.NoError(t, err)

	assert.Equal(t, []Prop{
		{Key: "countries", Value: "- AU\n- NZ\n"},
		{Key: "depth", Value: "2"},
		{Key: "environment", Value: "TST"},
	}, props)

	props, err = PropsOf(nil)
	require.NoError(t, err)
	assert.Empty(t, props)

	_, err = PropsOf([]string{"not", "a", "mapping"})
	assert.Error(t, err)
}

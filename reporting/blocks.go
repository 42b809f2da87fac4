package reporting

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/acarl005/stripansi"

	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

// SummaryBlock renders the run header: timings, the run config without its
// name, and the run stats
func SummaryBlock(run *types.RunSummary, rawFile string) (string, error) {
	if run == nil {
		return "", fmt.Errorf("run summary missing")
	}

	title := "Summary"
	if name, ok := run.RunConfig["name"]; ok {
		title = fmt.Sprintf("Summary - %v", name)
	}

	var b strings.Builder
	b.WriteString(header(majorRule, title))
	b.WriteString(PadProps([]Prop{
		{Key: "start", Value: run.StartTime},
		{Key: "end", Value: run.EndTime},
		{Key: "duration", Value: Elapsed(run.StartTime, run.EndTime)},
		{Key: "raw", Value: filepath.Base(rawFile)},
	}, AlignLeft))

	config, err := PropsOf(run.RunConfig, "name")
	if err != nil {
		return "", err
	}
	if len(config) > 0 {
		b.WriteString("\nrunConfig:\n")
		b.WriteString(indent(PadProps(config, AlignLeft)))
	}

	stats, err := PropsOf(run.Stats)
	if err != nil {
		return "", err
	}
	statsText := PadProps(stats, AlignRight)
	statsText = strings.Replace(statsText, "\niterations:", "\n\niterations:", 1)
	statsText = strings.Replace(statsText, "\noutOfTestErrors:", "\n\noutOfTestErrors:", 1)
	b.WriteString("\nstats:\n")
	b.WriteString(indent(statsText))
	return b.String(), nil
}

// IterationFormatter renders iteration blocks, opening each test with a
// major header the first time one of its iterations is seen
type IterationFormatter struct {
	tests    map[string]types.TestSummary
	lastTest string
	started  bool
}

// NewIterationFormatter creates an IterationFormatter. tests supplies the
// per-test stats shown under each major header.
func NewIterationFormatter(tests map[string]types.TestSummary) *IterationFormatter {
	return &IterationFormatter{tests: tests}
}

// Format renders one iteration
func (f *IterationFormatter) Format(it *types.IterationInfo) (string, error) {
	var b strings.Builder
	if !f.started || it.TestName != f.lastTest {
		f.started = true
		f.lastTest = it.TestName
		b.WriteString(f.testHeader(it.TestName))
		b.WriteString("\n")
	}

	title := "Item: " + it.ID
	if d := Elapsed(it.StartTime, it.EndTime); d != "" {
		title += " - " + d
	}
	b.WriteString(header(minorRule, title))
	var props []Prop
	for _, p := range []Prop{{"when", it.When}, {"then", it.Then}, {"notes", it.Notes}} {
		if p.Value != "" {
			props = append(props, p)
		}
	}
	props = append(props, Prop{Key: "status", Value: it.Status().Label()})
	b.WriteString(PadProps(props, AlignLeft))

	mocked := ""
	if it.Mocked {
		mocked = " - MOCKED"
	}
	sections := []struct {
		title string
		body  func() (string, error)
	}{
		{"dState" + mocked, func() (string, error) { return yamlText(it.DState) }},
		{"issues", func() (string, error) { return IssuesBlock(it.Issues) }},
		{"item", func() (string, error) { return yamlText(omitKeys(it.Item, "id", "when", "then", "notes")) }},
		{"apState" + mocked, func() (string, error) { return yamlText(it.APState) }},
	}
	for _, s := range sections {
		body, err := s.body()
		if err != nil {
			return "", fmt.Errorf("failed to render %s of %s item %s: %w", s.title, it.TestName, it.ID, err)
		}
		b.WriteString(sectionRule + "\n")
		b.WriteString(s.title + "\n")
		b.WriteString(body)
	}
	return b.String(), nil
}

func (f *IterationFormatter) testHeader(name string) string {
	summary, ok := f.tests[name]
	if !ok {
		return header(majorRule, name)
	}
	title := name
	if d := Elapsed(summary.StartTime, summary.EndTime); d != "" {
		title += " - " + d
	}
	props := []Prop{{Key: "status", Value: types.StatusOfTest(summary.Stats).Label()}}
	if stats, err := PropsOf(summary.Stats); err == nil {
		props = append(props, stats...)
	}
	return header(majorRule, title) + PadProps(props, AlignRight)
}

// OutOfTestBlock renders issues logged outside any iteration
func OutOfTestBlock(issues *types.OutOfTestIssues) (string, error) {
	body, err := IssuesBlock(issues.Issues)
	if err != nil {
		return "", err
	}
	return header(minorRule, "Out of Test Issues") + body, nil
}

// issueView is a log entry as shown in reports
type issueView struct {
	Timestamp      string `yaml:"timestamp,omitempty"`
	Message        string `yaml:"message"`
	AdditionalInfo string `yaml:"additionalInfo,omitempty"`
	Callstack      string `yaml:"callstack,omitempty"`
}

// IssuesBlock renders every non-empty category of every bucket as a YAML
// list grouped under the bucket name
func IssuesBlock(issues types.IssuesList) (string, error) {
	var b strings.Builder
	for _, bucket := range issues.NonEmpty() {
		b.WriteString(bucket.Name + ":\n")
		for _, category := range bucket.Categories() {
			if len(category.Entries) == 0 {
				continue
			}
			views := make([]issueView, 0, len(category.Entries))
			for _, e := range category.Entries {
				views = append(views, issueView{
					Timestamp:      e.Timestamp,
					Message:        stripansi.Strip(e.Message),
					AdditionalInfo: stripansi.Strip(e.AdditionalInfo),
					Callstack:      e.Callstack,
				})
			}
			text, err := marshalYAML(map[string][]issueView{category.Name: views})
			if err != nil {
				return "", fmt.Errorf("failed to render %s: %w", category.Name, err)
			}
			b.WriteString(indent(text))
		}
	}
	return b.String(), nil
}

// FilterLogBlock renders the accept/reject reason of every test, by name
func FilterLogBlock(filterLog map[string]string) string {
	names := make([]string, 0, len(filterLog))
	for name := range filterLog {
		names = append(names, name)
	}
	slices.Sort(names)

	props := make([]Prop, 0, len(names))
	for _, name := range names {
		props = append(props, Prop{Key: name, Value: filterLog[name]})
	}
	return header(majorRule, "Filter Log") + PadProps(props, AlignLeft)
}

func yamlText(v map[string]any) (string, error) {
	if len(v) == 0 {
		return "", nil
	}
	return marshalYAML(v)
}

func omitKeys(m map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if !slices.Contains(keys, k) {
			out[k] = v
		}
	}
	return out
}

func indent(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

package types

// IterationInfo is the outcome of one iteration, captured at IterationEnd
type IterationInfo struct {
	TestName         string         `yaml:"testName"`
	ID               string         `yaml:"id"`
	When             string         `yaml:"when,omitempty"`
	Then             string         `yaml:"then,omitempty"`
	Notes            string         `yaml:"notes,omitempty"`
	Mocked           bool           `yaml:"mocked"`
	StartTime        string         `yaml:"startTime"`
	EndTime          string         `yaml:"endTime"`
	Item             map[string]any `yaml:"item,omitempty"`
	APState          map[string]any `yaml:"apState,omitempty"`
	DState           map[string]any `yaml:"dState,omitempty"`
	PassedValidators []string       `yaml:"passedValidators,omitempty"`
	Issues           IssuesList     `yaml:"issues,omitempty"`
}

// Status summarises the iteration's issues
func (it IterationInfo) Status() Status {
	return StatusOf(it.Issues.Count())
}

// OutOfTestIssues are the non-empty buckets logged outside any iteration
type OutOfTestIssues struct {
	Issues IssuesList `yaml:"issues"`
}

// TestSummary is recorded for every test at TestEnd
type TestSummary struct {
	TestName   string         `yaml:"testName"`
	TestConfig map[string]any `yaml:"testConfig,omitempty"`
	StartTime  string         `yaml:"startTime"`
	EndTime    string         `yaml:"endTime"`
	Stats      TestStats      `yaml:"stats"`
}

// RunSummary is recorded once at RunEnd
type RunSummary struct {
	RunConfig map[string]any    `yaml:"runConfig,omitempty"`
	StartTime string            `yaml:"startTime"`
	EndTime   string            `yaml:"endTime"`
	FilterLog map[string]string `yaml:"filterLog,omitempty"`
	Stats     RunStats          `yaml:"stats"`
}

// FullSummaryInfo is the result of summarising a raw log. RunSummary stays
// nil until a RunEnd entry has been folded.
type FullSummaryInfo struct {
	RawFile       string                 `yaml:"rawFile"`
	ElementsFile  string                 `yaml:"elementsFile"`
	TestSummaries map[string]TestSummary `yaml:"testSummaries"`
	RunSummary    *RunSummary            `yaml:"runSummary,omitempty"`
}

// NewFullSummaryInfo creates an empty summary for the given files
func NewFullSummaryInfo(rawFile, elementsFile string) *FullSummaryInfo {
	return &FullSummaryInfo{
		RawFile:       rawFile,
		ElementsFile:  elementsFile,
		TestSummaries: make(map[string]TestSummary),
	}
}

// ElementType tags the records of an elements log
type ElementType string

const (
	ElementIteration       ElementType = "Iteration"
	ElementOutOfTestIssues ElementType = "OutOfTestIssues"
	ElementTestSummary     ElementType = "TestSummary"
	ElementRunSummary      ElementType = "RunSummary"
)

// Element is one record of the elements log. Exactly one payload field is set,
// matching Type.
type Element struct {
	Type            ElementType      `yaml:"type"`
	Iteration       *IterationInfo   `yaml:"iteration,omitempty"`
	OutOfTestIssues *OutOfTestIssues `yaml:"outOfTestIssues,omitempty"`
	TestSummary     *TestSummary     `yaml:"testSummary,omitempty"`
	RunSummary      *RunSummary      `yaml:"runSummary,omitempty"`
}

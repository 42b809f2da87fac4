package types

// InfoType tags the phase an issue bucket was opened in
type InfoType string

const (
	InfoValidation InfoType = "Validation"
	InfoInTest     InfoType = "InTest"
	InfoOutOfTest  InfoType = "OutOfTest"
)

// IssueBucket collects the issues logged during one phase of a run
type IssueBucket struct {
	Name         string     `yaml:"name"`
	InfoType     InfoType   `yaml:"infoType"`
	Errors       []LogEntry `yaml:"errors,omitempty"`
	Warnings     []LogEntry `yaml:"warnings,omitempty"`
	Type2Errors  []LogEntry `yaml:"type2Errors,omitempty"`
	KnownDefects []LogEntry `yaml:"knownDefects,omitempty"`
}

// HasIssues reports whether any category of the bucket has content
func (b IssueBucket) HasIssues() bool {
	return len(b.Errors) > 0 || len(b.Warnings) > 0 || len(b.Type2Errors) > 0 || len(b.KnownDefects) > 0
}

// IssueCategory is one named list of entries inside a bucket
type IssueCategory struct {
	Name    string
	Entries []LogEntry
}

// Categories returns the bucket's lists in display order
func (b IssueBucket) Categories() []IssueCategory {
	return []IssueCategory{
		{Name: "errors", Entries: b.Errors},
		{Name: "warnings", Entries: b.Warnings},
		{Name: "type2Errors", Entries: b.Type2Errors},
		{Name: "knownDefects", Entries: b.KnownDefects},
	}
}

// IssuesList is an ordered trail of issue buckets
type IssuesList []IssueBucket

// NonEmpty returns the buckets that carry at least one issue
func (l IssuesList) NonEmpty() IssuesList {
	out := make(IssuesList, 0, len(l))
	for _, b := range l {
		if b.HasIssues() {
			out = append(out, b)
		}
	}
	return out
}

// Count sums the entries of every bucket per category
func (l IssuesList) Count() (errors, warnings, type2Errors, knownDefects int) {
	for _, b := range l {
		errors += len(b.Errors)
		warnings += len(b.Warnings)
		type2Errors += len(b.Type2Errors)
		knownDefects += len(b.KnownDefects)
	}
	return
}

// Package runstate folds a stream of run log entries into the state of the
// run they describe: the current run, test and iteration context, the trail
// of issue buckets, open defect expectations and the cumulative RunStats.
package runstate

import (
	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

// issueKind indexes the per-scope "already counted" flags
type issueKind int

const (
	kindError issueKind = iota
	kindWarning
	kindType2Error
	kindKnownDefect
	issueKindCount
)

// scopeFlags record which issue kinds a scope has already been counted for
type scopeFlags [issueKindCount]bool

// mark sets the flag for kind and reports whether it was already set
func (f *scopeFlags) mark(kind issueKind) bool {
	seen := f[kind]
	f[kind] = true
	return seen
}

// IssueRef locates the active issue bucket inside the list that owns it
type IssueRef struct {
	Kind  types.InfoType
	Index int
}

// RunState is the mutable aggregate threaded through the fold. The three
// issue lists own their buckets; Active only points into one of them.
type RunState struct {
	RunStats types.RunStats

	RunConfig       map[string]any
	TestConfig      map[string]any
	IterationConfig map[string]any

	RunStart       string
	TestStart      string
	IterationStart string
	TestName       string

	Indent      int
	InTest      bool
	InIteration bool

	Mocked           bool
	APState          map[string]any
	DState           map[string]any
	PassedValidators []string

	ValidatorIssues types.IssuesList
	InTestIssues    types.IssuesList
	OutOfTestIssues types.IssuesList
	Active          IssueRef

	// ErrorExpectation is the StartDefect entry of the open expectation
	// window, nil when no window is open
	ErrorExpectation         *types.LogEntry
	ExpectedErrorEncountered bool

	iterationLogged scopeFlags
	testLogged      scopeFlags
	outOfTestLogged scopeFlags
}

// New returns the initial state. An out-of-test bucket is active from the
// start so entries logged ahead of RunStart are still collected.
func New() *RunState {
	s := &RunState{}
	s.switchIssueStage(types.InfoOutOfTest, outOfTestStage)
	return s
}

// ActiveIssues returns the bucket currently accepting entries
func (s *RunState) ActiveIssues() *types.IssueBucket {
	list := s.issueList(s.Active.Kind)
	return &(*list)[s.Active.Index]
}

// IterationIssues returns the in-test and validator buckets of the current
// iteration that carry issues
func (s *RunState) IterationIssues() types.IssuesList {
	all := make(types.IssuesList, 0, len(s.InTestIssues)+len(s.ValidatorIssues))
	all = append(all, s.InTestIssues...)
	all = append(all, s.ValidatorIssues...)
	return all.NonEmpty()
}

func (s *RunState) issueList(kind types.InfoType) *types.IssuesList {
	switch kind {
	case types.InfoValidation:
		return &s.ValidatorIssues
	case types.InfoInTest:
		return &s.InTestIssues
	default:
		return &s.OutOfTestIssues
	}
}

// switchIssueStage opens a new bucket for the next phase of the run and makes
// it the active one
func (s *RunState) switchIssueStage(kind types.InfoType, name string) {
	list := s.issueList(kind)
	*list = append(*list, types.IssueBucket{Name: name, InfoType: kind})
	s.Active = IssueRef{Kind: kind, Index: len(*list) - 1}
}

// logIssue counts an issue of the given kind at most once per scope. Inside
// an iteration it is attributed to the iteration and its test, anywhere else
// to the current out-of-test scope.
func (s *RunState) logIssue(kind issueKind) {
	iteration, test, outOfTest := s.counters(kind)
	if s.InIteration {
		if !s.iterationLogged.mark(kind) {
			*iteration++
		}
		if s.InTest && !s.testLogged.mark(kind) {
			*test++
		}
		return
	}
	if !s.outOfTestLogged.mark(kind) {
		*outOfTest++
	}
}

func (s *RunState) counters(kind issueKind) (iteration, test, outOfTest *int) {
	st := &s.RunStats
	switch kind {
	case kindError:
		return &st.IterationsWithErrors, &st.FailedTests, &st.OutOfTestErrors
	case kindWarning:
		return &st.IterationsWithWarnings, &st.TestsWithWarnings, &st.OutOfTestWarnings
	case kindType2Error:
		return &st.IterationsWithType2Errors, &st.TestsWithType2Errors, &st.OutOfTestType2Errors
	default:
		return &st.IterationsWithKnownDefects, &st.TestsWithKnownDefects, &st.OutOfTestKnownDefects
	}
}

// resolveDefectExpectation settles an open expectation window against the
// active bucket. An expectation that saw no error is a type 2 error; one
// that did is a known defect. The window is closed either way.
//
// The type 2 error recorded is the StartDefect entry that opened the window,
// not the entry that closed it, so the report shows which defect was
// expected.
func (s *RunState) resolveDefectExpectation() {
	if s.ErrorExpectation == nil {
		return
	}
	if s.ExpectedErrorEncountered {
		s.logIssue(kindKnownDefect)
	} else {
		bucket := s.ActiveIssues()
		bucket.Type2Errors = append(bucket.Type2Errors, *s.ErrorExpectation)
		s.logIssue(kindType2Error)
	}
	s.ErrorExpectation = nil
	s.ExpectedErrorEncountered = false
}

// updateForErrorsAndWarnings files error and warning entries into the active
// bucket. Errors inside an expectation window are the expected defect and are
// not counted as errors.
func (s *RunState) updateForErrorsAndWarnings(entry types.LogEntry) {
	bucket := s.ActiveIssues()
	switch entry.Level {
	case types.LevelError:
		if s.ErrorExpectation != nil {
			// filed under knownDefects only, never also under errors, so each
			// entry appears once in the reports
			s.ExpectedErrorEncountered = true
			bucket.KnownDefects = append(bucket.KnownDefects, entry)
			return
		}
		s.logIssue(kindError)
		bucket.Errors = append(bucket.Errors, entry)
	case types.LevelWarn:
		s.logIssue(kindWarning)
		bucket.Warnings = append(bucket.Warnings, entry)
	}
}

func (s *RunState) testCommonReset() {
	s.testLogged = scopeFlags{}
	s.TestConfig = nil
	s.TestName = ""
	s.TestStart = ""
}

func (s *RunState) iterationCommonReset() {
	s.iterationLogged = scopeFlags{}
	s.IterationConfig = nil
	s.IterationStart = ""
	s.Mocked = false
	s.APState = nil
	s.DState = nil
	s.PassedValidators = nil
	s.InTestIssues = nil
	s.ValidatorIssues = nil
}

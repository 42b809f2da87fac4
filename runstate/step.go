package runstate

import (
	"fmt"

	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

// Names of the issue buckets opened by each phase transition
const (
	outOfTestStage       = "Out of Test"
	runStartStage        = "Run Start"
	testStartStage       = "Test Start"
	iterationStartStage  = "Iteration Start"
	interactorStage      = "Executing Interactor"
	afterInteractor      = "After Interactor"
	prepValidationStage  = "Preparing Validation Info"
	afterPrepValidation  = "After Preparing Validation Info"
	validationStartStage = "Validation Start"
	validationStage      = "Validation"
	afterValidation      = "After Validation"
	testEndStage         = "Test End"
	runEndStage          = "Run End"
)

// carriesInfo reports whether the subtype's additionalInfo is structured
// data the fold reads. Other entries may carry free text.
func carriesInfo(subType types.SubType) bool {
	switch subType {
	case types.SubTypeRunStart, types.SubTypeTestStart, types.SubTypeIterationStart,
		types.SubTypeInteractorStart, types.SubTypeInteractorEnd,
		types.SubTypePrepValidationInfoEnd, types.SubTypeStartDefect, types.SubTypeFilterLog:
		return true
	}
	return false
}

// keepsWindowOpen reports whether an open expectation window survives the
// entry. Every phase change settles the window before the phase's state is
// reset.
func keepsWindowOpen(subType types.SubType) bool {
	switch subType {
	case types.SubTypeMessage, types.SubTypeCheckPass, types.SubTypeCheckFail,
		types.SubTypeException, types.SubTypeFilterLog, types.SubTypeSummary:
		return true
	}
	return false
}

// Step folds one entry into the state. Folder pops are applied before the
// entry is classified and pushes after it, so an entry is attributed to the
// folder it was logged in.
func (s *RunState) Step(entry types.LogEntry) error {
	if entry.PopControl == types.PopFolder {
		s.Indent--
	}
	if err := s.transition(entry); err != nil {
		return err
	}
	s.updateForErrorsAndWarnings(entry)
	if entry.PopControl == types.PushFolder {
		s.Indent++
	}
	return nil
}

func (s *RunState) transition(entry types.LogEntry) error {
	var info map[string]any
	if carriesInfo(entry.SubType) {
		var err error
		if info, err = entry.Info(); err != nil {
			return err
		}
	}

	if !keepsWindowOpen(entry.SubType) {
		s.resolveDefectExpectation()
	}

	switch entry.SubType {
	case types.SubTypeRunStart:
		s.testCommonReset()
		s.iterationCommonReset()
		s.outOfTestLogged = scopeFlags{}
		s.InTest = false
		s.InIteration = false
		s.RunConfig = info
		s.RunStart = entry.Timestamp
		s.switchIssueStage(types.InfoOutOfTest, runStartStage)

	case types.SubTypeTestStart:
		s.testCommonReset()
		s.TestConfig = info
		s.TestName = entry.Message
		if name, ok := info["name"]; ok {
			s.TestName = fmt.Sprint(name)
		}
		s.TestStart = entry.Timestamp
		s.RunStats.TestCases++
		s.InTest = true
		s.switchIssueStage(types.InfoOutOfTest, testStartStage)

	case types.SubTypeIterationStart:
		s.iterationCommonReset()
		s.IterationConfig = info
		s.IterationStart = entry.Timestamp
		s.RunStats.Iterations++
		s.InIteration = true
		s.switchIssueStage(types.InfoInTest, iterationStartStage)

	case types.SubTypeInteractorStart:
		if mocked, ok := info["mocked"].(bool); ok {
			s.Mocked = mocked
		}
		s.switchIssueStage(types.InfoInTest, interactorStage)

	case types.SubTypeInteractorEnd:
		s.APState = info
		s.switchIssueStage(types.InfoInTest, afterInteractor)

	case types.SubTypePrepValidationInfoStart:
		s.switchIssueStage(types.InfoInTest, prepValidationStage)

	case types.SubTypePrepValidationInfoEnd:
		s.DState = info
		s.switchIssueStage(types.InfoInTest, afterPrepValidation)

	case types.SubTypeValidationStart:
		s.switchIssueStage(types.InfoValidation, validationStartStage)

	case types.SubTypeValidatorStart:
		s.switchIssueStage(types.InfoValidation, entry.Message)

	case types.SubTypeValidatorEnd:
		if active := s.ActiveIssues(); len(active.Errors) == 0 {
			s.PassedValidators = append(s.PassedValidators, active.Name)
		}
		s.switchIssueStage(types.InfoValidation, validationStage)

	case types.SubTypeValidationEnd:
		s.switchIssueStage(types.InfoInTest, afterValidation)

	case types.SubTypeIterationEnd:
		if !s.iterationLogged[kindError] {
			s.RunStats.PassedIterations++
		}
		s.InIteration = false
		s.outOfTestLogged = scopeFlags{}
		s.switchIssueStage(types.InfoOutOfTest, outOfTestStage)

	case types.SubTypeTestEnd:
		if !s.testLogged[kindError] {
			s.RunStats.PassedTests++
		}
		s.InTest = false
		s.switchIssueStage(types.InfoOutOfTest, testEndStage)

	case types.SubTypeRunEnd:
		s.switchIssueStage(types.InfoOutOfTest, runEndStage)

	case types.SubTypeStartDefect:
		if active, ok := info["active"].(bool); !ok || active {
			expectation := entry
			s.ErrorExpectation = &expectation
			s.ExpectedErrorEncountered = false
		}

	case types.SubTypeCheckPass:
		s.RunStats.CheckPasses++

	case types.SubTypeCheckFail:
		s.RunStats.CheckFailures++

	case types.SubTypeException:
		s.RunStats.Exceptions++

	case types.SubTypeEndDefect, types.SubTypeMessage, types.SubTypeFilterLog, types.SubTypeSummary:

	default:
		return fmt.Errorf("unhandled subType %q", entry.SubType)
	}
	return nil
}

package types

// Status is the outcome of an iteration or test as shown in reports
type Status string

const (
	StatusPass        Status = "pass"
	StatusWarning     Status = "pass with warnings"
	StatusKnownDefect Status = "known defect"
	StatusType2Error  Status = "type 2 error"
	StatusFail        Status = "fail"
)

// StatusOf ranks issue counts into a single status. Errors dominate type 2
// errors, which dominate known defects, which dominate warnings.
func StatusOf(errors, warnings, type2Errors, knownDefects int) Status {
	switch {
	case errors > 0:
		return StatusFail
	case type2Errors > 0:
		return StatusType2Error
	case knownDefects > 0:
		return StatusKnownDefect
	case warnings > 0:
		return StatusWarning
	default:
		return StatusPass
	}
}

// Label returns the short upper-case form used in report headers and tables
func (s Status) Label() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarning:
		return "WARNING"
	case StatusKnownDefect:
		return "KNOWN DEFECT"
	case StatusType2Error:
		return "TYPE 2 ERROR"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// StatusOfTest derives a test's status from its stats
func StatusOfTest(s TestStats) Status {
	return StatusOf(s.IterationsWithErrors, s.IterationsWithWarnings, s.IterationsWithType2Errors, s.IterationsWithKnownDefects)
}

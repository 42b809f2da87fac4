package zenith

import (
	"fmt"

	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

// statusString returns a marked-up label for a status
func statusString(status types.Status) string {
	switch status {
	case types.StatusPass:
		return "✓ pass"
	case types.StatusWarning:
		return "! warning"
	case types.StatusKnownDefect, types.StatusType2Error:
		return "~ " + string(status)
	default:
		return "✗ fail"
	}
}

func runStatusString(result *Result) string {
	if result.Failed() {
		return fmt.Sprintf("✗ fail (%d)", result.Stats.FailedTests+result.Stats.OutOfTestErrors)
	}
	return "✓ pass"
}

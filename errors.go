package zenith

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

// RuntimeError is an operational failure that leads to exit code 2: bad
// config, an unreadable raw log, a corrupt record or a failed artifact write
type RuntimeError struct {
	Op  string
	Err error
}

func (e *RuntimeError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("runtime error: %v", e.Err)
	}
	return fmt.Sprintf("runtime error: %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError
func NewRuntimeError(op string, err error) *RuntimeError {
	return &RuntimeError{Op: op, Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// TestFailureError reports a summarised run that has failed tests or errors
// logged outside any iteration (exit code 1)
type TestFailureError struct {
	RawFile string
	Stats   types.RunStats
}

func (e *TestFailureError) Error() string {
	return fmt.Sprintf("run failed: %s has %d failed tests and %d out-of-test errors",
		filepath.Base(e.RawFile), e.Stats.FailedTests, e.Stats.OutOfTestErrors)
}

// NewTestFailureError creates a new TestFailureError
func NewTestFailureError(rawFile string, stats types.RunStats) *TestFailureError {
	return &TestFailureError{RawFile: rawFile, Stats: stats}
}

// IsTestFailureError checks if the error is or wraps a TestFailureError
func IsTestFailureError(err error) bool {
	var testErr *TestFailureError
	return err != nil && errors.As(err, &testErr)
}

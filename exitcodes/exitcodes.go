// Package exitcodes defines the standard exit codes used by zenith-summarise.
package exitcodes

// Exit code constants used by zenith-summarise
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
// * Success (0): Used when every summarised run passed
// * TestFailure (1): Used when a summarised run has failed tests or out-of-test errors
// * RuntimeErr (2): Used for runtime errors such as bad config, unreadable or corrupt logs
const (
	Success     = 0 // All runs pass
	TestFailure = 1 // Run failures
	RuntimeErr  = 2 // Runtime errors or corrupt logs
)

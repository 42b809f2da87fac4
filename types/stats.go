package types

// RunStats are the cumulative counters of a run. They are only ever
// incremented while a log is folded.
type RunStats struct {
	TestCases             int `yaml:"testCases"`
	PassedTests           int `yaml:"passedTests"`
	FailedTests           int `yaml:"failedTests"`
	TestsWithWarnings     int `yaml:"testsWithWarnings"`
	TestsWithKnownDefects int `yaml:"testsWithKnownDefects"`
	TestsWithType2Errors  int `yaml:"testsWithType2Errors"`

	Iterations                 int `yaml:"iterations"`
	PassedIterations           int `yaml:"passedIterations"`
	IterationsWithErrors       int `yaml:"iterationsWithErrors"`
	IterationsWithWarnings     int `yaml:"iterationsWithWarnings"`
	IterationsWithKnownDefects int `yaml:"iterationsWithKnownDefects"`
	IterationsWithType2Errors  int `yaml:"iterationsWithType2Errors"`

	OutOfTestErrors       int `yaml:"outOfTestErrors"`
	OutOfTestWarnings     int `yaml:"outOfTestWarnings"`
	OutOfTestKnownDefects int `yaml:"outOfTestKnownDefects"`
	OutOfTestType2Errors  int `yaml:"outOfTestType2Errors"`

	CheckPasses   int `yaml:"checkPasses"`
	CheckFailures int `yaml:"checkFailures"`
	Exceptions    int `yaml:"exceptions"`
}

// TestStats are the iteration counters attributed to a single test
type TestStats struct {
	Iterations                 int `yaml:"iterations"`
	PassedIterations           int `yaml:"passedIterations"`
	IterationsWithErrors       int `yaml:"iterationsWithErrors"`
	IterationsWithWarnings     int `yaml:"iterationsWithWarnings"`
	IterationsWithKnownDefects int `yaml:"iterationsWithKnownDefects"`
	IterationsWithType2Errors  int `yaml:"iterationsWithType2Errors"`
}

// TestStatsDelta derives a test's stats from the run stats captured at its
// TestStart and at its TestEnd.
func TestStatsDelta(start, end RunStats) TestStats {
	return TestStats{
		Iterations:                 end.Iterations - start.Iterations,
		PassedIterations:           end.PassedIterations - start.PassedIterations,
		IterationsWithErrors:       end.IterationsWithErrors - start.IterationsWithErrors,
		IterationsWithWarnings:     end.IterationsWithWarnings - start.IterationsWithWarnings,
		IterationsWithKnownDefects: end.IterationsWithKnownDefects - start.IterationsWithKnownDefects,
		IterationsWithType2Errors:  end.IterationsWithType2Errors - start.IterationsWithType2Errors,
	}
}

// Counter is a named stats value
type Counter struct {
	Name  string
	Value int
}

// Counters lists every run counter in declaration order
func (s RunStats) Counters() []Counter {
	return []Counter{
		{"testCases", s.TestCases},
		{"passedTests", s.PassedTests},
		{"failedTests", s.FailedTests},
		{"testsWithWarnings", s.TestsWithWarnings},
		{"testsWithKnownDefects", s.TestsWithKnownDefects},
		{"testsWithType2Errors", s.TestsWithType2Errors},
		{"iterations", s.Iterations},
		{"passedIterations", s.PassedIterations},
		{"iterationsWithErrors", s.IterationsWithErrors},
		{"iterationsWithWarnings", s.IterationsWithWarnings},
		{"iterationsWithKnownDefects", s.IterationsWithKnownDefects},
		{"iterationsWithType2Errors", s.IterationsWithType2Errors},
		{"outOfTestErrors", s.OutOfTestErrors},
		{"outOfTestWarnings", s.OutOfTestWarnings},
		{"outOfTestKnownDefects", s.OutOfTestKnownDefects},
		{"outOfTestType2Errors", s.OutOfTestType2Errors},
		{"checkPasses", s.CheckPasses},
		{"checkFailures", s.CheckFailures},
		{"exceptions", s.Exceptions},
	}
}

// HasFailures reports whether the run contains failed tests or errors
// logged outside of any iteration
func (s RunStats) HasFailures() bool {
	return s.FailedTests > 0 || s.OutOfTestErrors > 0
}

package zenith

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/theGhostJW/zenith-with-typescript-sub000/reporting"
	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

// ResultFormatter is responsible for formatting and displaying summarised runs.
type ResultFormatter interface {
	FormatResult(result *Result) error
}

// ConsoleSummaryFormatter renders a run as a table of its tests.
type ConsoleSummaryFormatter struct {
	logger log.Logger
	out    reporting.ReportWriter
	styled bool
}

// NewConsoleSummaryFormatter creates a new ConsoleSummaryFormatter writing to out.
func NewConsoleSummaryFormatter(logger log.Logger, out reporting.ReportWriter) *ConsoleSummaryFormatter {
	if logger == nil {
		logger = log.New()
	}
	return &ConsoleSummaryFormatter{
		logger: logger,
		out:    out,
		styled: true,
	}
}

// FormatResult writes the run table of result.
func (f *ConsoleSummaryFormatter) FormatResult(result *Result) error {
	f.logger.Debug("Printing run summary...", "raw", result.Paths.Raw)
	return f.out.Write(f.Render(result) + "\n")
}

// Render builds the run table of result.
func (f *ConsoleSummaryFormatter) Render(result *Result) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Run Summary - %s", runTitle(result)))

	t.AppendHeader(table.Row{
		"Test", "Duration", "Iterations", "Passed", "Errors", "Type 2", "Known Defects", "Warnings", "Status",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Test", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Iterations", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Errors", Align: text.AlignRight},
		{Name: "Type 2", Align: text.AlignRight},
		{Name: "Known Defects", Align: text.AlignRight},
		{Name: "Warnings", Align: text.AlignRight},
	})

	for _, test := range sortedTests(result.Summary) {
		t.AppendRow(table.Row{
			test.TestName,
			reporting.Elapsed(test.StartTime, test.EndTime),
			test.Stats.Iterations,
			test.Stats.PassedIterations,
			test.Stats.IterationsWithErrors,
			test.Stats.IterationsWithType2Errors,
			test.Stats.IterationsWithKnownDefects,
			test.Stats.IterationsWithWarnings,
			statusString(types.StatusOfTest(test.Stats)),
		})
	}

	stats := result.Stats
	if stats.OutOfTestErrors+stats.OutOfTestWarnings+stats.OutOfTestType2Errors+stats.OutOfTestKnownDefects > 0 {
		t.AppendSeparator()
		t.AppendRow(table.Row{
			"Out of Test",
			"",
			"-",
			"-",
			stats.OutOfTestErrors,
			stats.OutOfTestType2Errors,
			stats.OutOfTestKnownDefects,
			stats.OutOfTestWarnings,
			statusString(types.StatusOf(stats.OutOfTestErrors, stats.OutOfTestWarnings, stats.OutOfTestType2Errors, stats.OutOfTestKnownDefects)),
		})
	}

	if f.styled {
		if result.Failed() {
			t.SetStyle(table.StyleColoredBlackOnRedWhite)
		} else {
			t.SetStyle(table.StyleColoredBlackOnGreenWhite)
		}
	}

	duration := ""
	if run := result.Summary.RunSummary; run != nil {
		duration = reporting.Elapsed(run.StartTime, run.EndTime)
	}
	t.AppendFooter(table.Row{
		fmt.Sprintf("TOTAL (%d tests)", stats.TestCases),
		duration,
		stats.Iterations,
		stats.PassedIterations,
		stats.IterationsWithErrors,
		stats.IterationsWithType2Errors,
		stats.IterationsWithKnownDefects,
		stats.IterationsWithWarnings,
		runStatusString(result),
	})

	return t.Render()
}

func runTitle(result *Result) string {
	name := filepath.Base(result.Paths.Raw)
	if run := result.Summary.RunSummary; run != nil {
		if n, ok := run.RunConfig["name"]; ok {
			name = fmt.Sprintf("%v (%s)", n, name)
		}
	}
	return name
}

// sortedTests orders the test summaries by start time, then name
func sortedTests(summary *types.FullSummaryInfo) []types.TestSummary {
	tests := make([]types.TestSummary, 0, len(summary.TestSummaries))
	for _, test := range summary.TestSummaries {
		tests = append(tests, test)
	}
	sort.Slice(tests, func(i, j int) bool {
		if tests[i].StartTime != tests[j].StartTime {
			return tests[i].StartTime < tests[j].StartTime
		}
		return tests[i].TestName < tests[j].TestName
	})
	return tests
}

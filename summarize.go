package zenith

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"

	"github.com/theGhostJW/zenith-with-typescript-sub000/elements"
	"github.com/theGhostJW/zenith-with-typescript-sub000/logging"
	"github.com/theGhostJW/zenith-with-typescript-sub000/metrics"
	"github.com/theGhostJW/zenith-with-typescript-sub000/mockfile"
	"github.com/theGhostJW/zenith-with-typescript-sub000/reporting"
	"github.com/theGhostJW/zenith-with-typescript-sub000/runstate"
	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

// Result is the outcome of summarising one raw log
type Result struct {
	ParseID  string
	Paths    logging.ArtifactPaths
	Summary  *types.FullSummaryInfo
	Stats    types.RunStats
	Elements int
	Duration time.Duration
}

// Failed reports whether the summarised run has failed tests or out-of-test
// errors
func (r *Result) Failed() bool {
	return r.Stats.HasFailures()
}

// Summarize folds the raw log at rawPath into its elements log, writes the
// full and issues reports next to it and returns the run's summary. Mocks are
// written under cfg.MockDir when it is set. Any failure is a *RuntimeError;
// a corrupt record additionally wraps a *runstate.ParseError.
func Summarize(cfg *Config, rawPath string) (*Result, error) {
	start := time.Now()
	parseID := uuid.New().String()

	logger := cfg.Log
	if logger == nil {
		logger = log.New()
	}
	logger = logger.New("parseID", parseID, "raw", filepath.Base(rawPath))

	res, err := summarize(cfg, logger, rawPath)
	if err != nil {
		logger.Error("Summarising failed", "err", err)
		metrics.RecordSummary(metrics.ResultError)
		metrics.RecordErrorDetails("summarize", err)
		return nil, err
	}
	res.ParseID = parseID
	res.Duration = time.Since(start)

	result := metrics.ResultPass
	if res.Failed() {
		result = metrics.ResultFail
	}
	metrics.RecordSummary(result)
	metrics.RecordRunStats(filepath.Base(rawPath), res.Stats, res.Elements, res.Duration.Seconds())

	logger.Info("Summarised raw log",
		"elements", res.Elements,
		"tests", res.Stats.TestCases,
		"failedTests", res.Stats.FailedTests,
		"outOfTestErrors", res.Stats.OutOfTestErrors,
		"duration", res.Duration)
	return res, nil
}

func summarize(cfg *Config, logger log.Logger, rawPath string) (*Result, error) {
	paths, err := logging.PathsForRawLog(rawPath)
	if err != nil {
		return nil, NewRuntimeError("derive artifact paths", err)
	}
	if _, err := os.Stat(rawPath); err != nil {
		return nil, NewRuntimeError("open raw log", err)
	}

	divider := cfg.Divider
	if divider == "" {
		divider = logging.DefaultDivider
	}

	out, err := logging.CreateRecordFile(paths.Elements, divider)
	if err != nil {
		return nil, NewRuntimeError("create elements log", err)
	}

	summary := types.NewFullSummaryInfo(paths.Raw, paths.Elements)
	var mocks elements.MockWriter
	if cfg.MockDir != "" {
		mocks = mockfile.NewWriter(logger, cfg.MockDir, mockfile.DefaultNameFunc(cfg.MockDir))
	}

	state := runstate.New()
	reducer := elements.NewReducer(logger, out, mocks, summary)

	foldErr := logging.SplitFile(rawPath, divider, func(record string) error {
		entry, err := runstate.DecodeEntry(record)
		if err != nil {
			return &runstate.ParseError{Record: record, Err: err}
		}
		if err := state.Step(entry); err != nil {
			return &runstate.ParseError{Record: record, Err: err}
		}
		if err := reducer.Step(state, entry); err != nil {
			return fmt.Errorf("failed to reduce %s entry: %w", entry.SubType, err)
		}
		return nil
	})
	closeErr := out.Close()
	if err := errors.Join(foldErr, closeErr); err != nil {
		return nil, NewRuntimeError("fold raw log", err)
	}
	if state.Indent != 0 {
		logger.Warn("Unbalanced folder nesting at end of log", "indent", state.Indent)
	}
	if summary.RunSummary == nil {
		logger.Warn("Raw log has no RunEnd entry, run summary not recorded")
	}

	sink := reporting.NewTextReportSink(logger, paths, divider)
	if err := sink.Write(summary); err != nil {
		return nil, NewRuntimeError("write reports", err)
	}

	return &Result{
		Paths:    paths,
		Summary:  summary,
		Stats:    state.RunStats,
		Elements: out.Count(),
	}, nil
}

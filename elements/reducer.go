// Package elements reduces the entry stream, after each state step, into the
// coarse records of the elements log: iteration outcomes, out-of-test issues,
// per-test summaries and the run summary.
package elements

import (
	"errors"
	"fmt"
	"maps"

	"github.com/ethereum/go-ethereum/log"

	"github.com/theGhostJW/zenith-with-typescript-sub000/mockfile"
	"github.com/theGhostJW/zenith-with-typescript-sub000/runstate"
	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

// MockWriterBucket names the sentinel bucket recorded when a mock cannot be
// written
const MockWriterBucket = "Mock Writer"

// ElementWriter receives each element as it is produced
type ElementWriter interface {
	WriteElement(types.Element) error
}

// MockWriter persists a mock for an iteration with passing validators
type MockWriter interface {
	Write(it types.IterationInfo, runConfig map[string]any) error
}

// Reducer is the second fold over the entry stream. It reads the RunState
// after the entry has been applied to it.
type Reducer struct {
	log     log.Logger
	out     ElementWriter
	mocks   MockWriter
	summary *types.FullSummaryInfo

	flushed       int
	testStartStat types.RunStats
	filterLog     map[string]string
}

// NewReducer creates a Reducer that writes to out and records test and run
// summaries in summary. mocks may be nil to skip mock writing.
func NewReducer(logger log.Logger, out ElementWriter, mocks MockWriter, summary *types.FullSummaryInfo) *Reducer {
	if logger == nil {
		logger = log.New()
	}
	return &Reducer{
		log:     logger,
		out:     out,
		mocks:   mocks,
		summary: summary,
	}
}

// Step applies one entry. state must already reflect the entry.
func (r *Reducer) Step(state *runstate.RunState, entry types.LogEntry) error {
	switch entry.SubType {
	case types.SubTypeTestStart:
		r.testStartStat = state.RunStats
		return nil
	case types.SubTypeIterationEnd:
		return r.iterationEnd(state, entry)
	case types.SubTypeTestEnd:
		return r.testEnd(state, entry)
	case types.SubTypeRunEnd:
		return r.runEnd(state, entry)
	case types.SubTypeFilterLog:
		return r.mergeFilterLog(entry)
	default:
		return nil
	}
}

// flushOutOfTest writes the out-of-test buckets up to end that have not been
// written yet, if any of them carries issues
func (r *Reducer) flushOutOfTest(state *runstate.RunState, end int) error {
	if end <= r.flushed {
		return nil
	}
	pending := state.OutOfTestIssues[r.flushed:end].NonEmpty()
	r.flushed = end
	if len(pending) == 0 {
		return nil
	}
	return r.write(types.Element{
		Type:            types.ElementOutOfTestIssues,
		OutOfTestIssues: &types.OutOfTestIssues{Issues: pending},
	})
}

func (r *Reducer) iterationEnd(state *runstate.RunState, entry types.LogEntry) error {
	// the last bucket was opened by this IterationEnd and is still filling
	if err := r.flushOutOfTest(state, len(state.OutOfTestIssues)-1); err != nil {
		return err
	}

	config := state.IterationConfig
	it := types.IterationInfo{
		TestName:         state.TestName,
		ID:               configString(config, "id"),
		When:             configString(config, "when"),
		Then:             configString(config, "then"),
		Notes:            configString(config, "notes"),
		Mocked:           state.Mocked,
		StartTime:        state.IterationStart,
		EndTime:          entry.Timestamp,
		Item:             config,
		APState:          state.APState,
		DState:           state.DState,
		PassedValidators: state.PassedValidators,
		Issues:           state.IterationIssues(),
	}
	if err := r.write(types.Element{Type: types.ElementIteration, Iteration: &it}); err != nil {
		return err
	}

	if r.mocks == nil || len(it.PassedValidators) == 0 {
		return nil
	}
	err := r.mocks.Write(it, state.RunConfig)
	if errors.Is(err, mockfile.ErrMissingRunConfig) {
		r.log.Warn("Mock not written", "test", it.TestName, "item", it.ID, "err", err)
		return r.write(mockFailure(entry.Timestamp, it, err))
	}
	if err != nil {
		return fmt.Errorf("failed to write mock for %s item %s: %w", it.TestName, it.ID, err)
	}
	return nil
}

func (r *Reducer) testEnd(state *runstate.RunState, entry types.LogEntry) error {
	summary := types.TestSummary{
		TestName:   state.TestName,
		TestConfig: state.TestConfig,
		StartTime:  state.TestStart,
		EndTime:    entry.Timestamp,
		Stats:      types.TestStatsDelta(r.testStartStat, state.RunStats),
	}
	if r.summary != nil {
		r.summary.TestSummaries[summary.TestName] = summary
	}
	return r.write(types.Element{Type: types.ElementTestSummary, TestSummary: &summary})
}

func (r *Reducer) runEnd(state *runstate.RunState, entry types.LogEntry) error {
	if err := r.flushOutOfTest(state, len(state.OutOfTestIssues)); err != nil {
		return err
	}
	run := types.RunSummary{
		RunConfig: state.RunConfig,
		StartTime: state.RunStart,
		EndTime:   entry.Timestamp,
		FilterLog: r.filterLog,
		Stats:     state.RunStats,
	}
	if r.summary != nil {
		r.summary.RunSummary = &run
	}
	return r.write(types.Element{Type: types.ElementRunSummary, RunSummary: &run})
}

func (r *Reducer) mergeFilterLog(entry types.LogEntry) error {
	info, err := entry.Info()
	if err != nil {
		return err
	}
	if r.filterLog == nil {
		r.filterLog = make(map[string]string, len(info))
	}
	for name, reason := range info {
		r.filterLog[name] = fmt.Sprint(reason)
	}
	return nil
}

// FilterLog returns a copy of the filter results merged so far
func (r *Reducer) FilterLog() map[string]string {
	return maps.Clone(r.filterLog)
}

func (r *Reducer) write(el types.Element) error {
	if err := r.out.WriteElement(el); err != nil {
		return fmt.Errorf("failed to write %s element: %w", el.Type, err)
	}
	return nil
}

func mockFailure(timestamp string, it types.IterationInfo, cause error) types.Element {
	return types.Element{
		Type: types.ElementOutOfTestIssues,
		OutOfTestIssues: &types.OutOfTestIssues{Issues: types.IssuesList{{
			Name:     MockWriterBucket,
			InfoType: types.InfoOutOfTest,
			Errors: []types.LogEntry{{
				Timestamp:  timestamp,
				Level:      types.LevelError,
				SubType:    types.SubTypeMessage,
				Message:    fmt.Sprintf("mock not written for %s item %s: %v", it.TestName, it.ID, cause),
				PopControl: types.NoAction,
			}},
		}}},
	}
}

func configString(config map[string]any, key string) string {
	v, ok := config[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

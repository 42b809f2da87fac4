package zenith

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/optimism/op-service/cliapp"

	"github.com/theGhostJW/zenith-with-typescript-sub000/exitcodes"
	"github.com/theGhostJW/zenith-with-typescript-sub000/logging"
	"github.com/theGhostJW/zenith-with-typescript-sub000/reporting"
	"github.com/theGhostJW/zenith-with-typescript-sub000/service"
)

// summariser implements the cliapp.Lifecycle interface.
var _ cliapp.Lifecycle = &summariser{}

// summariser turns raw run logs into elements logs and reports, either once
// or by watching a log directory.
type summariser struct {
	ctx     context.Context
	config  *Config
	version string
	svc     *service.Service
	console *ConsoleSummaryFormatter

	mu      sync.Mutex
	results []*Result

	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup

	shutdownCallback func(error) // Callback to signal application shutdown
}

func New(ctx context.Context, config *Config, version string, shutdownCallback func(error)) (*summariser, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if config.RawLog == "" && config.LogDir == "" {
		return nil, errors.New("a raw log or a log directory is required")
	}

	config.Log.Debug("Creating summariser with config",
		"rawLog", config.RawLog,
		"logDir", config.LogDir,
		"mockDir", config.MockDir,
		"runInterval", config.RunInterval,
		"runOnce", config.RunOnce)

	s := &summariser{
		ctx:              ctx,
		config:           config,
		version:          version,
		done:             make(chan struct{}),
		shutdownCallback: shutdownCallback,
	}
	if config.ConsoleSummary {
		s.console = NewConsoleSummaryFormatter(config.Log, reporting.NewStdoutWriter())
	}
	if !config.RunOnce {
		s.svc = service.New(config.Service, config.Log)
	}
	return s, nil
}

// Start summarises pending raw logs, then keeps doing so at the configured
// interval unless in run-once mode.
// Start implements the cliapp.Lifecycle interface.
func (s *summariser) Start(ctx context.Context) error {
	// Set up panic recovery to ensure we exit with code 2 for runtime errors
	defer func() {
		if r := recover(); r != nil {
			s.config.Log.Error("Runtime error occurred", "error", r)
			os.Exit(exitcodes.RuntimeErr)
		}
	}()

	s.ctx = ctx
	s.done = make(chan struct{})
	s.running.Store(true)

	if s.config.RunOnce {
		s.config.Log.Info("Starting zenith-summarise in run-once mode", "version", s.version)
	} else {
		s.config.Log.Info("Starting zenith-summarise in watch mode", "version", s.version, "interval", s.config.RunInterval)
		s.svc.Start(ctx)
	}

	failure, err := s.scan()
	if err != nil {
		s.config.Log.Error("Runtime error summarising logs", "error", err)
		if s.config.RunOnce {
			return cli.Exit(err.Error(), exitcodes.RuntimeErr)
		}
	}

	if s.config.RunOnce {
		s.config.Log.Info("Summaries completed, exiting (run-once mode)")
		if failure != nil {
			s.config.Log.Warn("Summarised run has failures, returning exit code 1", "err", failure)
			return failure
		}
		go func() {
			s.shutdownCallback(nil)
		}()
		return nil
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.config.Log.Debug("Starting log directory watcher", "interval", s.config.RunInterval)

		for {
			select {
			case <-time.After(s.config.RunInterval):
				if !s.running.Load() {
					s.config.Log.Debug("Service stopped, exiting log directory watcher")
					return
				}
				if _, err := s.scan(); err != nil {
					s.config.Log.Error("Error summarising logs", "error", err)
				}

			case <-s.done:
				s.config.Log.Debug("Done signal received, stopping log directory watcher")
				return

			case <-ctx.Done():
				s.config.Log.Debug("Context canceled, stopping log directory watcher")
				s.running.Store(false)
				return
			}
		}
	}()
	s.config.Log.Debug("zenith-summarise started successfully")
	return nil
}

// scan summarises every pending raw log. It returns the first run failure
// and the joined runtime errors; a runtime error on one log does not stop
// the others.
func (s *summariser) scan() (*TestFailureError, error) {
	pending, err := s.pendingLogs()
	if err != nil {
		s.reportScan(err)
		return nil, NewRuntimeError("scan log directory", err)
	}
	s.config.Log.Debug("Scanned for raw logs", "pending", len(pending))

	var failure *TestFailureError
	var errs []error
	results := make([]*Result, 0, len(pending))
	for _, raw := range pending {
		res, err := Summarize(s.config, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
		if s.console != nil {
			if err := s.console.FormatResult(res); err != nil {
				s.config.Log.Warn("Failed to print run summary", "raw", raw, "err", err)
			}
		}
		if res.Failed() && failure == nil {
			failure = NewTestFailureError(res.Paths.Raw, res.Stats)
		}
	}
	s.mu.Lock()
	s.results = results
	s.mu.Unlock()

	err = errors.Join(errs...)
	s.reportScan(err)
	return failure, err
}

func (s *summariser) reportScan(err error) {
	if s.svc != nil {
		s.svc.Healthz.ReportScan(time.Now(), err)
	}
}

// pendingLogs lists the explicit raw log, if any, followed by the raw logs
// under LogDir that have no elements log yet. In watch mode the explicit log
// is skipped once it has an elements log too.
func (s *summariser) pendingLogs() ([]string, error) {
	var pending []string
	if s.config.RawLog != "" {
		summarised, err := hasElements(s.config.RawLog)
		if err != nil {
			return nil, err
		}
		if s.config.RunOnce || !summarised {
			pending = append(pending, s.config.RawLog)
		}
	}
	if s.config.LogDir == "" {
		return pending, nil
	}

	var found []string
	err := filepath.WalkDir(s.config.LogDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !logging.IsRawLog(path) || path == s.config.RawLog {
			return nil
		}
		summarised, err := hasElements(path)
		if err != nil || summarised {
			return err
		}
		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return append(pending, found...), nil
}

func hasElements(rawPath string) (bool, error) {
	paths, err := logging.PathsForRawLog(rawPath)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(paths.Elements); err == nil {
		return true, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to check elements log %s: %w", paths.Elements, err)
	}
	return false, nil
}

// Stop stops the summariser.
// Stop implements the cliapp.Lifecycle interface.
func (s *summariser) Stop(ctx context.Context) error {
	s.config.Log.Info("Stopping zenith-summarise")

	if !s.running.Load() {
		s.config.Log.Debug("Service already stopped, nothing to do")
		return nil
	}
	s.running.Store(false)

	s.config.Log.Debug("Sending done signal to goroutines")
	close(s.done)

	if s.svc != nil {
		s.svc.Shutdown()
	}

	s.config.Log.Info("zenith-summarise stopped successfully")
	return nil
}

// Stopped returns true if the summariser is stopped.
// Stopped implements the cliapp.Lifecycle interface.
func (s *summariser) Stopped() bool {
	return !s.running.Load()
}

// Results returns the results of the most recent scan
func (s *summariser) Results() []*Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// WaitForShutdown blocks until all goroutines have terminated.
// This is useful in tests to ensure complete cleanup before moving to the next test.
func (s *summariser) WaitForShutdown(ctx context.Context) error {
	s.config.Log.Debug("Waiting for all goroutines to terminate")

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.config.Log.Debug("All goroutines terminated successfully")
		return nil
	case <-ctx.Done():
		s.config.Log.Warn("Timed out waiting for goroutines to terminate", "error", ctx.Err())
		return ctx.Err()
	}
}

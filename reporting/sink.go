package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/theGhostJW/zenith-with-typescript-sub000/logging"
	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

// StampLayout formats the run start time inserted into report copies
const StampLayout = "20060102_150405"

// ReportWriter defines the interface for writing reports to various destinations
type ReportWriter interface {
	Write(content string) error
}

// FileWriter writes reports to a file
type FileWriter struct {
	path string
}

// NewFileWriter creates a new file writer
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Write writes the content to the file, creating its directory if needed
func (fw *FileWriter) Write(content string) error {
	if err := os.MkdirAll(filepath.Dir(fw.path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	return os.WriteFile(fw.path, []byte(content), 0644)
}

// StdoutWriter writes reports to stdout
type StdoutWriter struct{}

// NewStdoutWriter creates a new stdout writer
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{}
}

// Write writes the content to stdout
func (sw *StdoutWriter) Write(content string) error {
	_, err := fmt.Print(content)
	return err
}

// Reports holds the rendered full and issues-only reports of a run
type Reports struct {
	Full   string
	Issues string
}

// TextReportSink renders the text reports of a summarised run from its
// elements log and writes them next to the raw log
type TextReportSink struct {
	log     log.Logger
	paths   logging.ArtifactPaths
	divider string
}

// NewTextReportSink creates a sink for the artifacts at paths
func NewTextReportSink(logger log.Logger, paths logging.ArtifactPaths, divider string) *TextReportSink {
	if logger == nil {
		logger = log.New()
	}
	if divider == "" {
		divider = logging.DefaultDivider
	}
	return &TextReportSink{log: logger, paths: paths, divider: divider}
}

// Render streams the elements log into the full and issues reports
func (s *TextReportSink) Render(summary *types.FullSummaryInfo) (*Reports, error) {
	var full, issues strings.Builder

	if summary.RunSummary != nil {
		block, err := SummaryBlock(summary.RunSummary, summary.RawFile)
		if err != nil {
			return nil, err
		}
		full.WriteString(block)
		issues.WriteString(block)
	}

	all := NewIterationFormatter(summary.TestSummaries)
	failing := NewIterationFormatter(summary.TestSummaries)
	err := logging.ReadElements(s.paths.Elements, s.divider, func(el types.Element) error {
		switch el.Type {
		case types.ElementIteration:
			block, err := all.Format(el.Iteration)
			if err != nil {
				return err
			}
			full.WriteString("\n" + block)
			if el.Iteration.Status() != types.StatusPass {
				block, err := failing.Format(el.Iteration)
				if err != nil {
					return err
				}
				issues.WriteString("\n" + block)
			}
		case types.ElementOutOfTestIssues:
			block, err := OutOfTestBlock(el.OutOfTestIssues)
			if err != nil {
				return err
			}
			full.WriteString("\n" + block)
			issues.WriteString("\n" + block)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read elements log: %w", err)
	}

	if summary.RunSummary != nil && len(summary.RunSummary.FilterLog) > 0 {
		full.WriteString("\n" + FilterLogBlock(summary.RunSummary.FilterLog))
	}
	return &Reports{Full: full.String(), Issues: issues.String()}, nil
}

// Write renders the reports and writes them with their stamped copies
func (s *TextReportSink) Write(summary *types.FullSummaryInfo) error {
	reports, err := s.Render(summary)
	if err != nil {
		return err
	}

	targets := map[string]string{
		s.paths.Full:   reports.Full,
		s.paths.Issues: reports.Issues,
	}
	if stamp, ok := runStamp(summary); ok {
		targets[logging.Stamped(s.paths.Full, stamp)] = reports.Full
		targets[logging.Stamped(s.paths.Issues, stamp)] = reports.Issues
	} else {
		s.log.Warn("No run start time, skipping stamped report copies", "raw", summary.RawFile)
	}

	for path, content := range targets {
		if err := NewFileWriter(path).Write(content); err != nil {
			return fmt.Errorf("failed to write report %s: %w", path, err)
		}
	}
	s.log.Info("Wrote reports", "full", s.paths.Full, "issues", s.paths.Issues)
	return nil
}

func runStamp(summary *types.FullSummaryInfo) (string, bool) {
	if summary.RunSummary == nil {
		return "", false
	}
	start, err := ParseTimestamp(summary.RunSummary.StartTime)
	if err != nil {
		return "", false
	}
	return start.Format(StampLayout), true
}

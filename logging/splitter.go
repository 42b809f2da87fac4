package logging

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultDivider is the line the run logger writes between records. A line
// starting with it marks a record boundary.
const DefaultDivider = "#------------------------------------------------------------------------------"

// RecordFunc receives one record at a time
type RecordFunc func(record string) error

// SplitRecords reads r line by line and calls fn with the text between each
// pair of divider lines. Lines are rejoined with the newline convention of the
// stream's first line. Blank records are skipped; a final record that is not
// followed by a divider is still delivered. Only one record is held in memory
// at a time. An error from fn stops the split and is returned as is.
func SplitRecords(r io.Reader, divider string, fn RecordFunc) error {
	if divider == "" {
		return errors.New("divider cannot be empty")
	}

	reader := bufio.NewReader(r)
	newline := ""
	var record strings.Builder
	lines := 0

	flush := func() error {
		text := record.String()
		record.Reset()
		lines = 0
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return fn(text)
	}

	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("failed to read log: %w", readErr)
		}
		if line != "" {
			if newline == "" && strings.HasSuffix(line, "\n") {
				newline = "\n"
				if strings.HasSuffix(line, "\r\n") {
					newline = "\r\n"
				}
			}
			content := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

			if strings.HasPrefix(content, divider) {
				if err := flush(); err != nil {
					return err
				}
			} else {
				if lines > 0 {
					record.WriteString(newlineOrDefault(newline))
				}
				record.WriteString(content)
				lines++
			}
		}
		if readErr != nil {
			return flush()
		}
	}
}

func newlineOrDefault(newline string) string {
	if newline == "" {
		return "\n"
	}
	return newline
}

// SplitFile runs SplitRecords over the file at path. Each call reopens the
// file, so the record sequence can be replayed from the start.
func SplitFile(path, divider string, fn RecordFunc) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return SplitRecords(file, divider, fn)
}

package logging

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

// RecordWriter writes YAML records in the same divider-delimited layout the
// run logger uses, so its output can be read back with SplitRecords.
type RecordWriter struct {
	w       *bufio.Writer
	closer  io.Closer
	divider string
	count   int
}

// NewRecordWriter wraps w. If w is also an io.Closer, Close closes it.
func NewRecordWriter(w io.Writer, divider string) *RecordWriter {
	rw := &RecordWriter{
		w:       bufio.NewWriter(w),
		divider: divider,
	}
	if c, ok := w.(io.Closer); ok {
		rw.closer = c
	}
	return rw
}

// CreateRecordFile creates (or truncates) the file at path and returns a
// writer for it
func CreateRecordFile(path, divider string) (*RecordWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}
	return NewRecordWriter(file, divider), nil
}

// WriteRecord appends v as one YAML record followed by a divider line
func (rw *RecordWriter) WriteRecord(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := rw.w.Write(data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	if _, err := fmt.Fprintln(rw.w, rw.divider); err != nil {
		return fmt.Errorf("failed to write divider: %w", err)
	}
	rw.count++
	return nil
}

// WriteElement appends an elements log record
func (rw *RecordWriter) WriteElement(el types.Element) error {
	return rw.WriteRecord(el)
}

// Count returns the number of records written so far
func (rw *RecordWriter) Count() int {
	return rw.count
}

// Close flushes buffered records and closes the underlying writer if it can
// be closed
func (rw *RecordWriter) Close() error {
	if err := rw.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}
	if rw.closer != nil {
		return rw.closer.Close()
	}
	return nil
}

// ReadElements streams the elements log at path, decoding one element per
// record
func ReadElements(path, divider string, fn func(types.Element) error) error {
	return SplitFile(path, divider, func(record string) error {
		var el types.Element
		if err := yaml.Unmarshal([]byte(record), &el); err != nil {
			return fmt.Errorf("failed to decode element record: %w", err)
		}
		return fn(el)
	})
}

package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// CSVWriter streams StepStats rows as CSV. The header is written with the
// first row.
type CSVWriter struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewCSVWriter writes rows to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// CreateCSV creates (or truncates) the file at path, making parent
// directories as needed. Returns nil if path is empty (output disabled).
func CreateCSV(path string) (*CSVWriter, error) {
	if path == "" {
		return nil, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &CSVWriter{w: f, closer: f}, nil
}

// Write appends one row.
func (cw *CSVWriter) Write(row StepStats) error {
	if cw == nil {
		return nil
	}

	records := []StepStats{row}

	if !cw.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, cw.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		cw.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, cw.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}

	return nil
}

// Close closes the underlying file, if CreateCSV opened one. Later calls
// are no-ops.
func (cw *CSVWriter) Close() error {
	if cw == nil || cw.closer == nil {
		return nil
	}
	c := cw.closer
	cw.closer = nil
	if err := c.Close(); err != nil {
		return fmt.Errorf("closing telemetry: %w", err)
	}
	return nil
}

// ReadCSV loads rows previously written by a CSVWriter.
func ReadCSV(r io.Reader) ([]StepStats, error) {
	var rows []StepStats
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading telemetry: %w", err)
	}
	return rows, nil
}

package record

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer adds records to a CSV file.
type Writer struct {
	path string
	mode Mode
}

// NewWriter returns a Writer for the file at path.
func NewWriter(path string, mode Mode) *Writer {
	return &Writer{path: path, mode: mode}
}

// Path returns the file the writer targets.
func (w *Writer) Path() string {
	return w.path
}

// Write stores rec according to the writer's mode.
func (w *Writer) Write(rec Record) error {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if w.mode == ModeReplace {
		return w.create(rec)
	}

	existing, err := os.ReadFile(w.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading CSV file: %w", err)
	}
	if len(existing) == 0 {
		return w.create(rec)
	}

	first, err := csv.NewReader(bytes.NewReader(existing)).Read()
	if err != nil || !isHeader(first) {
		return fmt.Errorf("%w: %s", ErrHeaderMismatch, w.path)
	}

	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening CSV file: %w", err)
	}
	defer file.Close()

	if existing[len(existing)-1] != '\n' {
		if _, err := io.WriteString(file, "\n"); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}
	return writeRows(file, rec.row())
}

// create truncates the file and writes the header and rec.
func (w *Writer) create(rec Record) error {
	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("opening CSV file: %w", err)
	}
	defer file.Close()

	return writeRows(file, Header, rec.row())
}

func writeRows(f *os.File, rows ...[]string) error {
	writer := csv.NewWriter(f)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writing CSV record: %w", err)
	}
	return f.Sync()
}

func isHeader(row []string) bool {
	if len(row) != len(Header) {
		return false
	}
	for i := range Header {
		if row[i] != Header[i] {
			return false
		}
	}
	return true
}

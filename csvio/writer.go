// Package csvio holds the thin CSV helpers the commands share: a lazy writer
// that derives the header row from the first record, and a column reader for
// identifier input files.
package csvio

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Record is anything that can render itself as one CSV row.
type Record interface {
	CSVHeader() []string
	CSVRow() []string
}

// Writer writes records as CSV, emitting the header row on the first write so
// callers never declare field names up front.
type Writer struct {
	w           *csv.Writer
	wroteHeader bool
	rows        int
}

// NewWriter wraps an io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// Write writes one record, preceded by the header row if this is the first.
func (w *Writer) Write(rec Record) error {
	if !w.wroteHeader {
		if err := w.w.Write(rec.CSVHeader()); err != nil {
			return errors.Wrap(err, "write csv header")
		}
		w.wroteHeader = true
	}
	if err := w.w.Write(rec.CSVRow()); err != nil {
		return errors.Wrap(err, "write csv row")
	}
	w.rows++
	return nil
}

// Rows returns the number of records written so far.
func (w *Writer) Rows() int { return w.rows }

// Flush flushes buffered rows and reports any accumulated write error.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// Output is a CSV destination that is either a file path or, when the path is
// empty, an in-memory buffer whose contents String returns after Close.
type Output struct {
	writer *Writer
	file   *os.File
	buf    *strings.Builder
}

// OpenOutput opens path for CSV writing; an empty path collects the CSV text
// in memory instead.
func OpenOutput(path string) (*Output, error) {
	if path == "" {
		buf := &strings.Builder{}
		return &Output{writer: NewWriter(buf), buf: buf}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}
	return &Output{writer: NewWriter(f), file: f}, nil
}

// Write writes one record.
func (o *Output) Write(rec Record) error { return o.writer.Write(rec) }

// Rows returns the number of records written.
func (o *Output) Rows() int { return o.writer.Rows() }

// Close flushes and closes the destination.
func (o *Output) Close() error {
	if err := o.writer.Flush(); err != nil {
		return err
	}
	if o.file != nil {
		return o.file.Close()
	}
	return nil
}

// String returns the collected CSV text for in-memory outputs, and "" for
// file-backed ones.
func (o *Output) String() string {
	if o.buf == nil {
		return ""
	}
	return o.buf.String()
}

package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"hotelcomp/internal/config"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter saves CSV reports. Relative file paths are resolved against
// the reports directory when paths is not nil.
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a CSV writer
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions is the content of one CSV document
type WriteOptions struct {
	Headers []string
	Records [][]string
	// BOMPrefix makes Excel detect UTF-8
	BOMPrefix bool
}

// WriteCSV replaces filePath with the document described by options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	path := filePath
	if !filepath.IsAbs(path) && w.paths != nil {
		path = w.paths.GetReportPath(path)
	}

	if err := writeFileAtomic(path, func(out io.Writer) error {
		return WriteTo(out, options)
	}); err != nil {
		return err
	}

	slog.Debug("csv written", slog.String("path", path), slog.Int("records", len(options.Records)))
	return nil
}

// WriteTo streams the document described by options to out
func WriteTo(out io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(out)
	if len(options.Headers) > 0 {
		if err := cw.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Package export writes plan results to disk as CSV or JSON.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lox/seededrand/internal/plan"
)

// Format names an output encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for formats other than csv and json.
var ErrUnknownFormat = errors.New("unknown export format")

// FormatFor guesses a format from a filename, defaulting to CSV.
func FormatFor(filename string) Format {
	if filepath.Ext(filename) == ".json" {
		return FormatJSON
	}
	return FormatCSV
}

// Encode writes results to w in the given format. CSV rows are
// step,index,label,v0,v1,... with one row per sample.
func Encode(w io.Writer, format Format, results []plan.Result) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatCSV:
		cw := csv.NewWriter(w)
		width := 0
		for _, r := range results {
			for _, s := range r.Samples {
				width = max(width, len(s.Values))
			}
		}
		header := []string{"step", "index", "label"}
		for i := 0; i < width; i++ {
			header = append(header, "v"+strconv.Itoa(i))
		}
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, r := range results {
			for _, s := range r.Samples {
				row := []string{s.Step, strconv.Itoa(s.Index), s.Label}
				for _, v := range s.Values {
					row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile encodes results and writes them to filename atomically: readers
// see either the previous file or the complete new one, never a partial
// write.
func WriteFile(filename string, format Format, results []plan.Result) error {
	var buf bytes.Buffer
	if err := Encode(&buf, format, results); err != nil {
		return err
	}
	return writeAtomic(filename, buf.Bytes(), 0o644)
}

func writeAtomic(filename string, data []byte, perm os.FileMode) error {
	// temp file in the same directory so the rename stays on one filesystem
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

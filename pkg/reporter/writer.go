// Package reporter serializes aggregated comparison results: the dated CSV
// artifact, per-project detail JSON, and the terminal table.
package reporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/afero"

	"github.com/yaklabco/saeval/pkg/aggregate"
	"github.com/yaklabco/saeval/pkg/fsutil"
)

// WriteError reports a failure to persist a results artifact.
type WriteError struct {
	// Path is the destination that could not be written.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write results %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *WriteError) Unwrap() error { return e.Err }

// csvHeader is the column order of the results table artifact.
var csvHeader = []string{"project_name", "tp", "fp", "fn", "pre", "rec"}

// CSVName returns the artifact name for a run date, e.g. "20260831.csv".
func CSVName(date time.Time) string {
	return date.Format("20060102") + ".csv"
}

// WriteCSV writes one row per project in the given order, then the summary
// row, to dir/<YYYYMMDD>.csv. The table is rendered fully in memory and
// written with atomic-replace semantics: either the whole artifact lands or
// the destination is left untouched.
//
// Callers pass the rows without the summary row; it is computed here so the
// artifact can never carry a summary inconsistent with its rows.
func WriteCSV(ctx context.Context, fs afero.Fs, dir string, rows []aggregate.Row, date time.Time) (string, error) {
	path := filepath.Join(dir, CSVName(date))

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	for _, row := range rows {
		if err := w.Write(csvRecord(row)); err != nil {
			return "", &WriteError{Path: path, Err: err}
		}
	}
	if err := w.Write(csvRecord(aggregate.Summarize(rows))); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}

	if err := fsutil.WriteAtomic(ctx, fs, path, buf.Bytes(), 0); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	return path, nil
}

func csvRecord(row aggregate.Row) []string {
	return []string{
		row.Project,
		strconv.Itoa(row.TP),
		strconv.Itoa(row.FP),
		strconv.Itoa(row.FN),
		formatRatio(row.Precision),
		formatRatio(row.Recall),
	}
}

func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/yaklabco/saeval/pkg/fsutil"
)

// timingFileName is written by the analyzer driver next to its reports.
const timingFileName = "analysis_time.json"

// timingPayload mirrors the driver's timing record. Only elapsed_seconds is
// load-bearing; the timestamps are informational.
type timingPayload struct {
	StartTimestamp *float64 `json:"start_timestamp,omitempty"`
	EndTimestamp   *float64 `json:"end_timestamp,omitempty"`
	ElapsedSeconds *float64 `json:"elapsed_seconds"`
}

// readAnalysisTime locates and parses the timing record for a run. It looks
// directly under reportsDir, then in each immediate subdirectory (the driver
// sometimes nests its output one level down).
//
// Timing is a first-class output of the experiment: a missing or malformed
// record is an error, never defaulted to zero.
func readAnalysisTime(fs afero.Fs, reportsDir string) (float64, error) {
	candidates := []string{filepath.Join(reportsDir, timingFileName)}

	children, err := afero.ReadDir(fs, reportsDir)
	if err != nil {
		return 0, fmt.Errorf("list reports dir: %w", err)
	}
	for _, child := range children {
		if child.IsDir() {
			candidates = append(candidates, filepath.Join(reportsDir, child.Name(), timingFileName))
		}
	}

	for _, path := range candidates {
		content, err := fsutil.ReadFile(fs, path)
		if err != nil {
			if errors.Is(err, fsutil.ErrNotFound) {
				continue
			}
			return 0, err
		}

		var payload timingPayload
		if err := json.Unmarshal(content, &payload); err != nil {
			return 0, fmt.Errorf("parse %s: %w", path, err)
		}
		if payload.ElapsedSeconds == nil {
			// Fall back to the timestamp pair when the driver only
			// recorded begin and end.
			if payload.StartTimestamp != nil && payload.EndTimestamp != nil {
				return *payload.EndTimestamp - *payload.StartTimestamp, nil
			}
			return 0, fmt.Errorf("%s: missing elapsed_seconds", path)
		}
		if *payload.ElapsedSeconds < 0 {
			return 0, fmt.Errorf("%s: negative elapsed_seconds", path)
		}
		return *payload.ElapsedSeconds, nil
	}

	return 0, fmt.Errorf("no %s under %s", timingFileName, reportsDir)
}

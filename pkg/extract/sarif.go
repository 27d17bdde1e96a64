package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/spf13/afero"

	"github.com/yaklabco/saeval/pkg/fsutil"
	"github.com/yaklabco/saeval/pkg/report"
)

const sarifExtension = ".sarif"

// rawEntry is a finding together with the raw source path it was reported
// against, before relativization.
type rawEntry struct {
	filePath string
	finding  report.Finding
}

// findSARIFFiles walks dir recursively and returns all SARIF report paths in
// deterministic (lexical walk) order.
func findSARIFFiles(fs afero.Fs, dir string) ([]string, error) {
	var paths []string
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), sarifExtension) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk reports dir: %w", err)
	}
	return paths, nil
}

// parseSARIFFile decodes one SARIF report and flattens its results into raw
// entries. Results without a physical location are attributed to the
// "<unknown>" pseudo path so they still participate in matching.
func parseSARIFFile(fs afero.Fs, path string) ([]rawEntry, error) {
	content, err := fsutil.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var doc sarif.Report
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse SARIF %s: %w", path, err)
	}

	var entries []rawEntry
	for _, run := range doc.Runs {
		if run == nil {
			continue
		}
		for _, result := range run.Results {
			if result == nil {
				continue
			}
			entries = append(entries, resultToEntry(result))
		}
	}
	return entries, nil
}

func resultToEntry(result *sarif.Result) rawEntry {
	entry := rawEntry{filePath: "<unknown>"}

	if result.RuleID != nil {
		entry.finding.Checker = *result.RuleID
	}
	if result.Message.Text != nil {
		entry.finding.Message = *result.Message.Text
	}

	if len(result.Locations) == 0 {
		return entry
	}
	loc := result.Locations[0]
	if loc == nil || loc.PhysicalLocation == nil {
		return entry
	}

	if art := loc.PhysicalLocation.ArtifactLocation; art != nil && art.URI != nil {
		uri := strings.TrimPrefix(strings.TrimSpace(*art.URI), "file://")
		if uri != "" {
			entry.filePath = uri
		}
	}
	if region := loc.PhysicalLocation.Region; region != nil && region.StartLine != nil {
		entry.finding.Line = *region.StartLine
	}

	return entry
}

package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"

	"github.com/yaklabco/saeval/pkg/fsutil"
)

// Save writes the ProjectResult as canonical JSON to path, atomically.
//
// The encoding is deterministic: map keys are emitted in sorted order by
// encoding/json, findings keep their stored order, and the output ends with
// a newline. Extracting the same raw reports twice therefore yields
// byte-identical artifacts.
func Save(ctx context.Context, fs afero.Fs, path string, result *ProjectResult) error {
	if result == nil {
		return fmt.Errorf("save intermediate: nil result")
	}

	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode intermediate: %w", err)
	}
	content = append(content, '\n')

	if err := fsutil.WriteAtomic(ctx, fs, path, content, 0); err != nil {
		return fmt.Errorf("write intermediate %s: %w", path, err)
	}
	return nil
}

// Load reads an intermediate JSON artifact and validates its invariants.
//
// Findings violating the identity invariant (empty checker or line < 1) are
// rejected, duplicate identities are collapsed defensively, and empty file
// entries are dropped.
func Load(fs afero.Fs, path string) (*ProjectResult, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read intermediate %s: %w", path, err)
	}

	var result ProjectResult
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("decode intermediate %s: %w", path, err)
	}

	if result.Project == "" {
		return nil, fmt.Errorf("intermediate %s: missing project name", path)
	}
	for filePath, findings := range result.Files {
		for _, f := range findings {
			if !f.Valid() {
				return nil, fmt.Errorf("intermediate %s: invalid finding %q line %d in %s",
					path, f.Checker, f.Line, filePath)
			}
		}
	}
	result.Files = Dedup(result.Files)

	return &result, nil
}

package runner

import (
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/saeval/pkg/config"
	"github.com/yaklabco/saeval/pkg/report"
)

// seedIntermediate stores a ready-made intermediate artifact for one side.
func seedIntermediate(t *testing.T, fs afero.Fs, dir, project string, files map[string][]report.Finding) {
	t.Helper()
	result := &report.ProjectResult{Project: project, Files: files}
	require.NoError(t, report.Save(context.Background(), fs, dir+"/"+project+".json", result))
}

func finding(checker string, line int) report.Finding {
	return report.Finding{Checker: checker, Message: "m", Line: line}
}

func projects(names ...string) []config.Project {
	out := make([]config.Project, 0, len(names))
	for _, name := range names {
		out = append(out, config.Project{Name: name})
	}
	return out
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("compares stored artifacts per project", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		seedIntermediate(t, fs, "gt", "curl", map[string][]report.Finding{
			"a.c": {finding("x", 1), finding("y", 2)},
		})
		seedIntermediate(t, fs, "cand", "curl", map[string][]report.Finding{
			"a.c": {finding("x", 1), finding("z", 9)},
		})

		result, err := New(nil).Run(context.Background(), Options{
			Fs:          fs,
			Projects:    projects("curl"),
			GroundTruth: Source{IntermediatesDir: "gt"},
			Candidate:   Source{IntermediatesDir: "cand"},
		})
		require.NoError(t, err)

		require.Len(t, result.Rows, 1)
		assert.Equal(t, "curl", result.Rows[0].Project)
		assert.Equal(t, 1, result.Rows[0].TP)
		assert.Equal(t, 1, result.Rows[0].FP)
		assert.Equal(t, 1, result.Rows[0].FN)
		assert.Equal(t, result.Rows[0].TP, result.Summary.TP)
		assert.False(t, result.Failed())
	})

	t.Run("disabled projects produce no row", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		seedIntermediate(t, fs, "gt", "curl", nil)
		seedIntermediate(t, fs, "cand", "curl", nil)
		// No artifacts for zlib: if it were not skipped, it would fail.

		result, err := New(nil).Run(context.Background(), Options{
			Fs: fs,
			Projects: []config.Project{
				{Name: "curl"},
				{Name: "zlib", Disabled: true},
			},
			GroundTruth: Source{IntermediatesDir: "gt"},
			Candidate:   Source{IntermediatesDir: "cand"},
		})
		require.NoError(t, err)

		require.Len(t, result.Rows, 1)
		assert.Equal(t, "curl", result.Rows[0].Project)
		assert.Empty(t, result.Errors)
	})

	t.Run("failure of one project does not abort the rest", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		seedIntermediate(t, fs, "gt", "good", nil)
		seedIntermediate(t, fs, "cand", "good", nil)
		// "broken" has no artifacts at all.

		result, err := New(nil).Run(context.Background(), Options{
			Fs:          fs,
			Projects:    projects("broken", "good"),
			GroundTruth: Source{IntermediatesDir: "gt"},
			Candidate:   Source{IntermediatesDir: "cand"},
		})
		require.NoError(t, err)

		require.Len(t, result.Rows, 1)
		assert.Equal(t, "good", result.Rows[0].Project)

		require.Len(t, result.Errors, 1)
		assert.Equal(t, "broken", result.Errors[0].Project)
		assert.ErrorContains(t, result.Errors[0].Err, "ground truth")
		assert.True(t, result.Failed())
	})

	t.Run("rows keep configured order regardless of worker scheduling", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		var names []string
		for i := range 20 {
			name := fmt.Sprintf("p%02d", i)
			names = append(names, name)
			seedIntermediate(t, fs, "gt", name, map[string][]report.Finding{
				"a.c": {finding("x", i + 1)},
			})
			seedIntermediate(t, fs, "cand", name, map[string][]report.Finding{
				"a.c": {finding("x", i + 1)},
			})
		}

		result, err := New(nil).Run(context.Background(), Options{
			Fs:          fs,
			Projects:    projects(names...),
			GroundTruth: Source{IntermediatesDir: "gt"},
			Candidate:   Source{IntermediatesDir: "cand"},
			Jobs:        4,
		})
		require.NoError(t, err)

		require.Len(t, result.Rows, len(names))
		for i, row := range result.Rows {
			assert.Equal(t, names[i], row.Project)
		}
	})

	t.Run("no enabled projects yields empty result", func(t *testing.T) {
		t.Parallel()

		result, err := New(nil).Run(context.Background(), Options{
			Fs:       afero.NewMemMapFs(),
			Projects: []config.Project{{Name: "only", Disabled: true}},
		})
		require.NoError(t, err)

		assert.Empty(t, result.Rows)
		assert.Empty(t, result.Errors)
		assert.Equal(t, "all", result.Summary.Project)
	})

	t.Run("cancelled context surfaces as error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fs := afero.NewMemMapFs()
		seedIntermediate(t, fs, "gt", "curl", nil)
		seedIntermediate(t, fs, "cand", "curl", nil)

		_, err := New(nil).Run(ctx, Options{
			Fs:          fs,
			Projects:    projects("curl"),
			GroundTruth: Source{IntermediatesDir: "gt"},
			Candidate:   Source{IntermediatesDir: "cand"},
		})
		assert.Error(t, err)
	})
}

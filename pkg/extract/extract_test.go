package extract

import (
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/saeval/pkg/report"
)

// sarifDoc renders a minimal SARIF 2.1.0 document with the given results.
func sarifDoc(results ...string) string {
	joined := ""
	for i, r := range results {
		if i > 0 {
			joined += ","
		}
		joined += r
	}
	return fmt.Sprintf(`{
  "version": "2.1.0",
  "$schema": "https://json.schemastore.org/sarif-2.1.0.json",
  "runs": [
    {
      "tool": {"driver": {"name": "clang-analyzer"}},
      "results": [%s]
    }
  ]
}`, joined)
}

func sarifResult(ruleID, message, uri string, line int) string {
	return fmt.Sprintf(`{
  "ruleId": %q,
  "message": {"text": %q},
  "locations": [
    {
      "physicalLocation": {
        "artifactLocation": {"uri": %q},
        "region": {"startLine": %d}
      }
    }
  ]
}`, ruleID, message, uri, line)
}

func writeTiming(t *testing.T, fs afero.Fs, path string, elapsed float64) {
	t.Helper()
	content := fmt.Sprintf(`{"start_timestamp": 100.0, "end_timestamp": %f, "elapsed_seconds": %f}`,
		100.0+elapsed, elapsed)
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("groups findings by relativized path", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		doc := sarifDoc(
			sarifResult("core.DivideZero", "Division by zero", "file:///work/curl/src/easy.c", 10),
			sarifResult("core.NullDereference", "Null deref", "file:///work/curl/src/url.c", 20),
		)
		require.NoError(t, afero.WriteFile(fs, "reports/curl/report.sarif", []byte(doc), 0o644))
		writeTiming(t, fs, "reports/curl/analysis_time.json", 3.5)

		result, err := Extract(context.Background(), fs, Options{
			ReportsDir:  "reports/curl",
			Project:     "curl",
			ProjectRoot: "/work/curl",
		})
		require.NoError(t, err)

		assert.Equal(t, "curl", result.Project)
		assert.Equal(t, 3.5, result.AnalysisDurationSeconds)
		assert.Equal(t, map[string][]report.Finding{
			"src/easy.c": {{Checker: "core.DivideZero", Message: "Division by zero", Line: 10}},
			"src/url.c":  {{Checker: "core.NullDereference", Message: "Null deref", Line: 20}},
		}, result.Files)
	})

	t.Run("deduplicates identical findings across reports", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		doc := sarifDoc(sarifResult("core.DivideZero", "div", "/src/a.c", 5))
		require.NoError(t, afero.WriteFile(fs, "reports/p/one.sarif", []byte(doc), 0o644))
		require.NoError(t, afero.WriteFile(fs, "reports/p/two.sarif", []byte(doc), 0o644))
		writeTiming(t, fs, "reports/p/analysis_time.json", 1)

		result, err := Extract(context.Background(), fs, Options{ReportsDir: "reports/p", Project: "p"})
		require.NoError(t, err)

		assert.Equal(t, 1, result.FindingCount())
	})

	t.Run("skips findings without checker or line", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		doc := sarifDoc(
			sarifResult("", "no rule", "/src/a.c", 5),
			sarifResult("core.DivideZero", "no line", "/src/a.c", 0),
			sarifResult("core.DivideZero", "kept", "/src/a.c", 9),
		)
		require.NoError(t, afero.WriteFile(fs, "reports/p/report.sarif", []byte(doc), 0o644))
		writeTiming(t, fs, "reports/p/analysis_time.json", 1)

		result, err := Extract(context.Background(), fs, Options{ReportsDir: "reports/p", Project: "p"})
		require.NoError(t, err)

		require.Equal(t, 1, result.FindingCount())
		assert.Equal(t, "kept", result.Files["/src/a.c"][0].Message)
	})

	t.Run("missing reports dir", func(t *testing.T) {
		t.Parallel()

		_, err := Extract(context.Background(), afero.NewMemMapFs(), Options{
			ReportsDir: "nowhere", Project: "p",
		})

		var extErr *ExtractionError
		require.ErrorAs(t, err, &extErr)
		assert.Equal(t, "p", extErr.Project)
	})

	t.Run("no SARIF files is an error", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("reports/p", 0o755))
		require.NoError(t, afero.WriteFile(fs, "reports/p/notes.txt", []byte("x"), 0o644))

		_, err := Extract(context.Background(), fs, Options{ReportsDir: "reports/p", Project: "p"})

		var extErr *ExtractionError
		require.ErrorAs(t, err, &extErr)
		assert.Contains(t, err.Error(), "no SARIF reports")
	})

	t.Run("missing timing record is an error", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		doc := sarifDoc(sarifResult("core.DivideZero", "div", "/src/a.c", 5))
		require.NoError(t, afero.WriteFile(fs, "reports/p/report.sarif", []byte(doc), 0o644))

		_, err := Extract(context.Background(), fs, Options{ReportsDir: "reports/p", Project: "p"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "analysis_time.json")
	})

	t.Run("missing project name", func(t *testing.T) {
		t.Parallel()

		_, err := Extract(context.Background(), afero.NewMemMapFs(), Options{ReportsDir: "x"})
		assert.Error(t, err)
	})

	t.Run("malformed SARIF is an error", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "reports/p/bad.sarif", []byte("{not json"), 0o644))
		writeTiming(t, fs, "reports/p/analysis_time.json", 1)

		_, err := Extract(context.Background(), fs, Options{ReportsDir: "reports/p", Project: "p"})
		assert.Error(t, err)
	})
}

func TestReadAnalysisTime(t *testing.T) {
	t.Parallel()

	t.Run("nested one level down", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("reports/run-001", 0o755))
		writeTiming(t, fs, "reports/run-001/analysis_time.json", 7.25)

		got, err := readAnalysisTime(fs, "reports")
		require.NoError(t, err)
		assert.Equal(t, 7.25, got)
	})

	t.Run("falls back to timestamp pair", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		content := `{"start_timestamp": 1000.5, "end_timestamp": 1010.0}`
		require.NoError(t, afero.WriteFile(fs, "reports/analysis_time.json", []byte(content), 0o644))

		got, err := readAnalysisTime(fs, "reports")
		require.NoError(t, err)
		assert.InDelta(t, 9.5, got, 1e-9)
	})

	t.Run("negative elapsed is rejected", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		content := `{"elapsed_seconds": -1.0}`
		require.NoError(t, afero.WriteFile(fs, "reports/analysis_time.json", []byte(content), 0o644))

		_, err := readAnalysisTime(fs, "reports")
		assert.Error(t, err)
	})

	t.Run("missing elapsed and timestamps is rejected", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		content := `{"start_timestamp": 1000.5}`
		require.NoError(t, afero.WriteFile(fs, "reports/analysis_time.json", []byte(content), 0o644))

		_, err := readAnalysisTime(fs, "reports")
		assert.Error(t, err)
	})
}

func TestRelativizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		rawPath     string
		projectRoot string
		want        string
	}{
		{
			name:        "inside root",
			rawPath:     "/work/curl/src/easy.c",
			projectRoot: "/work/curl",
			want:        "src/easy.c",
		},
		{
			name:        "no root keeps path",
			rawPath:     "/work/curl/src/easy.c",
			projectRoot: "",
			want:        "/work/curl/src/easy.c",
		},
		{
			name:        "foreign prefix matched by root name",
			rawPath:     "/mnt/analysis/curl/lib/url.c",
			projectRoot: "/work/curl",
			want:        "lib/url.c",
		},
		{
			name:        "unrelated path kept verbatim",
			rawPath:     "/usr/include/stdio.h",
			projectRoot: "/work/curl",
			want:        "/usr/include/stdio.h",
		},
		{
			name:        "pseudo path kept verbatim",
			rawPath:     "<unknown>",
			projectRoot: "/work/curl",
			want:        "<unknown>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, relativizePath(tt.rawPath, tt.projectRoot))
		})
	}
}

func TestExtractToFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	doc := sarifDoc(sarifResult("core.DivideZero", "div", "/work/p/a.c", 5))
	require.NoError(t, afero.WriteFile(fs, "reports/p/report.sarif", []byte(doc), 0o644))
	writeTiming(t, fs, "reports/p/analysis_time.json", 2)

	result, outPath, err := ExtractToFile(context.Background(), fs, Options{
		ReportsDir:  "reports/p",
		Project:     "p",
		ProjectRoot: "/work/p",
	}, "intermediates/baseline")
	require.NoError(t, err)

	assert.Equal(t, "intermediates/baseline/p.json", outPath)

	loaded, err := report.Load(fs, outPath)
	require.NoError(t, err)
	assert.Equal(t, result, loaded)
}

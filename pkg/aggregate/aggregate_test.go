package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/saeval/pkg/report"
)

func projectResult(project string, files map[string][]report.Finding) *report.ProjectResult {
	return &report.ProjectResult{Project: project, Files: files}
}

func finding(checker string, line int) report.Finding {
	return report.Finding{Checker: checker, Message: "m", Line: line}
}

func TestAggregator_Aggregate(t *testing.T) {
	t.Parallel()

	t.Run("sums outcomes across files", func(t *testing.T) {
		t.Parallel()

		groundTruth := projectResult("curl", map[string][]report.Finding{
			"src/easy.c": {finding("core.NullDereference", 10), finding("core.DivideZero", 20)},
			"src/url.c":  {finding("core.DivideZero", 5)},
		})
		candidate := projectResult("curl", map[string][]report.Finding{
			"src/easy.c": {finding("core.NullDereference", 10)},
			"src/url.c":  {finding("core.DivideZero", 5), finding("unix.Malloc", 7)},
		})

		row, err := New(nil).Aggregate("curl", groundTruth, candidate)
		require.NoError(t, err)

		assert.Equal(t, 2, row.TP)
		assert.Equal(t, 1, row.FP)
		assert.Equal(t, 1, row.FN)
		assert.InDelta(t, 2.0/3.0, row.Precision, 1e-9)
		assert.InDelta(t, 2.0/3.0, row.Recall, 1e-9)
	})

	t.Run("file only on one side still counts", func(t *testing.T) {
		t.Parallel()

		groundTruth := projectResult("zlib", map[string][]report.Finding{
			"inflate.c": {finding("core.UndefinedBinaryOperatorResult", 3)},
		})
		candidate := projectResult("zlib", map[string][]report.Finding{
			"deflate.c": {finding("core.DivideZero", 8)},
		})

		row, err := New(nil).Aggregate("zlib", groundTruth, candidate)
		require.NoError(t, err)

		assert.Equal(t, Row{Project: "zlib", TP: 0, FP: 1, FN: 1}, row)
	})

	t.Run("empty sides yield zero row", func(t *testing.T) {
		t.Parallel()

		row, err := New(nil).Aggregate("empty",
			projectResult("empty", nil), projectResult("empty", nil))
		require.NoError(t, err)

		assert.Equal(t, Row{Project: "empty"}, row)
		assert.Zero(t, row.Precision)
		assert.Zero(t, row.Recall)
	})

	t.Run("same path is never cross-matched between files", func(t *testing.T) {
		t.Parallel()

		groundTruth := projectResult("p", map[string][]report.Finding{
			"a.c": {finding("core.DivideZero", 5)},
		})
		candidate := projectResult("p", map[string][]report.Finding{
			"b.c": {finding("core.DivideZero", 5)},
		})

		row, err := New(nil).Aggregate("p", groundTruth, candidate)
		require.NoError(t, err)

		assert.Equal(t, 0, row.TP)
		assert.Equal(t, 1, row.FP)
		assert.Equal(t, 1, row.FN)
	})

	t.Run("project mismatch is an error", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil).Aggregate("curl",
			projectResult("curl", nil), projectResult("zlib", nil))

		var aggErr *AggregationError
		require.ErrorAs(t, err, &aggErr)
		assert.Equal(t, "curl", aggErr.Expected)
		assert.Equal(t, "zlib", aggErr.Candidate)
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("recomputes ratios from summed counts", func(t *testing.T) {
		t.Parallel()

		// Per-row precisions are 1.0 and 0.5; their average (0.75) is not
		// the summary precision. The summary must come from the sums.
		rows := []Row{
			{Project: "a", TP: 1, FP: 0, FN: 0, Precision: 1.0, Recall: 1.0},
			{Project: "b", TP: 4, FP: 4, FN: 2, Precision: 0.5, Recall: 4.0 / 6.0},
		}

		summary := Summarize(rows)

		assert.Equal(t, AllProjects, summary.Project)
		assert.Equal(t, 5, summary.TP)
		assert.Equal(t, 4, summary.FP)
		assert.Equal(t, 2, summary.FN)
		assert.InDelta(t, 5.0/9.0, summary.Precision, 1e-9)
		assert.InDelta(t, 5.0/7.0, summary.Recall, 1e-9)
	})

	t.Run("no rows", func(t *testing.T) {
		t.Parallel()

		summary := Summarize(nil)

		assert.Equal(t, Row{Project: AllProjects}, summary)
	})

	t.Run("zero denominators yield zero ratios", func(t *testing.T) {
		t.Parallel()

		summary := Summarize([]Row{{Project: "a", FP: 3}})

		assert.Zero(t, summary.Recall)
		assert.Zero(t, summary.Precision)
	})
}

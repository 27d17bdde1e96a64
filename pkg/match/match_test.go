package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/saeval/pkg/report"
)

func finding(checker string, line int) report.Finding {
	return report.Finding{Checker: checker, Message: "m", Line: line}
}

func TestMatcher_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		groundTruth []report.Finding
		candidate   []report.Finding
		want        Outcome
	}{
		{
			name: "identical sides",
			groundTruth: []report.Finding{
				finding("core.NullDereference", 10),
				finding("core.DivideZero", 42),
			},
			candidate: []report.Finding{
				finding("core.NullDereference", 10),
				finding("core.DivideZero", 42),
			},
			want: Outcome{TP: 2, FP: 0, FN: 0},
		},
		{
			name:        "empty ground truth",
			groundTruth: nil,
			candidate:   []report.Finding{finding("core.DivideZero", 7)},
			want:        Outcome{TP: 0, FP: 1, FN: 0},
		},
		{
			name:        "empty candidate",
			groundTruth: []report.Finding{finding("core.DivideZero", 7)},
			candidate:   nil,
			want:        Outcome{TP: 0, FP: 0, FN: 1},
		},
		{
			name:        "both empty",
			groundTruth: nil,
			candidate:   nil,
			want:        Outcome{},
		},
		{
			name: "partial overlap across checkers",
			groundTruth: []report.Finding{
				finding("CWE-1", 10),
				finding("CWE-2", 20),
			},
			candidate: []report.Finding{
				finding("CWE-1", 10),
				finding("CWE-3", 30),
			},
			want: Outcome{TP: 1, FP: 1, FN: 1},
		},
		{
			name:        "same checker different line is no match",
			groundTruth: []report.Finding{finding("core.StackAddressEscape", 10)},
			candidate:   []report.Finding{finding("core.StackAddressEscape", 11)},
			want:        Outcome{TP: 0, FP: 1, FN: 1},
		},
		{
			name:        "same line different checker is no match",
			groundTruth: []report.Finding{finding("core.DivideZero", 10)},
			candidate:   []report.Finding{finding("core.NullDereference", 10)},
			want:        Outcome{TP: 0, FP: 1, FN: 1},
		},
		{
			name: "message differences are ignored",
			groundTruth: []report.Finding{
				{Checker: "core.DivideZero", Message: "Division by zero", Line: 5},
			},
			candidate: []report.Finding{
				{Checker: "core.DivideZero", Message: "Denominator is zero", Line: 5},
			},
			want: Outcome{TP: 1, FP: 0, FN: 0},
		},
		{
			name: "duplicate candidate consumes one ground truth entry",
			groundTruth: []report.Finding{
				finding("core.DivideZero", 5),
			},
			candidate: []report.Finding{
				finding("core.DivideZero", 5),
				finding("core.DivideZero", 5),
			},
			want: Outcome{TP: 1, FP: 1, FN: 0},
		},
		{
			name: "duplicate ground truth entries each need a candidate",
			groundTruth: []report.Finding{
				finding("core.DivideZero", 5),
				finding("core.DivideZero", 5),
			},
			candidate: []report.Finding{
				finding("core.DivideZero", 5),
			},
			want: Outcome{TP: 1, FP: 0, FN: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := New().Match(tt.groundTruth, tt.candidate)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Conservation: every candidate finding lands in TP or FP, every ground
// truth finding in TP or FN.
func TestMatcher_Match_Conservation(t *testing.T) {
	t.Parallel()

	groundTruth := []report.Finding{
		finding("a", 1), finding("a", 2), finding("b", 1), finding("b", 1),
	}
	candidate := []report.Finding{
		finding("a", 1), finding("b", 1), finding("c", 9), finding("a", 5),
	}

	got := New().Match(groundTruth, candidate)

	assert.Equal(t, len(candidate), got.TP+got.FP)
	assert.Equal(t, len(groundTruth), got.TP+got.FN)
}

// Swapping the sides swaps FP and FN but keeps TP.
func TestMatcher_Match_TPSymmetry(t *testing.T) {
	t.Parallel()

	left := []report.Finding{finding("a", 1), finding("b", 2), finding("c", 3)}
	right := []report.Finding{finding("a", 1), finding("d", 4)}

	matcher := New()
	forward := matcher.Match(left, right)
	reverse := matcher.Match(right, left)

	assert.Equal(t, forward.TP, reverse.TP)
	assert.Equal(t, forward.FP, reverse.FN)
	assert.Equal(t, forward.FN, reverse.FP)
}

func TestBucketedLineKey(t *testing.T) {
	t.Parallel()

	t.Run("same bucket matches", func(t *testing.T) {
		t.Parallel()

		matcher := New()
		matcher.Key = BucketedLineKey(5)

		got := matcher.Match(
			[]report.Finding{finding("core.DivideZero", 11)},
			[]report.Finding{finding("core.DivideZero", 14)},
		)
		assert.Equal(t, Outcome{TP: 1}, got)
	})

	t.Run("adjacent buckets do not match", func(t *testing.T) {
		t.Parallel()

		matcher := New()
		matcher.Key = BucketedLineKey(5)

		got := matcher.Match(
			[]report.Finding{finding("core.DivideZero", 15)},
			[]report.Finding{finding("core.DivideZero", 16)},
		)
		assert.Equal(t, Outcome{FP: 1, FN: 1}, got)
	})

	t.Run("width one is exact", func(t *testing.T) {
		t.Parallel()

		matcher := New()
		matcher.Key = BucketedLineKey(1)

		got := matcher.Match(
			[]report.Finding{finding("core.DivideZero", 10)},
			[]report.Finding{finding("core.DivideZero", 11)},
		)
		assert.Equal(t, Outcome{FP: 1, FN: 1}, got)
	})
}

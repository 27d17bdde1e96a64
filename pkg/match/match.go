// Package match implements the per-file matching of candidate findings
// against ground-truth findings.
//
// Two findings are considered the same defect instance when their checker
// and line agree. Messages are deliberately excluded from the key: different
// runs phrase the same diagnostic differently, while checker plus line
// uniquely identifies the instance for this experiment.
package match

import "github.com/yaklabco/saeval/pkg/report"

// Key identifies a defect instance for matching purposes.
type Key struct {
	Checker string
	Line    int
}

// KeyFunc derives the match key from a finding. Replacing it swaps the match
// predicate without touching aggregation; a line-drift tolerant variant can
// be substituted here if the experiment calls for it.
type KeyFunc func(report.Finding) Key

// ExactKey is the default key: exact checker and exact line.
func ExactKey(f report.Finding) Key {
	return Key{Checker: f.Checker, Line: f.Line}
}

// BucketedLineKey returns a key function that quantizes line numbers into
// buckets of the given width, so findings whose lines drifted within one
// bucket still match. Not wired as the default; exact matching remains the
// reference behavior.
func BucketedLineKey(width int) KeyFunc {
	if width <= 1 {
		return ExactKey
	}
	return func(f report.Finding) Key {
		return Key{Checker: f.Checker, Line: (f.Line - 1) / width}
	}
}

// Outcome holds the per-file confusion counts.
//
// Invariants: TP+FN equals the number of ground-truth findings and TP+FP
// equals the number of candidate findings for the file.
type Outcome struct {
	TP int
	FP int
	FN int
}

// Add accumulates another outcome into this one.
func (o *Outcome) Add(other Outcome) {
	o.TP += other.TP
	o.FP += other.FP
	o.FN += other.FN
}

// Matcher matches candidate findings against ground truth.
type Matcher struct {
	// Key derives the match key. Defaults to ExactKey when nil.
	Key KeyFunc
}

// New returns a Matcher using the exact (checker, line) key.
func New() *Matcher {
	return &Matcher{Key: ExactKey}
}

// Match partitions the candidate findings of one file into true and false
// positives against the ground truth, and counts unmatched ground-truth
// findings as false negatives.
//
// Ground-truth occurrences are consumed as a multiset in encounter order:
// first available wins, no ranking. A file absent from one side is expressed
// by passing nil for that side.
func (m *Matcher) Match(groundTruth, candidate []report.Finding) Outcome {
	key := m.Key
	if key == nil {
		key = ExactKey
	}

	remaining := make(map[Key]int, len(groundTruth))
	for _, f := range groundTruth {
		remaining[key(f)]++
	}

	var out Outcome
	for _, f := range candidate {
		k := key(f)
		if remaining[k] > 0 {
			remaining[k]--
			out.TP++
		} else {
			out.FP++
		}
	}

	out.FN = len(groundTruth) - out.TP
	return out
}

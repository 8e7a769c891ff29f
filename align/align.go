// Package align implements local alignment of two sequences with
// affine gap penalties (Smith-Waterman with the Gotoh three-state
// recurrence).
//
// A gap of length k costs open + k*extend. Both penalties are given as
// non-negative numbers and are subtracted from the score; validating
// them is up to the caller.
package align

import (
	"github.com/op/go-logging"
)

// log is the global logging variable.
var log = logging.MustGetLogger("align")

// GapChar is the gap character in aligned sequences.
const GapChar = '-'

// Annotation characters.
const (
	Identity = '|'
	Mismatch = ':'
	NoMatch  = ' '
)

// Scorer scores a pair of symbols. The second return value is false if
// the pair is unknown, such pairs are scored as 0.
type Scorer interface {
	Score(a, b rune) (int, bool)
}

// Result is an optimal local alignment.
type Result struct {
	// Score is the alignment score, it is never negative.
	Score int `json:"score"`
	// Aligned1 and Aligned2 are the aligned subsequences with gaps.
	Aligned1 string `json:"aligned1"`
	Aligned2 string `json:"aligned2"`
	// Annotation has '|' for identical symbols, ':' for different
	// symbols and ' ' for gap columns.
	Annotation string `json:"annotation"`
	// Start1, End1 and Start2, End2 are 0-based half-open symbol
	// offsets of the aligned region in the input sequences.
	Start1 int `json:"start1"`
	End1   int `json:"end1"`
	Start2 int `json:"start2"`
	End2   int `json:"end2"`
	// Misses is the number of grid cells for which the symbol pair was
	// not found in the matrix.
	Misses int `json:"misses"`
}

// Len returns the number of alignment columns.
func (r Result) Len() int {
	return len([]rune(r.Annotation))
}

// Identities returns the number of identical columns.
func (r Result) Identities() (n int) {
	for _, c := range r.Annotation {
		if c == Identity {
			n++
		}
	}
	return
}

// Gaps returns the number of gap columns.
func (r Result) Gaps() (n int) {
	for _, c := range r.Annotation {
		if c == NoMatch {
			n++
		}
	}
	return
}

// Align computes the optimal local alignment of seq1 and seq2.
func Align(seq1, seq2 string, sc Scorer, open, extend int) Result {
	return Fill(seq1, seq2, sc, open, extend).Traceback()
}

// annotate builds the annotation string for two aligned sequences of
// equal length.
func annotate(a1, a2 []rune) string {
	ann := make([]rune, len(a1))
	for i := range a1 {
		switch {
		case a1[i] == GapChar || a2[i] == GapChar:
			ann[i] = NoMatch
		case a1[i] == a2[i]:
			ann[i] = Identity
		default:
			ann[i] = Mismatch
		}
	}
	return string(ann)
}

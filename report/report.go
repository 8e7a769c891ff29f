// Package report formats alignment runs as text and JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/op/go-logging"

	"github.com/loalfind/loalfind/align"
	"github.com/loalfind/loalfind/bio"
)

// log is the global logging variable.
var log = logging.MustGetLogger("report")

// FileName is the name of the report file written into the output
// directory.
const FileName = "alignment_result.txt"

// Run is everything needed to describe a single alignment.
type Run struct {
	Seq1   bio.Sequence
	Seq2   bio.Sequence
	Matrix string
	Open   int
	Extend int
	Result align.Result
}

// Text returns the text report. The alignment lines have the
// characters separated by spaces so the annotation lines up.
func Text(r Run) string {
	return fmt.Sprintf("%s\n%s\n%s\n%s\nMatrix: %q\nGap h: %d\nGap g: %d\n\nScore: %d\n%s\n%s\n%s",
		">"+r.Seq1.Name,
		r.Seq1.Sequence,
		">"+r.Seq2.Name,
		r.Seq2.Sequence,
		r.Matrix,
		r.Open,
		r.Extend,
		r.Result.Score,
		bio.Spaced(r.Result.Aligned1),
		bio.Spaced(r.Result.Annotation),
		bio.Spaced(r.Result.Aligned2),
	)
}

// WriteDir writes (overwrites) FileName in the directory dir and
// returns the file path.
func WriteDir(dir, text string) (string, error) {
	fn := filepath.Join(dir, FileName)
	if err := os.WriteFile(fn, []byte(text), 0644); err != nil {
		return "", err
	}
	log.Debugf("Report written to %s", fn)
	return fn, nil
}

// Summary is storing loalfind run summary information.
type Summary struct {
	// Version stores loalfind version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Seq1 and Seq2 are the sequence names.
	Seq1 string `json:"seq1"`
	Seq2 string `json:"seq2"`
	// Matrix is the substitution matrix file or name.
	Matrix string `json:"matrix"`
	// GapOpen and GapExtend are the gap penalties.
	GapOpen   int `json:"gapOpen"`
	GapExtend int `json:"gapExtend"`
	// Identities and Gaps are column counts of the alignment.
	Identities int `json:"identities"`
	Gaps       int `json:"gaps"`
	// Alignment is the alignment itself.
	Alignment align.Result `json:"alignment"`
	// Cached is true if the result was found in the cache.
	Cached bool `json:"cached,omitempty"`
	// Time is the computations time in seconds.
	Time float64 `json:"time"`
}

// NewSummary creates a summary for a run.
func NewSummary(r Run) *Summary {
	return &Summary{
		Seq1:       r.Seq1.Name,
		Seq2:       r.Seq2.Name,
		Matrix:     r.Matrix,
		GapOpen:    r.Open,
		GapExtend:  r.Extend,
		Identities: r.Result.Identities(),
		Gaps:       r.Result.Gaps(),
		Alignment:  r.Result,
	}
}

// WriteJSON writes the summary to a file.
func (s *Summary) WriteJSON(fn string) error {
	j, err := json.Marshal(s)
	if err != nil {
		return err
	}
	log.Debug(string(j))
	return os.WriteFile(fn, j, 0644)
}

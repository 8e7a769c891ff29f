// Package smatrix reads substitution matrices (e.g. BLOSUM62) used for
// scoring aligned symbol pairs.
package smatrix

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/op/go-logging"
)

// log is the global logging variable.
var log = logging.MustGetLogger("smatrix")

// pair is an ordered pair of symbols.
type pair struct {
	a, b rune
}

// Matrix is a substitution matrix. Only the (row, column) orientation
// read from the file is stored, Score checks both orderings.
type Matrix struct {
	alphabet []rune
	scores   map[pair]int
}

// Score returns the score for a pair of symbols. The second value is
// false if neither (a, b) nor (b, a) is present in the matrix.
func (m *Matrix) Score(a, b rune) (int, bool) {
	if s, ok := m.scores[pair{a, b}]; ok {
		return s, true
	}
	s, ok := m.scores[pair{b, a}]
	return s, ok
}

// Alphabet returns a copy of the header symbols in the file order.
func (m *Matrix) Alphabet() []rune {
	return append([]rune(nil), m.alphabet...)
}

// Len returns the number of stored (row, column) entries.
func (m *Matrix) Len() int {
	return len(m.scores)
}

// Fingerprint returns a hex digest of the stored entries. Matrices
// with the same entries have the same fingerprint regardless of the
// file layout.
func (m *Matrix) Fingerprint() string {
	keys := make([]pair, 0, len(m.scores))
	for k := range m.scores {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})
	h := sha256.New()
	for _, k := range keys {
		fmt.Fprintf(h, "%c%c%d\n", k.a, k.b, m.scores[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Load reads a substitution matrix from a file.
func Load(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		if _, ok := err.(*ParseError); !ok {
			err = &IOError{Path: path, Err: err}
		}
		return nil, err
	}
	log.Debugf("Read matrix %s: %d symbols, %d entries", path, len(m.alphabet), len(m.scores))
	return m, nil
}

// Read parses a substitution matrix. Empty lines and lines starting
// with '#' are skipped. The first remaining line lists the column
// symbols, every following line is a row symbol followed by one
// integer score per column.
func Read(rd io.Reader) (*Matrix, error) {
	m := &Matrix{scores: make(map[pair]int)}
	header := false
	lineNr := 0

	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		lineNr++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '#' {
			continue
		}
		fields := strings.Fields(trimmed)

		if !header {
			for _, f := range fields {
				m.alphabet = append(m.alphabet, firstRune(f))
			}
			header = true
			continue
		}

		row := firstRune(fields[0])
		values := fields[1:]
		if len(values) != len(m.alphabet) {
			return nil, &ParseError{
				Line: lineNr,
				Text: line,
				Msg:  fmt.Sprintf("%d scores for %d columns", len(values), len(m.alphabet)),
			}
		}
		for i, v := range values {
			s, err := strconv.Atoi(v)
			if err != nil {
				return nil, &ParseError{
					Line: lineNr,
					Text: line,
					Msg:  fmt.Sprintf("bad score %q in column %d", v, i+1),
					Err:  err,
				}
			}
			m.scores[pair{row, m.alphabet[i]}] = s
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// firstRune returns the first character of a non-empty token.
func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// Package bio reads sequences in FASTA format.
package bio

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// UnknownName is the name of a sequence read from a file without
// a header line.
const UnknownName = "unknown"

// Sequence is a type which is intended for storing nucleotide or
// protein sequence with it's name.
type Sequence struct {
	Name     string
	Sequence string
}

// Sequences stores multiple sequences.
type Sequences []Sequence

// ParseFasta parses FASTA sequences from a reader. Symbols are kept as
// they are, spaces and carriage returns are removed.
func ParseFasta(rd io.Reader) (seqs Sequences, err error) {
	seqs = make(Sequences, 0, 10)
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			seq := Sequence{Name: strings.TrimSpace(line[1:])}
			seqs = append(seqs, seq)
		} else {
			if len(seqs) == 0 {
				return nil, errors.New("sequence w/o prefix")
			}
			seqs[len(seqs)-1].Sequence += clean(line)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	return
}

// ReadRecord reads the first sequence from a FASTA file. A file
// without header lines is read as a single sequence named
// UnknownName.
func ReadRecord(fn string) (seq Sequence, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return seq, err
	}
	defer f.Close()

	body := new(strings.Builder)
	header := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			if header {
				break
			}
			// lines before the first header are not part of the record
			body.Reset()
			seq.Name = strings.TrimSpace(line[1:])
			header = true
			continue
		}
		body.WriteString(clean(line))
	}
	if err = scanner.Err(); err != nil {
		return seq, err
	}
	if !header {
		seq.Name = UnknownName
	}
	seq.Sequence = body.String()
	return seq, nil
}

// clean removes spaces and carriage returns from a sequence line.
func clean(line string) string {
	return strings.NewReplacer(" ", "", "\t", "", "\r", "").Replace(line)
}

// Wrap inputs a string and wraps it so string length is n characters
// or less.
func Wrap(seq string, n int) (s string) {
	for i := 0; i < len(seq); i += n {
		end := i + n
		if end > len(seq) {
			end = len(seq)
		}
		s += seq[i:end] + "\n"
	}
	return
}

// Spaced returns a string with all the characters separated by
// a space.
func Spaced(s string) string {
	var b strings.Builder
	for i, c := range []rune(s) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// String returns a sequence in FASTA format.
func (seq Sequence) String() (s string) {
	s = ">" + seq.Name + "\n" + Wrap(seq.Sequence, 80)
	return
}

// String returns sequences in FASTA format.
func (seqs Sequences) String() (s string) {
	for _, seq := range seqs {
		s += seq.String()
	}
	if len(s) == 0 {
		return s
	}
	return s[:len(s)-1]
}

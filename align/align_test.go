package align

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/loalfind/loalfind/smatrix"
)

// pairScorer is a symmetric scorer backed by a map.
type pairScorer map[[2]rune]int

func (p pairScorer) Score(a, b rune) (int, bool) {
	if s, ok := p[[2]rune{a, b}]; ok {
		return s, true
	}
	s, ok := p[[2]rune{b, a}]
	return s, ok
}

// identity returns a scorer with match/mismatch scores for the alphabet.
func identity(alphabet string, match, mismatch int) pairScorer {
	p := make(pairScorer)
	for _, a := range alphabet {
		for _, b := range alphabet {
			if a == b {
				p[[2]rune{a, b}] = match
			} else {
				p[[2]rune{a, b}] = mismatch
			}
		}
	}
	return p
}

type alignCase struct {
	seq1, seq2     string
	open, extend   int
	score          int
	a1, a2, ann    string
	start1, start2 int
	end1, end2     int
}

func checkCase(tst *testing.T, sc Scorer, c alignCase) {
	r := Align(c.seq1, c.seq2, sc, c.open, c.extend)
	if r.Score != c.score {
		tst.Errorf("%s/%s: score %d, expected %d", c.seq1, c.seq2, r.Score, c.score)
	}
	if r.Aligned1 != c.a1 || r.Aligned2 != c.a2 || r.Annotation != c.ann {
		tst.Errorf("%s/%s: wrong alignment\n%q\n%q\n%q\nexpected\n%q\n%q\n%q",
			c.seq1, c.seq2, r.Aligned1, r.Annotation, r.Aligned2, c.a1, c.ann, c.a2)
	}
	if r.Start1 != c.start1 || r.Start2 != c.start2 || r.End1 != c.end1 || r.End2 != c.end2 {
		tst.Errorf("%s/%s: wrong coordinates [%d:%d] [%d:%d]", c.seq1, c.seq2,
			r.Start1, r.End1, r.Start2, r.End2)
	}
}

func TestTextbook(tst *testing.T) {
	sc := identity("ACGT", 2, -1)
	checkCase(tst, sc, alignCase{
		seq1: "ACACACTA", seq2: "AGCACACA", open: 1, extend: 1,
		score: 10, a1: "ACACA", a2: "ACACA", ann: "|||||",
		start1: 0, end1: 5, start2: 3, end2: 8,
	})
}

func TestEmpty(tst *testing.T) {
	sc := identity("ACGT", 2, -1)
	for _, c := range [][2]string{{"", "ACGT"}, {"ACGT", ""}, {"", ""}} {
		r := Align(c[0], c[1], sc, 1, 1)
		if r.Score != 0 || r.Aligned1 != "" || r.Aligned2 != "" || r.Annotation != "" {
			tst.Errorf("%q/%q: expected empty alignment, got %+v", c[0], c[1], r)
		}
	}
}

func TestIdentical(tst *testing.T) {
	sc := identity("ACGT", 2, -1)
	seq := "ACGTACGTTGCA"
	r := Align(seq, seq, sc, 3, 1)
	if r.Score != 2*len(seq) {
		tst.Errorf("score %d, expected %d", r.Score, 2*len(seq))
	}
	if r.Aligned1 != seq || r.Aligned2 != seq {
		tst.Error("alignment doesn't span the sequence")
	}
	if r.Annotation != strings.Repeat("|", len(seq)) {
		tst.Errorf("wrong annotation %q", r.Annotation)
	}

	m := smatrix.BLOSUM62()
	r = Align("HEAGAWGHEE", "HEAGAWGHEE", m, 10, 1)
	if r.Score != 62 || r.Identities() != 10 {
		tst.Errorf("BLOSUM62 self alignment: score %d, %d identities", r.Score, r.Identities())
	}
}

func TestGaps(tst *testing.T) {
	sc := identity("ACGTDEFHIK", 2, -1)
	cases := []alignCase{
		{
			seq1: "AAAGGGTTT", seq2: "AAATTT", open: 1, extend: 1,
			score: 8, a1: "AAAGGGTTT", a2: "AAA---TTT", ann: "|||   |||",
			start1: 0, end1: 9, start2: 0, end2: 6,
		},
		{
			seq1: "AAAGGGTTT", seq2: "AAATTT", open: 0, extend: 1,
			score: 9, a1: "AAAGGGTTT", a2: "AAA---TTT", ann: "|||   |||",
			start1: 0, end1: 9, start2: 0, end2: 6,
		},
		{
			seq1: "ACDEFGHIK", seq2: "ACDFGHIK", open: 1, extend: 1,
			score: 14, a1: "ACDEFGHIK", a2: "ACD-FGHIK", ann: "||| |||||",
			start1: 0, end1: 9, start2: 0, end2: 8,
		},
		{
			seq1: "ACDFGHIK", seq2: "ACDEFGHIK", open: 1, extend: 1,
			score: 14, a1: "ACD-FGHIK", a2: "ACDEFGHIK", ann: "||| |||||",
			start1: 0, end1: 8, start2: 0, end2: 9,
		},
	}
	for _, c := range cases {
		checkCase(tst, sc, c)
	}
}

func TestBLOSUM62(tst *testing.T) {
	m := smatrix.BLOSUM62()
	cases := []alignCase{
		{
			seq1: "HEAGAWGHEE", seq2: "PAWHEAE", open: 10, extend: 1,
			score: 17, a1: "HEA", a2: "HEA", ann: "|||",
			start1: 0, end1: 3, start2: 3, end2: 6,
		},
		{
			seq1: "HEAGAWGHEE", seq2: "PAWHEAE", open: 2, extend: 1,
			score: 27, a1: "AWGHE-E", a2: "AW-HEAE", ann: "|| || |",
			start1: 4, end1: 10, start2: 1, end2: 7,
		},
		{
			seq1: "MEEPQSDPSV", seq2: "MEEPQSDLSV", open: 11, extend: 1,
			score: 42, a1: "MEEPQSDPSV", a2: "MEEPQSDLSV", ann: "|||||||:||",
			start1: 0, end1: 10, start2: 0, end2: 10,
		},
	}
	for _, c := range cases {
		checkCase(tst, m, c)
	}
}

func TestNoPositiveScore(tst *testing.T) {
	sc := identity("ACGT", 2, -1)
	checkCase(tst, sc, alignCase{seq1: "A", seq2: "C", open: 1, extend: 1})
	checkCase(tst, sc, alignCase{
		seq1: "ACGT", seq2: "TTTT", open: 5, extend: 5,
		score: 2, a1: "T", a2: "T", ann: "|",
		start1: 3, end1: 4, start2: 0, end2: 1,
	})

	zero := identity("ACGT", 0, 0)
	r := Align("ACGT", "ACGT", zero, 1, 1)
	if r.Score != 0 || r.Len() != 0 {
		tst.Errorf("all-zero matrix: expected empty alignment, got %+v", r)
	}
}

func TestTieBreak(tst *testing.T) {
	// GTTAT/GT-AT scores 6 as well; diagonal continuation wins the tie
	sc := identity("ACGT", 2, -1)
	checkCase(tst, sc, alignCase{
		seq1: "TGTTAT", seq2: "CGTAT", open: 2, extend: 0,
		score: 6, a1: "TAT", a2: "TAT", ann: "|||",
		start1: 3, end1: 6, start2: 2, end2: 5,
	})
}

func TestMisses(tst *testing.T) {
	m, err := smatrix.Read(strings.NewReader("A C G T\nA 2 -1 -1 -1\nC -1 2 -1 -1\nG -1 -1 2 -1\nT -1 -1 -1 2\n"))
	if err != nil {
		tst.Fatal("Error reading matrix:", err)
	}
	checkCase(tst, m, alignCase{
		seq1: "ACZGT", seq2: "ACGT", open: 1, extend: 1,
		score: 6, a1: "ACZGT", a2: "AC-GT", ann: "|| ||",
		start1: 0, end1: 5, start2: 0, end2: 4,
	})
	if r := Align("ACZGT", "ACGT", m, 1, 1); r.Misses != 4 {
		tst.Errorf("expected 4 misses, got %d", r.Misses)
	}
	r := Align("ACGTZZ", "ZZ", m, 1, 1)
	if r.Score != 0 || r.Misses != 12 {
		tst.Errorf("expected score 0 and 12 misses, got %d and %d", r.Score, r.Misses)
	}
}

func TestGrid(tst *testing.T) {
	sc := identity("ACGT", 2, -1)
	g := Fill("ACGT", "CG", sc, 1, 1)
	rows, cols := g.Dims()
	if rows != 5 || cols != 3 {
		tst.Fatalf("wrong dims %dx%d", rows, cols)
	}
	for i := 1; i < rows; i++ {
		if g.Ix(i, 0) != -(1 + i) {
			tst.Errorf("Ix(%d, 0)=%d", i, g.Ix(i, 0))
		}
		if g.M(i, 0) != 0 {
			tst.Errorf("M(%d, 0)=%d", i, g.M(i, 0))
		}
	}
	for j := 1; j < cols; j++ {
		if g.Iy(0, j) != -(1 + j) {
			tst.Errorf("Iy(0, %d)=%d", j, g.Iy(0, j))
		}
	}
	score, i, j := g.Max()
	if score != 4 || i != 3 || j != 2 {
		tst.Errorf("max %d at (%d, %d), expected 4 at (3, 2)", score, i, j)
	}
	if g.M(2, 1) != 2 {
		tst.Errorf("M(2, 1)=%d, expected 2", g.M(2, 1))
	}
}

// rescore computes the score of an alignment from its columns.
func rescore(sc Scorer, r Result, open, extend int) int {
	a1, a2 := []rune(r.Aligned1), []rune(r.Aligned2)
	total := 0
	for k := 0; k < len(a1); {
		switch {
		case a1[k] == GapChar:
			n := 0
			for ; k < len(a1) && a1[k] == GapChar; k++ {
				n++
			}
			total -= open + n*extend
		case a2[k] == GapChar:
			n := 0
			for ; k < len(a2) && a2[k] == GapChar; k++ {
				n++
			}
			total -= open + n*extend
		default:
			s, _ := sc.Score(a1[k], a2[k])
			total += s
			k++
		}
	}
	return total
}

func randomSeq(rnd *rand.Rand, alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rnd.Intn(len(alphabet))]
	}
	return string(b)
}

func TestProperties(tst *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for it := 0; it < 500; it++ {
		sc := make(pairScorer)
		for _, a := range "ACGT" {
			for _, b := range "ACGT" {
				if _, ok := sc.Score(a, b); !ok {
					sc[[2]rune{a, b}] = rnd.Intn(8) - 3
				}
			}
		}
		// N is not in the matrix
		seq1 := randomSeq(rnd, "ACGTN", rnd.Intn(15))
		seq2 := randomSeq(rnd, "ACGTN", rnd.Intn(15))
		open, extend := rnd.Intn(5), rnd.Intn(4)

		r := Align(seq1, seq2, sc, open, extend)

		if r.Score < 0 {
			tst.Fatalf("negative score for %s/%s", seq1, seq2)
		}
		n := len(r.Aligned1)
		if len(r.Aligned2) != n || len(r.Annotation) != n {
			tst.Fatalf("%s/%s: lengths differ: %+v", seq1, seq2, r)
		}
		if strings.Replace(r.Aligned1, "-", "", -1) != seq1[r.Start1:r.End1] ||
			strings.Replace(r.Aligned2, "-", "", -1) != seq2[r.Start2:r.End2] {
			tst.Fatalf("%s/%s: aligned symbols don't match the input: %+v", seq1, seq2, r)
		}
		for k := 0; k < n; k++ {
			c1, c2, a := r.Aligned1[k], r.Aligned2[k], r.Annotation[k]
			switch {
			case c1 == GapChar || c2 == GapChar:
				if a != NoMatch {
					tst.Errorf("%s/%s: gap column %d annotated %q", seq1, seq2, k, a)
				}
			case c1 == c2:
				if a != Identity {
					tst.Errorf("%s/%s: identity column %d annotated %q", seq1, seq2, k, a)
				}
			default:
				if a != Mismatch {
					tst.Errorf("%s/%s: mismatch column %d annotated %q", seq1, seq2, k, a)
				}
			}
		}
		if s := rescore(sc, r, open, extend); s != r.Score {
			tst.Errorf("%s/%s (%d, %d): alignment rescored to %d, reported %d",
				seq1, seq2, open, extend, s, r.Score)
		}
		if r2 := Align(seq1, seq2, sc, open, extend); r2 != r {
			tst.Errorf("%s/%s: results differ between runs", seq1, seq2)
		}
	}
}

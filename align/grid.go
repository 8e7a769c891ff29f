package align

// Cell origins. For M they tell which state the diagonal step came
// from, for Ix and Iy whether the gap was opened (fromM) or extended.
const (
	stop uint8 = iota
	fromM
	fromIx
	fromIy
)

// Grid holds the dynamic programming matrices of a single alignment.
// All matrices have (len(seq1)+1) rows and (len(seq2)+1) columns and
// are stored row by row.
type Grid struct {
	seq1, seq2 []rune
	open       int
	extend     int

	rows, cols int

	// m is the match state, ix ends with a gap in seq2 (consumes seq1),
	// iy ends with a gap in seq1 (consumes seq2).
	m, ix, iy []int
	tm, tx, ty []uint8

	maxScore   int
	maxI, maxJ int
	misses     int
}

// Fill computes the M, Ix and Iy matrices for two sequences. The full
// grid is always filled.
func Fill(seq1, seq2 string, sc Scorer, open, extend int) *Grid {
	g := &Grid{
		seq1:   []rune(seq1),
		seq2:   []rune(seq2),
		open:   open,
		extend: extend,
	}
	g.rows = len(g.seq1) + 1
	g.cols = len(g.seq2) + 1
	size := g.rows * g.cols
	g.m = make([]int, size)
	g.ix = make([]int, size)
	g.iy = make([]int, size)
	g.tm = make([]uint8, size)
	g.tx = make([]uint8, size)
	g.ty = make([]uint8, size)

	for i := 1; i < g.rows; i++ {
		g.ix[g.idx(i, 0)] = -(open + i*extend)
	}
	for j := 1; j < g.cols; j++ {
		g.iy[g.idx(0, j)] = -(open + j*extend)
	}

	for i := 1; i < g.rows; i++ {
		for j := 1; j < g.cols; j++ {
			c := g.idx(i, j)
			diag := g.idx(i-1, j-1)
			up := g.idx(i-1, j)
			left := c - 1

			s, ok := sc.Score(g.seq1[i-1], g.seq2[j-1])
			if !ok {
				s = 0
				g.misses++
			}

			// ties prefer M, then Ix, then Iy
			v, t := g.m[diag]+s, fromM
			if x := g.ix[diag] + s; x > v {
				v, t = x, fromIx
			}
			if y := g.iy[diag] + s; y > v {
				v, t = y, fromIy
			}
			if v < 0 {
				v, t = 0, stop
			}
			g.m[c] = v
			g.tm[c] = t

			g.ix[c], g.tx[c] = g.gap(g.m[up], g.ix[up], fromIx)
			g.iy[c], g.ty[c] = g.gap(g.m[left], g.iy[left], fromIy)

			if v > g.maxScore {
				g.maxScore = v
				g.maxI = i
				g.maxJ = j
			}
		}
	}

	log.Debugf("Filled %dx%d grid, max score %d at (%d, %d), %d lookup misses",
		g.rows, g.cols, g.maxScore, g.maxI, g.maxJ, g.misses)
	return g
}

// gap computes a gap state cell from the M value and the gap state
// value of the predecessor cell. Opening wins ties.
func (g *Grid) gap(m, prev int, extended uint8) (int, uint8) {
	opened := m - g.open - g.extend
	cont := prev - g.extend
	v, t := opened, fromM
	if cont > opened {
		v, t = cont, extended
	}
	if v < 0 {
		v = 0
	}
	return v, t
}

// idx returns the flat index of cell (i, j).
func (g *Grid) idx(i, j int) int {
	return i*g.cols + j
}

// Dims returns the number of rows and columns of the grid.
func (g *Grid) Dims() (rows, cols int) {
	return g.rows, g.cols
}

// M returns the match state value of cell (i, j).
func (g *Grid) M(i, j int) int {
	return g.m[g.idx(i, j)]
}

// Ix returns the value of cell (i, j) for the gap-in-seq2 state.
func (g *Grid) Ix(i, j int) int {
	return g.ix[g.idx(i, j)]
}

// Iy returns the value of cell (i, j) for the gap-in-seq1 state.
func (g *Grid) Iy(i, j int) int {
	return g.iy[g.idx(i, j)]
}

// Max returns the best M value and its cell. The first cell in row
// major order wins ties. (0, 0) is returned if no cell is positive.
func (g *Grid) Max() (score, i, j int) {
	return g.maxScore, g.maxI, g.maxJ
}

// Misses returns the number of cells scored with an unknown pair.
func (g *Grid) Misses() int {
	return g.misses
}

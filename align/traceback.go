package align

// Traceback reconstructs the alignment ending in the best M cell.
func (g *Grid) Traceback() Result {
	var a1, a2 []rune

	i, j := g.maxI, g.maxJ
	state := fromM

walk:
	for i > 0 && j > 0 {
		c := g.idx(i, j)
		switch state {
		case fromM:
			if g.tm[c] == stop {
				break walk
			}
			a1 = append(a1, g.seq1[i-1])
			a2 = append(a2, g.seq2[j-1])
			state = g.tm[c]
			i--
			j--
		case fromIx:
			if g.ix[c] == 0 {
				break walk
			}
			a1 = append(a1, g.seq1[i-1])
			a2 = append(a2, GapChar)
			if g.tx[c] == fromM {
				state = fromM
			}
			i--
		case fromIy:
			if g.iy[c] == 0 {
				break walk
			}
			a1 = append(a1, GapChar)
			a2 = append(a2, g.seq2[j-1])
			if g.ty[c] == fromM {
				state = fromM
			}
			j--
		}
	}

	reverse(a1)
	reverse(a2)

	return Result{
		Score:      g.maxScore,
		Aligned1:   string(a1),
		Aligned2:   string(a2),
		Annotation: annotate(a1, a2),
		Start1:     i,
		End1:       g.maxI,
		Start2:     j,
		End2:       g.maxJ,
		Misses:     g.misses,
	}
}

func reverse(s []rune) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Package dotplot draws the match state scores of an alignment as a
// heat map with the traceback path on top.
package dotplot

import (
	"errors"
	"image/color"

	"github.com/gonum/matrix/mat64"
	"github.com/op/go-logging"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/loalfind/loalfind/align"
)

// log is the global logging variable.
var log = logging.MustGetLogger("dotplot")

// nColors is the number of heat map colors.
const nColors = 12

// scoreGrid adapts a score matrix (rows are seq1 positions, columns
// are seq2 positions) to plotter.GridXYZ.
type scoreGrid struct {
	m *mat64.Dense
}

func (g scoreGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g scoreGrid) Z(c, r int) float64 {
	return g.m.At(r, c)
}

func (g scoreGrid) X(c int) float64 {
	return float64(c)
}

func (g scoreGrid) Y(r int) float64 {
	return float64(r)
}

// Scores copies the match state matrix of a grid.
func Scores(g *align.Grid) *mat64.Dense {
	rows, cols := g.Dims()
	m := mat64.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, float64(g.M(i, j)))
		}
	}
	return m
}

// Path returns grid coordinates (x is the seq2 position, y is the seq1
// position) of the cells visited by an alignment.
func Path(res align.Result) plotter.XYs {
	a1, a2 := []rune(res.Aligned1), []rune(res.Aligned2)
	pts := make(plotter.XYs, 0, len(a1)+1)
	i, j := res.Start1, res.Start2
	pts = append(pts, plotter.XY{X: float64(j), Y: float64(i)})
	for k := range a1 {
		if a1[k] != align.GapChar {
			i++
		}
		if a2[k] != align.GapChar {
			j++
		}
		pts = append(pts, plotter.XY{X: float64(j), Y: float64(i)})
	}
	return pts
}

// Plot creates a heat map of the match state scores of g with the
// alignment path.
func Plot(g *align.Grid, res align.Result) (*plot.Plot, error) {
	rows, cols := g.Dims()
	if rows < 2 || cols < 2 {
		return nil, errors.New("empty sequence, nothing to plot")
	}

	hm := plotter.NewHeatMap(scoreGrid{Scores(g)}, palette.Heat(nColors, 1))
	if hm.Max == hm.Min {
		hm.Max = hm.Min + 1
	}

	p := plot.New()
	p.Title.Text = "Local alignment"
	p.X.Label.Text = "sequence 2"
	p.Y.Label.Text = "sequence 1"
	p.Add(hm)

	if res.Len() > 0 {
		l, err := plotter.NewLine(Path(res))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = color.Black
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
	}
	return p, nil
}

// Save writes the plot to a file, the format is defined by the file
// extension (e.g. png, svg or pdf).
func Save(g *align.Grid, res align.Result, fn string, w, h vg.Length) error {
	p, err := Plot(g, res)
	if err != nil {
		return err
	}
	if err := p.Save(w, h, fn); err != nil {
		return err
	}
	log.Infof("Dot plot saved to %s", fn)
	return nil
}

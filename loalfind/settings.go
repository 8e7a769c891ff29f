package main

import (
	"errors"

	"gonum.org/v1/plot/vg"

	"github.com/loalfind/loalfind/align"
	"github.com/loalfind/loalfind/bio"
	"github.com/loalfind/loalfind/cache"
	"github.com/loalfind/loalfind/dotplot"
	"github.com/loalfind/loalfind/report"
	"github.com/loalfind/loalfind/smatrix"
)

// plotSize is the width and height of the dot plot.
const plotSize = 6 * vg.Inch

// alignSettings stores settings for a single alignment run.
type alignSettings struct {
	seq1F   string
	seq2F   string
	matrixF string

	open   int
	extend int

	cacheF string
	plotF  string
}

// newAlignSettings initializes alignSettings from global
// variables (command-line arguments).
func newAlignSettings() *alignSettings {
	return &alignSettings{
		seq1F:   *seq1FileName,
		seq2F:   *seq2FileName,
		matrixF: *matrixFileName,

		open:   *gapOpen,
		extend: *gapExtend,

		cacheF: *cacheF,
		plotF:  *plotF,
	}
}

// validate checks the parameters the aligner doesn't check itself.
func (as *alignSettings) validate() error {
	if as.open < 0 {
		return errors.New("gap open penalty should be non-negative")
	}
	if as.extend < 0 {
		return errors.New("gap extension penalty should be non-negative")
	}
	return nil
}

// matrix loads the substitution matrix and returns it with its name.
func (as *alignSettings) matrix() (*smatrix.Matrix, string, error) {
	if as.matrixF == "" {
		log.Info("Using built-in BLOSUM62 matrix")
		return smatrix.BLOSUM62(), smatrix.BLOSUM62Name, nil
	}
	m, err := smatrix.Load(as.matrixF)
	if err != nil {
		return nil, "", err
	}
	log.Infof("Matrix %s, %d symbols", as.matrixF, len(m.Alphabet()))
	return m, as.matrixF, nil
}

// run reads the input, aligns the sequences and returns the run
// description. The second value is true if the result came from the
// cache.
func (as *alignSettings) run() (*report.Run, bool, error) {
	seq1, err := bio.ReadRecord(as.seq1F)
	if err != nil {
		return nil, false, err
	}
	seq2, err := bio.ReadRecord(as.seq2F)
	if err != nil {
		return nil, false, err
	}
	log.Infof("Sequence 1: %s, %d symbols", seq1.Name, len([]rune(seq1.Sequence)))
	log.Infof("Sequence 2: %s, %d symbols", seq2.Name, len([]rune(seq2.Sequence)))

	m, name, err := as.matrix()
	if err != nil {
		return nil, false, err
	}

	run := &report.Run{
		Seq1:   seq1,
		Seq2:   seq2,
		Matrix: name,
		Open:   as.open,
		Extend: as.extend,
	}

	store := cache.New(nil)
	if as.cacheF != "" {
		store, err = cache.Open(as.cacheF)
		if err != nil {
			return nil, false, err
		}
	}
	defer store.Close()

	key := cache.Key(seq1.Sequence, seq2.Sequence, m.Fingerprint(), as.open, as.extend)
	// the grid is needed for the plot, so the cache is only used without it
	if as.plotF == "" {
		res, err := store.Get(key)
		if err != nil {
			log.Warning("Error reading cache:", err)
		}
		if res != nil {
			run.Result = *res
			return run, true, nil
		}
	}

	g := align.Fill(seq1.Sequence, seq2.Sequence, m, as.open, as.extend)
	run.Result = g.Traceback()
	if run.Result.Misses > 0 {
		log.Infof("%d symbol pairs were not found in the matrix and scored 0", run.Result.Misses)
	}
	log.Infof("Score: %d, alignment length: %d", run.Result.Score, run.Result.Len())

	if err := store.Put(key, &run.Result); err != nil {
		log.Warning("Error saving to cache:", err)
	}

	if as.plotF != "" {
		if err := dotplot.Save(g, run.Result, as.plotF, plotSize, plotSize); err != nil {
			log.Error("Error creating dot plot:", err)
		}
	}

	return run, false, nil
}

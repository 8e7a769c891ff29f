/*

Loalfind finds the best local alignment of two sequences using
affine gap penalties (Smith-Waterman-Gotoh) and a substitution matrix.

The basic usage of loalfind looks like this:

	loalfind seq1.fst seq2.fst

, this will align the first records of the two files using BLOSUM62,
gap open penalty 1 and gap extension penalty 1.

You can change the matrix and the penalties, and save the report:

	loalfind --matrix dna.mat --open 10 --extend 1 --out results seq1.fst seq2.fst

To see all the options run:

	loalfind -h

*/
package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"github.com/loalfind/loalfind/report"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("loalfind")
var formatter = logging.MustStringFormatter(`%{message}`)

// loggers are all the package loggers controlled by --loglevel.
var loggers = []string{"loalfind", "smatrix", "align", "cache", "dotplot", "report"}

// command-line options
var (
	// application
	app = kingpin.New("loalfind", "local alignment finder (Smith-Waterman with affine gaps)").Version(version)

	// input sequences
	seq1FileName = app.Arg("seq1", "first sequence (FASTA)").Required().ExistingFile()
	seq2FileName = app.Arg("seq2", "second sequence (FASTA)").Required().ExistingFile()

	// scoring
	matrixFileName = app.Flag("matrix", "substitution matrix file (BLOSUM62 by default)").Short('m').ExistingFile()
	gapOpen        = app.Flag("open", "gap open penalty (h)").Default("1").Int()
	gapExtend      = app.Flag("extend", "gap extension penalty (g)").Default("1").Int()

	// input/output
	outDir   = app.Flag("out", "write "+report.FileName+" to the directory").ExistingDir()
	jsonF    = app.Flag("json", "write json output to a file").String()
	cacheF   = app.Flag("cache", "cache alignment results in a database file").String()
	plotF    = app.Flag("plot", "write dot plot of the match scores (png, svg, pdf)").String()
	quiet    = app.Flag("quiet", "don't print the report to stdout").Short('q').Bool()
	outLogF  = app.Flag("log", "write log to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")

	// technical
	cpuProfile = app.Flag("cpuprofile", "write cpu profile to file").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	for _, module := range loggers {
		logging.SetLevel(level, module)
	}

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	startTime := time.Now()

	as := newAlignSettings()
	if err := as.validate(); err != nil {
		log.Fatal(err)
	}
	run, cached, err := as.run()
	if err != nil {
		log.Fatal(err)
	}

	text := report.Text(*run)
	if !*quiet {
		fmt.Println(text)
	}

	if *outDir != "" {
		fn, err := report.WriteDir(*outDir, text)
		if err != nil {
			log.Error("Error writing report:", err)
		} else {
			log.Noticef("Results saved in file %s", fn)
		}
	}

	deltaT := time.Since(startTime)
	log.Noticef("Running time: %v", deltaT)

	// output summary in json format
	if *jsonF != "" {
		summary := report.NewSummary(*run)
		summary.Version = version
		summary.CommandLine = os.Args
		summary.Cached = cached
		summary.Time = deltaT.Seconds()
		if err := summary.WriteJSON(*jsonF); err != nil {
			log.Error("Error creating json output file:", err)
		}
	}
}

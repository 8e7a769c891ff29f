package smatrix

import (
	_ "embed"
	"strings"
)

// BLOSUM62Name is the name under which the embedded matrix is reported.
const BLOSUM62Name = "BLOSUM62"

//go:embed blosum62.txt
var blosum62 string

// BLOSUM62 returns the NCBI BLOSUM62 matrix.
func BLOSUM62() *Matrix {
	m, err := Read(strings.NewReader(blosum62))
	if err != nil {
		// the embedded file is part of the source tree
		panic(err)
	}
	return m
}

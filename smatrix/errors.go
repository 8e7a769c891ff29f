package smatrix

import "fmt"

// IOError is returned when a matrix file cannot be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading matrix %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError is returned for a malformed data row. Line is 1-based and
// counts comment and empty lines; Text is the line as read.
type ParseError struct {
	Line int
	Text string
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

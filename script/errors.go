package script

import (
	"errors"
	"fmt"
)

var (
	// ErrIsDirectory is returned by DoSource when fname names a directory.
	ErrIsDirectory = errors.New("script: is a directory")
	// ErrCannotOpen is returned when the file (and, if checkOther was
	// set, its .↔_ swapped variant) could not be opened for reading.
	ErrCannotOpen = errors.New("script: cannot open file")
	// ErrNoFileName is returned when an operation requires a file name
	// that was never supplied (spec.md §7 NoFileName).
	ErrNoFileName = errors.New("script: no file name")
	// ErrBreakpointNotFound is returned by BreakpointTable.Delete when
	// the given spec matches nothing (spec.md §7 BreakpointNotFound).
	ErrBreakpointNotFound = errors.New("script: breakpoint not found")
	// ErrFinish is the control-flow sentinel a LineGetter returns to
	// unwind :finish up to the enclosing script boundary (spec.md §9
	// "Exceptions for :finish").
	ErrFinish = errors.New("script: finish")
)

// SourceError wraps a failure encountered while sourcing fname, the
// typed-error shape spec.md §7/§1 Ambient Stack asks every package to
// use (regex.CompileError, operator.OpError's siblings).
type SourceError struct {
	Fname string
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("script: sourcing %q: %v", e.Fname, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

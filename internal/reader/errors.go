package reader

import (
	"errors"
	"fmt"
)

// ErrFatal is matched by every error that aborts a read.
var ErrFatal = errors.New("fatal object file error")

// FatalKind classifies fatal read errors.
type FatalKind int

const (
	ErrHeader FatalKind = iota
	ErrCounts
	ErrIndexRange
	ErrTrisAlignment
)

func (k FatalKind) String() string {
	switch k {
	case ErrHeader:
		return "header"
	case ErrCounts:
		return "counts"
	case ErrIndexRange:
		return "index range"
	case ErrTrisAlignment:
		return "tris alignment"
	}
	return "unknown"
}

// FatalError aborts a read. Line is the 1-based line of the offending directive,
// or 0 when the problem is only detected at the end of a section.
type FatalError struct {
	Kind FatalKind
	Line int
	Msg  string
}

func (e *FatalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s error at line %d: %s", e.Kind, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
}

// Unwrap lets errors.Is match ErrFatal.
func (e *FatalError) Unwrap() error { return ErrFatal }

func fatalf(kind FatalKind, line int, format string, args ...any) *FatalError {
	return &FatalError{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}

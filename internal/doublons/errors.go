package doublons

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUsage is a bad invocation (wrong argument count, invalid flag value).
	KindUsage Kind = iota + 1
	// KindTraversal is a directory that cannot be opened or read.
	KindTraversal
	// KindStat is an entry whose metadata cannot be retrieved.
	KindStat
	// KindIO is a file whose bytes cannot be opened or read.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage error"
	case KindTraversal:
		return "traversal error"
	case KindStat:
		return "stat error"
	case KindIO:
		return "io error"
	default:
		return "error"
	}
}

// Error is a failure tagged with its Kind and the path involved.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Op describes what was being done, e.g. "reading directory".
	Op string
	// Path is the file or directory involved, if any.
	Path string
	// Err is the underlying system error, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + ": " + e.Op

	if e.Path != "" {
		msg += fmt.Sprintf(" %q", e.Path)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UsageError returns a KindUsage error with a formatted message.
func UsageError(format string, args ...any) error {
	return &Error{Kind: KindUsage, Op: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

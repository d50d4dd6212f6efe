package engine

import "errors"

// ErrorKind classifies why an operation failed as a whole.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	SourceInvalid
	SameDirectory
	DestinationInsideSource
	DestinationUnwritable
	SourceUnreadable
	Busy
)

var kindNames = [...]string{
	KindNone:                "none",
	SourceInvalid:           "SourceInvalid",
	SameDirectory:           "SameDirectory",
	DestinationInsideSource: "DestinationInsideSource",
	DestinationUnwritable:   "DestinationUnwritable",
	SourceUnreadable:        "SourceUnreadable",
	Busy:                    "Busy",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Sentinel errors, one per fatal ErrorKind. Result.Err wraps them.
var (
	ErrSourceInvalid           = errors.New("source is not an existing directory")
	ErrSameDirectory           = errors.New("source and destination are the same directory")
	ErrDestinationInsideSource = errors.New("destination is inside the source tree")
	ErrDestinationUnwritable   = errors.New("cannot create destination")
	ErrSourceUnreadable        = errors.New("cannot read source directory")
	ErrBusy                    = errors.New("an operation is already running on this engine")
)

// Status is the terminal state of an operation.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// fatalError pairs a sentinel-wrapping error with its kind.
type fatalError struct {
	err  error
	kind ErrorKind
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

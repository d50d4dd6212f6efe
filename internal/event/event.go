package event

import (
	"fmt"
	"time"
)

// Level is the severity shown next to an event.
type Level int

const (
	LevelInfo Level = iota + 1
	LevelWarn
	LevelSkip
	LevelError
)

var levelNames = [...]string{
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelSkip:  "SKIP",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if l > 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// Type identifies the kind of event.
type Type int

const (
	OperationStarted Type = iota + 1
	DestinationNotEmpty
	Progress
	EntrySkipped
	EntryFailed
	VerifyStarted
	VerifyFailed
	VerifyComplete
	OperationCompleted
	OperationCancelled
	OperationFailed
)

var typeNames = [...]string{
	OperationStarted:    "OperationStarted",
	DestinationNotEmpty: "DestinationNotEmpty",
	Progress:            "Progress",
	EntrySkipped:        "EntrySkipped",
	EntryFailed:         "EntryFailed",
	VerifyStarted:       "VerifyStarted",
	VerifyFailed:        "VerifyFailed",
	VerifyComplete:      "VerifyComplete",
	OperationCompleted:  "OperationCompleted",
	OperationCancelled:  "OperationCancelled",
	OperationFailed:     "OperationFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event is a single entry in an operation's log.
type Event struct {
	Timestamp time.Time
	Err       error
	Message   string
	Path      string // relative to the source root
	Count     int64  // files copied so far (Progress) or total (OperationCompleted)
	Type      Type
	Level     Level
}

// String renders the event as a log line: "[15:04:05] LEVEL message".
func (e Event) String() string {
	return fmt.Sprintf("[%s] %-5s %s", e.Timestamp.Format(time.TimeOnly), e.Level, e.Message)
}

// Func receives events in processing order.
type Func func(Event)

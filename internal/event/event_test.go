package event

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		want string
		typ  Type
	}{
		{want: "OperationStarted", typ: OperationStarted},
		{want: "DestinationNotEmpty", typ: DestinationNotEmpty},
		{want: "Progress", typ: Progress},
		{want: "EntrySkipped", typ: EntrySkipped},
		{want: "EntryFailed", typ: EntryFailed},
		{want: "VerifyStarted", typ: VerifyStarted},
		{want: "VerifyFailed", typ: VerifyFailed},
		{want: "VerifyComplete", typ: VerifyComplete},
		{want: "OperationCompleted", typ: OperationCompleted},
		{want: "OperationCancelled", typ: OperationCancelled},
		{want: "OperationFailed", typ: OperationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeStringUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", Type(999).String())
	assert.Equal(t, "Unknown", Type(0).String())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "SKIP", LevelSkip.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(0).String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestEventZeroValue(t *testing.T) {
	var e Event
	assert.Equal(t, Type(0), e.Type)
	assert.True(t, e.Timestamp.IsZero())
	assert.Empty(t, e.Path)
	assert.Empty(t, e.Message)
	assert.Zero(t, e.Count)
	require.NoError(t, e.Err)
}

func TestEventString(t *testing.T) {
	e := Event{
		Type:      EntryFailed,
		Level:     LevelWarn,
		Timestamp: time.Date(2024, 5, 1, 9, 3, 7, 0, time.UTC),
		Path:      "src/locked.txt",
		Message:   "Failed: src/locked.txt: permission denied",
		Err:       errors.New("permission denied"),
	}
	assert.Equal(t, "[09:03:07] WARN  Failed: src/locked.txt: permission denied", e.String())
}

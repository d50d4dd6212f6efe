package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/repoprep/internal/config"
	"github.com/bamsammich/repoprep/internal/event"
)

func feed(evs ...event.Event) <-chan event.Event {
	ch := make(chan event.Event, len(evs))
	for _, e := range evs {
		ch <- e
	}
	close(ch)
	return ch
}

var at = time.Date(2024, 3, 1, 9, 3, 7, 0, time.UTC)

func TestPlainPresenterLines(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(Config{Writer: &out, Theme: DefaultTheme()})

	err := p.Run(feed(
		event.Event{Timestamp: at, Type: event.OperationStarted, Level: event.LevelInfo, Message: "Copying a to b"},
		event.Event{Timestamp: at, Type: event.EntryFailed, Level: event.LevelWarn, Message: "Failed: x.txt: permission denied"},
		event.Event{Timestamp: at, Type: event.OperationCompleted, Level: event.LevelInfo, Message: "Operation completed: 1 files copied, 0 items skipped, 0 directories created"},
	))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "[09:03:07] INFO  Copying a to b", lines[0])
	assert.Equal(t, "[09:03:07] WARN  Failed: x.txt: permission denied", lines[1])
}

func TestPlainPresenterSkipsNeedVerbose(t *testing.T) {
	skip := event.Event{Timestamp: at, Type: event.EntrySkipped, Level: event.LevelSkip, Message: "Skipped: .git (excluded directory)"}

	var quietOut bytes.Buffer
	require.NoError(t, NewPresenter(Config{Writer: &quietOut}).Run(feed(skip)))
	assert.Empty(t, quietOut.String())

	var verboseOut bytes.Buffer
	require.NoError(t, NewPresenter(Config{Writer: &verboseOut, Verbose: true}).Run(feed(skip)))
	assert.Equal(t, "[09:03:07] SKIP  Skipped: .git (excluded directory)\n", verboseOut.String())
}

func TestPlainPresenterNoProgress(t *testing.T) {
	prog := event.Event{Timestamp: at, Type: event.Progress, Level: event.LevelInfo, Message: "Copied 100 files..."}

	var out bytes.Buffer
	require.NoError(t, NewPresenter(Config{Writer: &out, NoProgress: true}).Run(feed(prog)))
	assert.Empty(t, out.String())

	out.Reset()
	require.NoError(t, NewPresenter(Config{Writer: &out}).Run(feed(prog)))
	assert.Contains(t, out.String(), "Copied 100 files...")
}

func TestPlainPresenterRedrawsProgressOnTerminal(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(Config{Writer: &out, IsTTY: true})

	require.NoError(t, p.Run(feed(
		event.Event{Timestamp: at, Type: event.Progress, Level: event.LevelInfo, Message: "Copied 100 files..."},
		event.Event{Timestamp: at, Type: event.Progress, Level: event.LevelInfo, Message: "Copied 200 files..."},
		event.Event{Timestamp: at, Type: event.EntryFailed, Level: event.LevelWarn, Message: "Failed: x.txt: permission denied"},
		event.Event{Timestamp: at, Type: event.Progress, Level: event.LevelInfo, Message: "Copied 300 files..."},
	)))

	want := "[09:03:07] INFO  Copied 100 files..." +
		clearLine + "[09:03:07] INFO  Copied 200 files..." +
		clearLine + "[09:03:07] WARN  Failed: x.txt: permission denied\n" +
		"[09:03:07] INFO  Copied 300 files...\n"
	assert.Equal(t, want, out.String())
}

func TestPlainPresenterScrollsWhenPiped(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(Config{Writer: &out})

	require.NoError(t, p.Run(feed(
		event.Event{Timestamp: at, Type: event.Progress, Level: event.LevelInfo, Message: "Copied 100 files..."},
		event.Event{Timestamp: at, Type: event.Progress, Level: event.LevelInfo, Message: "Copied 200 files..."},
	)))

	assert.NotContains(t, out.String(), "\r")
	assert.Equal(t, 2, strings.Count(out.String(), "\n"))
}

func TestQuietPresenterOnlyErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPresenter(Config{Writer: &out, ErrWriter: &errOut, Quiet: true})

	require.NoError(t, p.Run(feed(
		event.Event{Type: event.Progress, Level: event.LevelInfo, Message: "Copied 100 files..."},
		event.Event{Type: event.OperationFailed, Level: event.LevelError, Message: "Error: cannot read source directory"},
	)))

	assert.Empty(t, out.String())
	assert.Equal(t, "Error: cannot read source directory\n", errOut.String())
	assert.Empty(t, p.Summary(statsZero()))
}

func TestApplyTheme(t *testing.T) {
	warn := "#ff0000"
	empty := ""
	th := ApplyTheme(config.ThemeConfig{Warn: &warn, Info: &empty})

	assert.Equal(t, "#ff0000", string(th.Warn))
	assert.Equal(t, DefaultTheme().Info, th.Info)
	assert.Equal(t, DefaultTheme().Error, th.Error)
}

package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bamsammich/repoprep/internal/event"
	"github.com/bamsammich/repoprep/internal/stats"
)

// clearLine returns the cursor to column 0 and erases the line.
const clearLine = "\r\033[2K"

// plainPresenter prints one line per event as "[15:04:05] LEVEL message".
// On a terminal, each Progress line is redrawn in place by the next line
// instead of scrolling.
type plainPresenter struct {
	w          io.Writer
	styles     styles
	verbose    bool
	noProgress bool
	live       bool
	onProgress bool // cursor sits at the end of an unterminated Progress line
}

func (p *plainPresenter) Run(events <-chan event.Event) error {
	for ev := range events {
		if !p.shows(ev) {
			continue
		}
		if err := p.write(ev); err != nil {
			return err
		}
	}
	if p.onProgress {
		p.onProgress = false
		_, err := fmt.Fprintln(p.w)
		return err
	}
	return nil
}

func (p *plainPresenter) write(ev event.Event) error {
	line := p.render(ev)
	if !p.live {
		_, err := fmt.Fprintln(p.w, line)
		return err
	}

	if p.onProgress {
		line = clearLine + line
	}
	p.onProgress = ev.Type == event.Progress
	if p.onProgress {
		_, err := fmt.Fprint(p.w, line)
		return err
	}
	_, err := fmt.Fprintln(p.w, line)
	return err
}

func (p *plainPresenter) shows(ev event.Event) bool {
	switch ev.Type {
	case event.EntrySkipped:
		return p.verbose
	case event.Progress:
		return !p.noProgress
	default:
		return true
	}
}

func (p *plainPresenter) render(ev event.Event) string {
	ts := p.styles.time.Render("[" + ev.Timestamp.Format(time.TimeOnly) + "]")
	name := ev.Level.String()
	tag := p.styles.level(ev.Level).Render(name)
	if pad := 5 - len(name); pad > 0 {
		tag += strings.Repeat(" ", pad)
	}
	return ts + " " + tag + " " + ev.Message
}

func (p *plainPresenter) Summary(snap stats.Snapshot) string {
	return CompletionSummary(snap)
}

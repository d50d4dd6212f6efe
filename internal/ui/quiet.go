package ui

import (
	"fmt"
	"io"

	"github.com/bamsammich/repoprep/internal/event"
	"github.com/bamsammich/repoprep/internal/stats"
)

// quietPresenter drains events and prints only ERROR-level messages.
type quietPresenter struct {
	errW io.Writer
}

func (p *quietPresenter) Run(events <-chan event.Event) error {
	for ev := range events {
		if ev.Level != event.LevelError || p.errW == nil {
			continue
		}
		if _, err := fmt.Fprintln(p.errW, ev.Message); err != nil {
			return err
		}
	}
	return nil
}

func (p *quietPresenter) Summary(stats.Snapshot) string {
	return ""
}

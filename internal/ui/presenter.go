package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/repoprep/internal/event"
	"github.com/bamsammich/repoprep/internal/stats"
)

// Presenter consumes events and displays progress.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan event.Event) error
	// Summary returns the final summary line.
	Summary(snap stats.Snapshot) string
}

// Config configures a Presenter.
type Config struct {
	Writer     io.Writer
	ErrWriter  io.Writer
	Theme      Theme
	Quiet      bool
	Verbose    bool // also show skipped entries
	NoProgress bool // hide periodic progress lines
	IsTTY      bool // Writer is a terminal; progress is redrawn in place
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet {
		return &quietPresenter{errW: cfg.ErrWriter}
	}
	return &plainPresenter{
		w:          cfg.Writer,
		styles:     newStyles(lipgloss.NewRenderer(cfg.Writer), cfg.Theme),
		verbose:    cfg.Verbose,
		noProgress: cfg.NoProgress,
		live:       cfg.IsTTY,
	}
}

package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/repoprep/internal/config"
	"github.com/bamsammich/repoprep/internal/event"
)

// Theme holds the colors used for event level tags.
type Theme struct {
	Info  lipgloss.Color
	Warn  lipgloss.Color
	Skip  lipgloss.Color
	Error lipgloss.Color
	Muted lipgloss.Color
}

// DefaultTheme is the Catppuccin Mocha palette.
func DefaultTheme() Theme {
	return Theme{
		Info:  lipgloss.Color("#89b4fa"),
		Warn:  lipgloss.Color("#f9e2af"),
		Skip:  lipgloss.Color("#5a6278"),
		Error: lipgloss.Color("#f38ba8"),
		Muted: lipgloss.Color("#5a6278"),
	}
}

// ApplyTheme overrides default colors with any set in cfg.
func ApplyTheme(cfg config.ThemeConfig) Theme {
	t := DefaultTheme()
	set := func(dst *lipgloss.Color, v *string) {
		if v != nil && *v != "" {
			*dst = lipgloss.Color(*v)
		}
	}
	set(&t.Info, cfg.Info)
	set(&t.Warn, cfg.Warn)
	set(&t.Skip, cfg.Skip)
	set(&t.Error, cfg.Error)
	set(&t.Muted, cfg.Muted)
	return t
}

// styles are the rendered forms of a Theme for one output.
type styles struct {
	levels map[event.Level]lipgloss.Style
	time   lipgloss.Style
	plain  lipgloss.Style
}

// newStyles binds t to r. The renderer decides whether color is emitted,
// so non-terminal writers get plain text.
func newStyles(r *lipgloss.Renderer, t Theme) styles {
	return styles{
		levels: map[event.Level]lipgloss.Style{
			event.LevelInfo:  r.NewStyle().Foreground(t.Info),
			event.LevelWarn:  r.NewStyle().Foreground(t.Warn).Bold(true),
			event.LevelSkip:  r.NewStyle().Foreground(t.Skip),
			event.LevelError: r.NewStyle().Foreground(t.Error).Bold(true),
		},
		time:  r.NewStyle().Foreground(t.Muted),
		plain: r.NewStyle(),
	}
}

func (s styles) level(l event.Level) lipgloss.Style {
	if st, ok := s.levels[l]; ok {
		return st
	}
	return s.plain
}

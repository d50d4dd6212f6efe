package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bamsammich/repoprep/internal/event"
	"github.com/bamsammich/repoprep/internal/ui"
)

// setupLogging installs the default slog logger: text on stderr at a level
// chosen by -v/-q, plus a debug-level JSON log when logFile is set. The
// returned func closes the log file.
func setupLogging(verbose, quiet bool, logFile string) (func(), error) {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	} else if !quiet {
		logLevel = slog.LevelInfo
	}
	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	var logHandler slog.Handler = textHandler
	closeFn := func() {}
	if logFile != "" {
		lf, err := os.Create(logFile)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		closeFn = func() { _ = lf.Close() }
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	slog.SetDefault(slog.New(logHandler))
	return closeFn, nil
}

// teeEvents writes a structured record for each event before forwarding it.
// The returned channel closes after in does.
func teeEvents(in <-chan event.Event) <-chan event.Event {
	out := make(chan event.Event, cap(in))
	go func() {
		defer close(out)
		for ev := range in {
			slog.LogAttrs(context.Background(), slog.LevelDebug, "repoprep.event", eventAttrs(ev)...)
			out <- ev
		}
	}()
	return out
}

func eventAttrs(ev event.Event) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("type", ev.Type.String()),
		slog.String("level", ev.Level.String()),
		slog.String("path", ev.Path),
		slog.Int64("count", ev.Count),
		slog.String("message", ev.Message),
	}
	if ev.Err != nil {
		attrs = append(attrs, slog.String("error", ev.Err.Error()))
	}
	return attrs
}

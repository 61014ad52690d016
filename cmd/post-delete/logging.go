package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
)

// newLogger builds the CLI logger: charmbracelet/log for text output, the
// slog JSON handler otherwise.
func newLogger(level, format string, w io.Writer) logger.Logger {
	if w == nil {
		w = os.Stderr
	}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel(level)})
	} else {
		handler = textHandler(level, w)
	}
	return logger.NewSlog(slog.New(handler))
}

func textHandler(level string, w io.Writer) slog.Handler {
	reportTimestamp := false
	lvl := log.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		reportTimestamp = true
		lvl = log.DebugLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: reportTimestamp,
		Level:           lvl,
		Prefix:          "post-delete",
	})
}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

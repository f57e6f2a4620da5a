package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format format de sortie des logs
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseLevel convertit "debug", "info", "warn", "error" en niveau slog (info par défaut)
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// New crée un logger structuré écrivant sur w (stderr si nil)
func New(level string, format Format, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", "jnmoveis")
}

// Discard logger muet pour les tests
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

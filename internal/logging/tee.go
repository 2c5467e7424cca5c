package logging

import (
	"context"
	"log/slog"
)

// teeHandler sends every record to the console handler and to the
// --log-file JSON handler. Each side keeps its own level.
type teeHandler struct {
	console slog.Handler
	file    slog.Handler
}

func newTee(console, file slog.Handler) *teeHandler {
	return &teeHandler{console: console, file: file}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

// Handle writes r to each side that accepts its level. A console write
// error wins over a file write error.
func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var consoleErr, fileErr error
	if h.console.Enabled(ctx, r.Level) {
		consoleErr = h.console.Handle(ctx, r.Clone())
	}
	if h.file.Enabled(ctx, r.Level) {
		fileErr = h.file.Handle(ctx, r)
	}
	if consoleErr != nil {
		return consoleErr
	}
	return fileErr
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newTee(h.console.WithAttrs(attrs), h.file.WithAttrs(attrs))
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return newTee(h.console.WithGroup(name), h.file.WithGroup(name))
}

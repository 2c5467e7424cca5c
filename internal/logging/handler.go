package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// timeFormat is the timestamp layout for text output.
const timeFormat = "15:04:05"

// Handler is a slog.Handler writing one line per record:
//
//	15:04:05 INFO  restored entries=12 dest=~/Documents/EA/"The Sims 4"/saves
//
// Colors are used only when the writer supports them. String values under
// the home directory are shortened to "~".
type Handler struct {
	level slog.Leveler
	out   io.Writer
	mu    *sync.Mutex

	// prefix is the dotted group path applied to record attributes.
	prefix string
	// preformatted holds attributes added by WithAttrs, already rendered.
	preformatted []byte

	home     string
	colorful bool
}

var (
	timeColor = color.New(color.FgHiBlack)
	keyColor  = color.New(color.FgCyan)
)

// NewHandler creates a text handler writing to out.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{
		level:    slog.LevelInfo,
		out:      out,
		mu:       &sync.Mutex{},
		colorful: SupportsColor(out),
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	if home, err := os.UserHomeDir(); err == nil {
		h.home = home
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle renders r into a single write.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		buf.WriteString(h.paint(timeColor, r.Time.Format(timeFormat)))
		buf.WriteByte(' ')
	}

	name := levelName(r.Level)
	pad := strings.Repeat(" ", max(0, 5-len(name)))
	buf.WriteString(h.paint(levelColor(r.Level), name))
	buf.WriteString(pad)
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	buf.Write(h.preformatted)
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := prefix + a.Key
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			key += "."
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, key, ga)
		}
		return
	}

	var value string
	if a.Value.Kind() == slog.KindString {
		value = quoteIfSpaced(shortenHome(a.Value.String(), h.home))
	} else {
		value = fmt.Sprint(a.Value.Any())
	}
	fmt.Fprintf(buf, " %s=%s", h.paint(keyColor, key), value)
}

func (h *Handler) paint(c *color.Color, s string) string {
	if !h.colorful || c == nil {
		return s
	}
	return c.Sprint(s)
}

// levelName names LevelTrace; other levels use slog's names.
func levelName(l slog.Level) string {
	if l <= LevelTrace {
		return "TRACE"
	}
	return l.String()
}

func levelColor(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return color.New(color.FgRed, color.Bold)
	case l >= slog.LevelWarn:
		return color.New(color.FgYellow)
	case l >= slog.LevelInfo:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgMagenta)
	}
}

// shortenHome rewrites a path under home to start with "~".
func shortenHome(value, home string) string {
	if home == "" || !strings.HasPrefix(value, home) {
		return value
	}
	rest := value[len(home):]
	if rest == "" {
		return "~"
	}
	if rest[0] != filepath.Separator {
		return value
	}
	return "~" + rest
}

// quoteIfSpaced quotes values containing whitespace so attributes stay
// parseable; game folders such as "The Sims 4" contain spaces.
func quoteIfSpaced(value string) string {
	if strings.ContainsAny(value, " \t") {
		return fmt.Sprintf("%q", value)
	}
	return value
}

// WithAttrs returns a Handler that renders attrs on every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var buf bytes.Buffer
	buf.Write(h.preformatted)
	for _, a := range attrs {
		h.appendAttr(&buf, h.prefix, a)
	}
	newH := *h
	newH.preformatted = buf.Bytes()
	return &newH
}

// WithGroup returns a Handler that prefixes later attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.prefix = h.prefix + name + "."
	return &newH
}

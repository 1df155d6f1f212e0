package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// levelStyle is the marker and colour used for records at or above min.
type levelStyle struct {
	min    slog.Level
	marker string
	color  string
}

// levelStyles is ordered from the most to the least severe.
var levelStyles = []levelStyle{
	{min: slog.LevelError, marker: "✗", color: "#D93025"},
	{min: slog.LevelWarn, marker: "!", color: "#F59E0B"},
	{min: slog.LevelDebug - 4, color: "#667085"},
}

func styleFor(level slog.Level) levelStyle {
	for _, s := range levelStyles {
		if level >= s.min {
			return s
		}
	}
	return levelStyles[len(levelStyles)-1]
}

// PrettyHandler writes one coloured line per record: an optional level marker,
// the message, then key=value attributes. Nested groups are joined with dots.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	prefix string
	fixed  string
}

// NewPrettyHandler creates a PrettyHandler writing to w, or os.Stderr when w is nil.
// Colors are disabled when NO_COLOR is set.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{
		out:   termenv.NewOutput(w, termenv.WithProfile(colorProfile()), termenv.WithTTY(true)),
		level: level,
	}
}

func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r as a single line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	style := styleFor(r.Level)

	var line strings.Builder
	if style.marker != "" {
		line.WriteString(style.marker + " ")
	}
	line.WriteString(r.Message)
	line.WriteString(h.fixed)
	r.Attrs(func(attr slog.Attr) bool {
		appendAttr(&line, h.prefix, attr)
		return true
	})

	styled := h.out.String(line.String()).Foreground(termenv.RGBColor(style.color))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs renders attrs once under the current group prefix.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(h.fixed)
	for _, attr := range attrs {
		appendAttr(&b, h.prefix, attr)
	}
	clone := *h
	clone.fixed = b.String()
	return &clone
}

// WithGroup nests later attributes under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// appendAttr writes " key=value", expanding groups and skipping empty attributes.
func appendAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		nested := prefix
		if attr.Key != "" {
			nested += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			appendAttr(b, nested, member)
		}
		return
	}

	value := attr.Value.String()
	if strings.ContainsAny(value, " =\"\n") {
		value = strconv.Quote(value)
	}
	b.WriteString(" " + prefix + attr.Key + "=" + value)
}

package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// prettyHandler is a text handler that styles keys and values with lipgloss.
// Styles collapse to plain text when the output is not a terminal.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
	style  prettyStyle
}

type prettyStyle struct {
	key, str, num, level, msg lipgloss.Style
	levels                    map[slog.Level]lipgloss.Style
}

func makePrettyStyle(w io.Writer) prettyStyle {
	r := lipgloss.NewRenderer(w)

	return prettyStyle{
		key:   r.NewStyle().Foreground(lipgloss.Color("8")),
		str:   r.NewStyle().Foreground(lipgloss.Color("6")),
		num:   r.NewStyle().Foreground(lipgloss.Color("3")),
		level: r.NewStyle().Bold(true),
		msg:   r.NewStyle().Bold(true),
		levels: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): r.NewStyle().Foreground(lipgloss.Color("5")),
			slog.LevelDebug:        r.NewStyle().Foreground(lipgloss.Color("4")),
			slog.LevelInfo:         r.NewStyle().Foreground(lipgloss.Color("2")),
			slog.LevelWarn:         r.NewStyle().Foreground(lipgloss.Color("3")),
			slog.LevelError:        r.NewStyle().Foreground(lipgloss.Color("1")),
		},
	}
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		style: makePrettyStyle(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, h.replace(slog.Time(slog.TimeKey, r.Time)))
	}

	lvl := h.replace(slog.Any(slog.LevelKey, r.Level))
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.levelStyle(r.Level).Render(lvl.Value.String()))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(h.style.msg.Render(r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(slices.Clip(h.attrs), h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}

	prefix := ""
	for _, g := range h.groups {
		prefix += g + "."
	}

	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}

	return out
}

func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr != nil {
		return h.opts.ReplaceAttr(nil, a)
	}

	return a
}

func (h *prettyHandler) levelStyle(level slog.Level) lipgloss.Style {
	if s, ok := h.style.levels[level]; ok {
		return s.Inherit(h.style.level)
	}

	return h.style.level
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}

	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, slog.Attr{Key: a.Key + "." + ga.Key, Value: ga.Value})
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.style.key.Render(a.Key))
	buf.WriteByte('=')
	buf.WriteString(h.renderValue(a.Value))
}

func (h *prettyHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64:
		return h.style.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return h.style.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return h.style.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindDuration:
		return h.style.num.Render(v.Duration().String())

	case slog.KindTime:
		return h.style.str.Render(v.Time().Format(time.RFC3339))

	default:
		return h.style.str.Render(v.String())
	}
}

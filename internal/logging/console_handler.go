package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler renders one human-readable line per record. The component,
// outcome, and url fields are lifted out of the key/value tail:
//
//	2026-04-01T09:30:00Z INFO  reconciler [CHANGED] watch pass complete <https://example.com/> current="month=April year=2026"
type consoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	source bool
	attrs  []field
	prefix string
}

type field struct {
	key   string
	value slog.Value
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level, source: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	fields := make([]field, 0, len(h.attrs)+record.NumAttrs())
	fields = append(fields, h.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		fields = appendField(fields, h.prefix, a)
		return true
	})

	var component, outcome, url string
	rest := fields[:0]
	for _, f := range fields {
		switch {
		case f.key == FieldComponent && component == "":
			component = renderValue(f.value, false)
		case f.key == FieldOutcome && outcome == "":
			outcome = renderValue(f.value, false)
		case f.key == FieldURL && url == "":
			url = renderValue(f.value, false)
		default:
			rest = append(rest, f)
		}
	}

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	var buf bytes.Buffer
	buf.WriteString(ts.UTC().Format(time.RFC3339))
	fmt.Fprintf(&buf, " %-5s", levelLabel(record.Level))
	if component != "" {
		buf.WriteString(" " + component)
	}
	if outcome != "" {
		buf.WriteString(" [" + outcome + "]")
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	buf.WriteString(" " + msg)
	if url != "" {
		buf.WriteString(" <" + url + ">")
	}
	if h.source && record.PC != 0 {
		if src := record.Source(); src != nil {
			fmt.Fprintf(&buf, " (%s:%d)", filepath.Base(src.File), src.Line)
		}
	}
	for _, f := range rest {
		buf.WriteString(" " + f.key + "=" + renderValue(f.value, true))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]field(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = appendField(clone.attrs, h.prefix, a)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func appendField(dst []field, prefix string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, member := range a.Value.Group() {
			dst = appendField(dst, prefix, member)
		}
		return dst
	}
	return append(dst, field{key: prefix + a.Key, value: a.Value})
}

func renderValue(v slog.Value, quote bool) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if quote && (s == "" || strings.ContainsAny(s, " =\"\t\n")) {
		return strconv.Quote(s)
	}
	return s
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

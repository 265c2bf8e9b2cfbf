package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"pagewatch/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Writer receives every line. Nil means stderr.
	Writer io.Writer
	// File, when set, receives a copy of every line in append mode.
	File string
	// Source adds file:line to each record. Debug level always adds it.
	Source bool
}

// ResolveFormat turns "auto" into console when stderr is a terminal and JSON
// otherwise, so scheduled runs produce machine-readable lines.
func ResolveFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != "auto" {
		return format
	}
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "console"
	}
	return "json"
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := new(slog.LevelVar)
	level.Set(parseLevel(opts.Level))
	addSource := opts.Source || level.Level() <= slog.LevelDebug

	var handler slog.Handler
	switch format := ResolveFormat(opts.Format); format {
	case "json", "console":
		out, err := openOutput(opts.Writer, opts.File)
		if err != nil {
			return nil, err
		}
		if format == "json" {
			handler = newJSONHandler(out, level, addSource)
		} else {
			handler = newConsoleHandler(out, level, addSource)
		}
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
	return slog.New(handler), nil
}

// NewFromConfig creates the run logger: stderr, plus pagewatch.log under
// logging.dir when one is configured.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "auto"})
	}
	opts := Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	if dir := strings.TrimSpace(cfg.Logging.Dir); dir != "" {
		opts.File = filepath.Join(dir, "pagewatch.log")
	}
	return New(opts)
}

func parseLevel(level string) slog.Level {
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

func openOutput(w io.Writer, path string) (io.Writer, error) {
	if w == nil {
		w = os.Stderr
	}
	if path == "" {
		return w, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return io.MultiWriter(w, file), nil
}

func newJSONHandler(w io.Writer, level slog.Leveler, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return attr
			}
			switch attr.Key {
			case slog.TimeKey:
				return slog.String("ts", attr.Value.Time().UTC().Format(time.RFC3339))
			case slog.LevelKey:
				return slog.String("level", strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					return slog.String("source", fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	})
}

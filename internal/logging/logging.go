// Package logging is the process-wide diagnostic sink. Library packages
// fetch a source-tagged logger with Source; nothing is printed until a
// command installs a real logger with SetLogger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// LevelFailure marks errors the process cannot recover from.
const LevelFailure = slog.LevelError + 4

// SourceKey is the attribute holding the name of the component that logged.
const SourceKey = "source"

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs l for every package. Nil restores the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// Source returns the current logger with the source attribute set.
func Source(name string) *slog.Logger {
	return Logger().With(SourceKey, name)
}

// Options configures New.
type Options struct {
	Level  slog.Level
	Format string    // "text" (default) or "json"
	Output io.Writer // nil means os.Stderr; ignored when Quiet is set
	Quiet  bool      // no terminal output, file only
	File   string    // appended to when non-empty

	// AllowedSources limits output to records from these sources. Empty
	// allows everything. Records without a source always pass.
	AllowedSources []string
}

// New builds a logger from opts. The returned closer releases the log
// file, if any, and is never nil.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	var writers []io.Writer
	if !opts.Quiet {
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		writers = append(writers, out)
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open %s: %w", opts.File, err)
		}
		writers = append(writers, f)
		closer = f
	}
	if len(writers) == 0 {
		return slog.New(nopHandler{}), closer, nil
	}

	w := writers[0]
	if len(writers) > 1 {
		w = io.MultiWriter(writers...)
	}

	ho := &slog.HandlerOptions{Level: opts.Level, ReplaceAttr: replaceLevel}
	var h slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, ho)
	case "json":
		h = slog.NewJSONHandler(w, ho)
	default:
		closer.Close()
		return nil, nil, fmt.Errorf("logging: unknown format %q", opts.Format)
	}

	if len(opts.AllowedSources) > 0 {
		allowed := make(map[string]struct{}, len(opts.AllowedSources))
		for _, s := range opts.AllowedSources {
			allowed[s] = struct{}{}
		}
		h = &sourceFilter{next: h, allowed: allowed}
	}
	return slog.New(h), closer, nil
}

// ParseLevel accepts debug, info, warn, error or failure (any case).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "failure", "fail":
		return LevelFailure, nil
	}
	return 0, fmt.Errorf("logging: unknown level %q", s)
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey && len(groups) == 0 {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= LevelFailure {
			a.Value = slog.StringValue("FAILURE")
		}
	}
	return a
}

// sourceFilter drops records whose source attribute is not allowed. The
// source may come from With (tracked here) or from the record itself.
type sourceFilter struct {
	next    slog.Handler
	allowed map[string]struct{}
	source  string
}

func (h *sourceFilter) Enabled(ctx context.Context, l slog.Level) bool {
	if h.source != "" && !h.allows(h.source) {
		return false
	}
	return h.next.Enabled(ctx, l)
}

func (h *sourceFilter) Handle(ctx context.Context, r slog.Record) error {
	src := h.source
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == SourceKey {
			src = a.Value.String()
			return false
		}
		return true
	})
	if src != "" && !h.allows(src) {
		return nil
	}
	return h.next.Handle(ctx, r)
}

func (h *sourceFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	src := h.source
	for _, a := range attrs {
		if a.Key == SourceKey {
			src = a.Value.String()
		}
	}
	return &sourceFilter{next: h.next.WithAttrs(attrs), allowed: h.allowed, source: src}
}

func (h *sourceFilter) WithGroup(name string) slog.Handler {
	return &sourceFilter{next: h.next.WithGroup(name), allowed: h.allowed, source: h.source}
}

func (h *sourceFilter) allows(src string) bool {
	_, ok := h.allowed[src]
	return ok
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

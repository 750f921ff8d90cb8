package log

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// slogHandler is a slog.Handler that routes records through a Logger.
type slogHandler struct {
	logger     *Logger
	attrs      []slog.Attr
	group      string
	redactions map[string]struct{}
}

// NewSlogHandler returns a slog.Handler emitting through l. Attributes are
// appended to the message as key=value pairs; values of redacted keys are
// replaced by "[REDACTED]".
func NewSlogHandler(l *Logger, redact ...string) slog.Handler {
	h := &slogHandler{logger: l}
	if len(redact) > 0 {
		h.redactions = make(map[string]struct{}, len(redact))
		for _, k := range redact {
			h.redactions[k] = struct{}{}
		}
	}
	return h
}

// Enabled gates by the category threshold only; sink gates still apply on
// dispatch.
func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.Enabled(fromSlogLevel(level))
}

// Handle converts r to a payload and emits it at the mapped level.
func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		h.writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.group, a)
		return true
	})

	var loc Location
	if r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := frames.Next()
		loc = Location{File: f.File, Line: f.Line, Function: shortFuncName(f.Function)}
	}
	h.logger.LogAt(fromSlogLevel(r.Level), b.String(), loc)
	return nil
}

// writeAttr appends " key=value"; redaction matches the last key segment.
func (h *slogHandler) writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	a.Value = a.Value.Resolve()
	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.writeAttr(b, key, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	bare := key
	if i := strings.LastIndexByte(bare, '.'); i >= 0 {
		bare = bare[i+1:]
	}
	if _, ok := h.redactions[bare]; ok {
		b.WriteString("[REDACTED]")
		return
	}
	fmt.Fprint(b, a.Value.Any())
}

// WithAttrs returns a copy of the handler with additional base attributes.
func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	if len(attrs) > 0 {
		qualified := make([]slog.Attr, 0, len(attrs))
		for _, a := range attrs {
			if h.group != "" {
				a.Key = h.group + "." + a.Key
			}
			qualified = append(qualified, a)
		}
		nh.attrs = append(append([]slog.Attr{}, h.attrs...), qualified...)
	}
	return &nh
}

// WithGroup returns a copy of the handler that prefixes later keys with name.
func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if nh.group != "" {
		nh.group += "." + name
	} else {
		nh.group = name
	}
	return &nh
}

// fromSlogLevel maps slog.Level to our Level. Levels above error map to fatal.
func fromSlogLevel(level slog.Level) Level {
	switch {
	case level < slog.LevelInfo:
		return DebugLevel
	case level < slog.LevelWarn:
		return InfoLevel
	case level < slog.LevelError:
		return WarnLevel
	case level == slog.LevelError:
		return ErrorLevel
	default:
		return FatalLevel
	}
}

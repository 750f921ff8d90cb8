package log

import (
	stdlog "log"
	"runtime"
	"strings"
)

const pkgPrefix = "github.com/rzbill/squidlog/pkg/log."

// stdWriter adapts a Logger to io.Writer for the standard library logger.
type stdWriter struct {
	logger *Logger
	level  Level
}

// Write emits p, minus its trailing newline, as one message.
func (w stdWriter) Write(p []byte) (int, error) {
	if !w.logger.Enabled(w.level) {
		return len(p), nil
	}
	msg := strings.TrimRight(string(p), "\r\n")
	w.logger.LogAt(w.level, msg, stdCaller())
	return len(p), nil
}

// stdCaller finds the first frame outside the standard log package and
// this package.
func stdCaller() Location {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, "log.") && !strings.HasPrefix(f.Function, pkgPrefix) {
			return Location{File: f.File, Line: f.Line, Function: shortFuncName(f.Function)}
		}
		if !more {
			return Location{}
		}
	}
}

// ToStdLogger returns a standard library logger that emits every line
// through l at level.
func ToStdLogger(l *Logger, level Level) *stdlog.Logger {
	return stdlog.New(stdWriter{logger: l, level: level}, "", 0)
}

// RedirectStdLog sends the standard library's default logger output through
// l at InfoLevel. The returned function restores the previous output and
// flags.
func RedirectStdLog(l *Logger) func() {
	prevOut := stdlog.Writer()
	prevFlags := stdlog.Flags()
	prevPrefix := stdlog.Prefix()
	stdlog.SetOutput(stdWriter{logger: l, level: InfoLevel})
	stdlog.SetFlags(0)
	stdlog.SetPrefix("")
	return func() {
		stdlog.SetOutput(prevOut)
		stdlog.SetFlags(prevFlags)
		stdlog.SetPrefix(prevPrefix)
	}
}

package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
)

// Sink is an output destination. Print receives final text and must not
// report failures back to the caller; I/O errors are the sink's concern.
//
// A sink may additionally implement LevelOverrider, RecordFormatter and
// TextFilter.
type Sink interface {
	Print(text string)
}

// LevelOverrider is implemented by sinks that start with their own threshold
// instead of the manager default. It is read once, at registration.
type LevelOverrider interface {
	LogLevel() (Level, bool)
}

// RecordFormatter is implemented by sinks that render records themselves.
// Returning false falls back to the manager's rendered text.
type RecordFormatter interface {
	FormatRecord(r Record) (string, bool)
}

// TextFilter is implemented by sinks that rewrite their own rendered text
// before printing. It is not applied to the manager's rendered text.
type TextFilter interface {
	FilterText(text string) string
}

// render picks the text s prints for r.
func render(s Sink, r Record, defaultText string) string {
	f, ok := s.(RecordFormatter)
	if !ok {
		return defaultText
	}
	text, ok := f.FormatRecord(r)
	if !ok {
		return defaultText
	}
	if tf, ok := s.(TextFilter); ok {
		return tf.FilterText(text)
	}
	return text
}

// emit prints r to s. A panicking sink is reported on stderr and does not
// reach the caller or the remaining sinks.
func emit(s Sink, r Record, defaultText string) {
	defer func() {
		if v := recover(); v != nil {
			fmt.Fprintf(os.Stderr, "squidlog: sink %T panicked: %v\n", s, v)
		}
	}()
	s.Print(render(s, r, defaultText))
}

// SinkFuncs assembles a sink from functions. PrintFunc is required; nil
// hooks take their defaults.
type SinkFuncs struct {
	PrintFunc  func(text string)
	FormatFunc func(r Record) (string, bool)
	FilterFunc func(text string) string
	// Level, when non-nil, is the sink's initial threshold.
	Level *Level
}

// Print implements Sink.
func (s *SinkFuncs) Print(text string) {
	if s.PrintFunc != nil {
		s.PrintFunc(text)
	}
}

// FormatRecord implements RecordFormatter.
func (s *SinkFuncs) FormatRecord(r Record) (string, bool) {
	if s.FormatFunc == nil {
		return "", false
	}
	return s.FormatFunc(r)
}

// FilterText implements TextFilter.
func (s *SinkFuncs) FilterText(text string) string {
	if s.FilterFunc == nil {
		return text
	}
	return s.FilterFunc(text)
}

// LogLevel implements LevelOverrider.
func (s *SinkFuncs) LogLevel() (Level, bool) {
	if s.Level == nil {
		return 0, false
	}
	return *s.Level, true
}

// WriterSink writes one line per message to an io.Writer. Writes are
// serialized; write errors are dropped. The zero value discards output.
type WriterSink struct {
	mu       sync.Mutex
	shared   *sync.Mutex // set for console sinks, which share one lock
	w        io.Writer
	level    Level
	hasLevel bool
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

var (
	consoleMu  sync.Mutex
	consoleOut = colorable.NewColorableStdout()
)

// NewConsoleSink returns a sink writing to standard output. Console sinks
// share one lock so their lines never interleave.
func NewConsoleSink() *WriterSink {
	return &WriterSink{shared: &consoleMu, w: consoleOut}
}

// WithLevel sets the threshold the sink is registered with.
func (s *WriterSink) WithLevel(level Level) *WriterSink {
	s.level = level
	s.hasLevel = true
	return s
}

// LogLevel implements LevelOverrider.
func (s *WriterSink) LogLevel() (Level, bool) { return s.level, s.hasLevel }

// Print implements Sink.
func (s *WriterSink) Print(text string) {
	mu := s.shared
	if mu == nil {
		mu = &s.mu
	}
	mu.Lock()
	defer mu.Unlock()
	if s.w == nil {
		return
	}
	_, _ = io.WriteString(s.w, text+"\n")
}

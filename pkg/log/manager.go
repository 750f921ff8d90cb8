package log

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rzbill/squidlog/pkg/clock"
)

// SinkHandle identifies a sink registration. The zero value matches no sink.
type SinkHandle struct {
	id uint64
}

// String returns a short description for diagnostics.
func (h SinkHandle) String() string {
	return "sink#" + strconv.FormatUint(h.id, 10)
}

type sinkEntry struct {
	handle   SinkHandle
	sink     Sink
	level    Level
	hasLevel bool
}

func (e sinkEntry) threshold(def Level) Level {
	if e.hasLevel {
		return e.level
	}
	return def
}

// state is an immutable configuration snapshot. Writers publish a new
// snapshot; dispatch reads exactly one.
type state struct {
	defaultLevel Level
	sinks        []sinkEntry
	symbols      SymbolStrategy
	formatter    TextFormatter
	clock        clock.Clock
}

// Manager holds the logging configuration and dispatches records to sinks.
// It is safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	cur    atomic.Pointer[state]
	nextID uint64
}

// NewManager returns a manager with default level info, a single console
// sink, emoji symbols and the default text formatter.
func NewManager() *Manager {
	m := &Manager{}
	m.cur.Store(&state{
		defaultLevel: InfoLevel,
		symbols:      DefaultSymbols,
		formatter:    DefaultTextFormatter{},
		clock:        clock.Real{},
	})
	m.Configure()
	return m
}

var std = NewManager()

// Default returns the process-wide manager.
func Default() *Manager { return std }

// update applies fn to a copy of the current state and publishes it. If fn
// panics nothing is published.
func (m *Manager) update(fn func(s *state)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := *m.cur.Load()
	next.sinks = slices.Clone(next.sinks)
	fn(&next)
	m.cur.Store(&next)
}

func (m *Manager) newEntry(op string, s Sink) sinkEntry {
	if s == nil {
		configPanic(op, "nil sink")
	}
	m.nextID++
	e := sinkEntry{handle: SinkHandle{id: m.nextID}, sink: s}
	if lo, ok := s.(LevelOverrider); ok {
		e.level, e.hasLevel = lo.LogLevel()
	}
	return e
}

// Configure replaces every registered sink, and their level overrides, with
// sinks in order. With no arguments a single console sink is registered.
// Handles from earlier registrations stop matching.
func (m *Manager) Configure(sinks ...Sink) []SinkHandle {
	if len(sinks) == 0 {
		sinks = []Sink{NewConsoleSink()}
	}
	handles := make([]SinkHandle, len(sinks))
	m.update(func(s *state) {
		entries := make([]sinkEntry, len(sinks))
		for i, sink := range sinks {
			entries[i] = m.newEntry("configure", sink)
			handles[i] = entries[i].handle
		}
		s.sinks = entries
	})
	return handles
}

// AddSink registers sink after the existing ones.
func (m *Manager) AddSink(sink Sink) SinkHandle {
	var h SinkHandle
	m.update(func(s *state) {
		e := m.newEntry("add sink", sink)
		h = e.handle
		s.sinks = append(s.sinks, e)
	})
	return h
}

// Sinks returns the registered sinks in registration order.
func (m *Manager) Sinks() []Sink {
	st := m.cur.Load()
	out := make([]Sink, len(st.sinks))
	for i, e := range st.sinks {
		out[i] = e.sink
	}
	return out
}

// SetDefaultLevel sets the threshold used by categories and sinks without
// an override.
func (m *Manager) SetDefaultLevel(level Level) {
	m.update(func(s *state) { s.defaultLevel = level })
}

// DefaultLevel returns the current default threshold.
func (m *Manager) DefaultLevel() Level {
	return m.cur.Load().defaultLevel
}

func (m *Manager) setSinkLevel(op string, h SinkHandle, level Level, has bool) {
	m.update(func(s *state) {
		for i := range s.sinks {
			if s.sinks[i].handle == h {
				s.sinks[i].level = level
				s.sinks[i].hasLevel = has
				return
			}
		}
		configPanic(op, h.String()+" is not registered")
	})
}

// SetSinkLevel overrides the threshold of the sink registered as h. It
// panics with a *ConfigurationError if h is not registered.
func (m *Manager) SetSinkLevel(level Level, h SinkHandle) {
	m.setSinkLevel("set sink level", h, level, true)
}

// ClearSinkLevel makes the sink registered as h follow the default level.
// It panics with a *ConfigurationError if h is not registered.
func (m *Manager) ClearSinkLevel(h SinkHandle) {
	m.setSinkLevel("clear sink level", h, 0, false)
}

// SinkLevel returns the effective threshold of the sink registered as h and
// whether h is registered.
func (m *Manager) SinkLevel(h SinkHandle) (Level, bool) {
	st := m.cur.Load()
	for _, e := range st.sinks {
		if e.handle == h {
			return e.threshold(st.defaultLevel), true
		}
	}
	return 0, false
}

// SetSymbolStrategy replaces the symbol strategy for every later render.
func (m *Manager) SetSymbolStrategy(s SymbolStrategy) {
	if s == nil {
		configPanic("set symbol strategy", "nil strategy")
	}
	m.update(func(st *state) { st.symbols = s })
}

// SetTextFormatter replaces the formatter for every later render.
func (m *Manager) SetTextFormatter(f TextFormatter) {
	if f == nil {
		configPanic("set text formatter", "nil formatter")
	}
	m.update(func(st *state) { st.formatter = f })
}

// SetClock replaces the time source used to stamp records.
func (m *Manager) SetClock(c clock.Clock) {
	if c == nil {
		configPanic("set clock", "nil clock")
	}
	m.update(func(st *state) { st.clock = c })
}

// Symbol renders level with the current symbol strategy.
func (m *Manager) Symbol(level Level) string {
	return m.cur.Load().symbols.Symbol(level)
}

// Dispatch gates r at cat's effective level and, if it passes, fans it out
// to the registered sinks. A zero r.Time is stamped from the manager clock.
func (m *Manager) Dispatch(cat Category, r Record) {
	st := m.cur.Load()
	if !CanEmit(effectiveLevel(cat, st.defaultLevel), r.Level) {
		return
	}
	if r.Time.IsZero() {
		r.Time = st.clock.Now()
	}
	st.fanOut(r)
}

// fanOut renders r once with the manager formatter and hands it to every
// sink whose own gate passes.
func (st *state) fanOut(r Record) {
	r.symbols = st.symbols
	defaultText := safeFormat(st.formatter, r)
	for _, e := range st.sinks {
		if !CanEmit(e.threshold(st.defaultLevel), r.Level) {
			continue
		}
		emit(e.sink, r, defaultText)
	}
}

// safeFormat falls back to the bare payload text if f panics.
func safeFormat(f TextFormatter, r Record) (text string) {
	defer func() {
		if v := recover(); v != nil {
			fmt.Fprintf(os.Stderr, "squidlog: formatter %T panicked: %v\n", f, v)
			text = r.Text
		}
	}()
	return f.Format(r)
}

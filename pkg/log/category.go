package log

import (
	"fmt"
	"sync/atomic"
)

// DefaultCategoryName is the category name used by Manager.Named("").
const DefaultCategoryName = "Default"

// Category is a named source of messages with an optional level override.
type Category interface {
	Name() string
	// LogLevel returns the override, or false to use the manager default.
	LogLevel() (Level, bool)
}

func effectiveLevel(c Category, def Level) Level {
	if l, ok := c.LogLevel(); ok {
		return l
	}
	return def
}

// NamedCategory is a Category whose override can change at runtime.
type NamedCategory struct {
	name  string
	level atomic.Int64 // 0 means no override
}

// NewCategory returns a category with no level override.
func NewCategory(name string) *NamedCategory {
	return &NamedCategory{name: name}
}

// Name implements Category.
func (c *NamedCategory) Name() string { return c.name }

// LogLevel implements Category.
func (c *NamedCategory) LogLevel() (Level, bool) {
	l := Level(c.level.Load())
	return l, l != 0
}

// SetLevel overrides the manager default for this category.
func (c *NamedCategory) SetLevel(level Level) *NamedCategory {
	c.level.Store(int64(level))
	return c
}

// ClearLevel removes the override.
func (c *NamedCategory) ClearLevel() {
	c.level.Store(0)
}

// Stringifier converts a payload to its display text.
type Stringifier func(payload any) string

func sprint(payload any) string { return fmt.Sprint(payload) }

// Logger emits records for one category through a manager.
type Logger struct {
	m         *Manager
	cat       Category
	stringify Stringifier
}

// Logger returns a logger for cat.
func (m *Manager) Logger(cat Category) *Logger {
	return &Logger{m: m, cat: cat, stringify: sprint}
}

// Named returns a logger for a new category called name with no override.
// An empty name means DefaultCategoryName.
func (m *Manager) Named(name string) *Logger {
	if name == "" {
		name = DefaultCategoryName
	}
	return m.Logger(NewCategory(name))
}

// WithStringifier returns a copy of l converting payloads with s.
func (l *Logger) WithStringifier(s Stringifier) *Logger {
	nl := *l
	if s != nil {
		nl.stringify = s
	}
	return &nl
}

// Category returns the logger's category.
func (l *Logger) Category() Category { return l.cat }

// EffectiveLevel returns the category threshold currently in force.
func (l *Logger) EffectiveLevel() Level {
	return effectiveLevel(l.cat, l.m.DefaultLevel())
}

// Enabled reports whether a message at level would pass the category gate.
func (l *Logger) Enabled(level Level) bool {
	return CanEmit(l.EffectiveLevel(), level)
}

// log is the single entry point of the leveled methods; it must be called
// directly by them so the caller is two frames up.
func (l *Logger) log(level Level, payload any) {
	st := l.m.cur.Load()
	if !CanEmit(effectiveLevel(l.cat, st.defaultLevel), level) {
		return
	}
	l.send(st, level, payload, callerLocation(2))
}

func (l *Logger) logf(level Level, format string, args []any) {
	st := l.m.cur.Load()
	if !CanEmit(effectiveLevel(l.cat, st.defaultLevel), level) {
		return
	}
	l.send(st, level, fmt.Sprintf(format, args...), callerLocation(2))
}

func (l *Logger) send(st *state, level Level, payload any, loc Location) {
	st.fanOut(Record{
		Payload:  payload,
		Text:     l.text(payload),
		Level:    level,
		Category: l.cat.Name(),
		Location: loc,
		Time:     st.clock.Now(),
	})
}

func (l *Logger) text(payload any) (s string) {
	defer func() {
		if v := recover(); v != nil {
			s = fmt.Sprintf("%v (stringify panicked: %v)", payload, v)
		}
	}()
	return l.stringify(payload)
}

// Log emits payload at level.
func (l *Logger) Log(level Level, payload any) { l.log(level, payload) }

// LogAt emits payload at level with an explicit call site.
func (l *Logger) LogAt(level Level, payload any, loc Location) {
	st := l.m.cur.Load()
	if !CanEmit(effectiveLevel(l.cat, st.defaultLevel), level) {
		return
	}
	l.send(st, level, payload, loc)
}

// Debug logs payload at DebugLevel.
func (l *Logger) Debug(payload any) { l.log(DebugLevel, payload) }

// Info logs payload at InfoLevel.
func (l *Logger) Info(payload any) { l.log(InfoLevel, payload) }

// Warn logs payload at WarnLevel.
func (l *Logger) Warn(payload any) { l.log(WarnLevel, payload) }

// Error logs payload at ErrorLevel.
func (l *Logger) Error(payload any) { l.log(ErrorLevel, payload) }

// Fatal logs payload at FatalLevel. It does not exit the process.
func (l *Logger) Fatal(payload any) { l.log(FatalLevel, payload) }

// None logs payload at NoneLevel, the highest rank, so it passes every gate.
func (l *Logger) None(payload any) { l.log(NoneLevel, payload) }

// Debugf logs a formatted message at DebugLevel.
func (l *Logger) Debugf(format string, args ...any) { l.logf(DebugLevel, format, args) }

// Infof logs a formatted message at InfoLevel.
func (l *Logger) Infof(format string, args ...any) { l.logf(InfoLevel, format, args) }

// Warnf logs a formatted message at WarnLevel.
func (l *Logger) Warnf(format string, args ...any) { l.logf(WarnLevel, format, args) }

// Errorf logs a formatted message at ErrorLevel.
func (l *Logger) Errorf(format string, args ...any) { l.logf(ErrorLevel, format, args) }

// Fatalf logs a formatted message at FatalLevel. It does not exit the process.
func (l *Logger) Fatalf(format string, args ...any) { l.logf(FatalLevel, format, args) }

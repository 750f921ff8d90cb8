package log

import (
	"fmt"
	"strings"
)

// Level represents the severity level of a log message. Levels are totally
// ordered; NoneLevel as a threshold suppresses everything.
type Level int

// Log levels
const (
	DebugLevel Level = iota + 1
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
	NoneLevel
)

var levelNames = [...]string{
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
	FatalLevel: "fatal",
	NoneLevel:  "none",
}

// String returns the lowercase level name used in rendered lines.
func (l Level) String() string {
	if l >= DebugLevel && l <= NoneLevel {
		return levelNames[l]
	}
	return "unknown"
}

// Symbol renders l through the default manager's current SymbolStrategy.
// Formatters should call Record.Symbol instead, which uses the strategy of
// the manager dispatching the record.
func (l Level) Symbol() string {
	return Default().Symbol(l)
}

// CanEmit reports whether a gate configured at threshold lets a message at
// level through.
func CanEmit(threshold, level Level) bool {
	return threshold <= level
}

// ParseLevel parses a level name. Matching is case-insensitive and accepts
// "warning" for WarnLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	case "none", "off":
		return NoneLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// Levels lists every level in ascending order.
func Levels() []Level {
	return []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel, NoneLevel}
}

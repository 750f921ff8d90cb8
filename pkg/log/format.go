package log

import (
	"strconv"
	"strings"
)

// TimestampLayout is the timestamp layout of DefaultTextFormatter
// (yyyy-MM-dd HH:mm:ss.SSS).
const TimestampLayout = "2006-01-02 15:04:05.000"

// SymbolStrategy renders a level as a short symbol.
type SymbolStrategy interface {
	Symbol(level Level) string
}

// SymbolFunc adapts a function to SymbolStrategy.
type SymbolFunc func(level Level) string

// Symbol implements SymbolStrategy.
func (f SymbolFunc) Symbol(level Level) string { return f(level) }

// EmojiSymbols is the default SymbolStrategy.
type EmojiSymbols struct{}

// Symbol implements SymbolStrategy.
func (EmojiSymbols) Symbol(level Level) string {
	switch level {
	case DebugLevel:
		return "📋"
	case InfoLevel:
		return "💡"
	case WarnLevel:
		return "⚠️"
	case ErrorLevel:
		return "🚫"
	case FatalLevel:
		return "💔"
	default:
		return ""
	}
}

// LetterSymbols renders levels as D, I, W, E and F.
type LetterSymbols struct{}

// Symbol implements SymbolStrategy.
func (LetterSymbols) Symbol(level Level) string {
	switch level {
	case DebugLevel:
		return "D"
	case InfoLevel:
		return "I"
	case WarnLevel:
		return "W"
	case ErrorLevel:
		return "E"
	case FatalLevel:
		return "F"
	default:
		return ""
	}
}

// DefaultSymbols is the strategy a new Manager starts with.
var DefaultSymbols SymbolStrategy = EmojiSymbols{}

// TextFormatter renders a record to the text printed by sinks that do not
// render records themselves.
type TextFormatter interface {
	Format(r Record) string
}

// TextFormatterFunc adapts a function to TextFormatter.
type TextFormatterFunc func(r Record) string

// Format implements TextFormatter.
func (f TextFormatterFunc) Format(r Record) string { return f(r) }

// DefaultTextFormatter renders
//
//	<symbol> <level> [<category>] <timestamp> <file>(<line>) <function> - <payload>
//
// The layout is stable; tooling may match it byte for byte.
type DefaultTextFormatter struct{}

// Format implements TextFormatter.
func (DefaultTextFormatter) Format(r Record) string {
	var b strings.Builder
	b.Grow(64 + len(r.Text) + len(r.Function))
	b.WriteString(r.Symbol())
	b.WriteByte(' ')
	b.WriteString(r.Level.String())
	b.WriteString(" [")
	b.WriteString(r.Category)
	b.WriteString("] ")
	b.WriteString(r.Time.Format(TimestampLayout))
	b.WriteByte(' ')
	b.WriteString(r.FileName())
	b.WriteByte('(')
	b.WriteString(strconv.Itoa(r.Line))
	b.WriteString(") ")
	b.WriteString(r.Function)
	b.WriteString(" - ")
	b.WriteString(r.Text)
	return b.String()
}

// PayloadFormatter renders only the payload text.
type PayloadFormatter struct{}

// Format implements TextFormatter.
func (PayloadFormatter) Format(r Record) string { return r.Text }

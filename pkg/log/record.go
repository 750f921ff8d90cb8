package log

import (
	"path"
	"runtime"
	"strings"
	"time"
)

// Location is the call site a record was emitted from.
type Location struct {
	File     string
	Line     int
	Function string
}

// Record is a single log event. It is built once per accepted call and
// passed by value through dispatch.
type Record struct {
	// Payload is the value handed to the logging call.
	Payload any
	// Text is Payload converted by the logger's Stringifier.
	Text     string
	Level    Level
	Category string
	Location
	Time time.Time

	symbols SymbolStrategy
}

// FileName returns the last path component of File, or "" when File has none.
func (r Record) FileName() string {
	if r.File == "" {
		return ""
	}
	base := path.Base(strings.ReplaceAll(r.File, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return base
}

// Symbol renders the record's level with the strategy that was active on
// the dispatching manager.
func (r Record) Symbol() string {
	if r.symbols == nil {
		return DefaultSymbols.Symbol(r.Level)
	}
	return r.symbols.Symbol(r.Level)
}

// callerLocation reports the call site skip frames above its caller.
func callerLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	return Location{File: file, Line: line, Function: funcName(pc)}
}

func funcName(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	return shortFuncName(fn.Name())
}

// shortFuncName strips the import path and package name:
// "github.com/x/y/pkg.(*T).Run" becomes "(*T).Run".
func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	return name
}

// Package zapsink provides a squidlog sink that forwards rendered lines to
// a zap logger.
package zapsink

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rzbill/squidlog/pkg/log"
)

// Sink writes each rendered line as one zap entry at a fixed zap level.
// zap performs its own output serialization.
type Sink struct {
	logger   *zap.Logger
	level    zapcore.Level
	override *log.Level
}

// Option configures a Sink.
type Option func(*Sink)

// WithZapLevel sets the zap level entries are written at (default info).
func WithZapLevel(l zapcore.Level) Option {
	return func(s *Sink) { s.level = l }
}

// WithLogLevel registers the sink with its own squidlog threshold.
func WithLogLevel(l log.Level) Option {
	return func(s *Sink) { s.override = &l }
}

// New returns a sink writing to z.
//
// Print only receives rendered text, so every line reaches zap at the one
// level set by WithZapLevel and zap's own level filtering cannot tell a
// debug record from an error record. Gate records with the squidlog sink
// threshold (WithLogLevel or Manager.SetSinkLevel) and set WithZapLevel to
// ZapLevel of that threshold so zap's core does not drop them.
func New(z *zap.Logger, opts ...Option) *Sink {
	s := &Sink{logger: z, level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Print implements log.Sink.
func (s *Sink) Print(text string) {
	if ce := s.logger.Check(s.level, text); ce != nil {
		ce.Write()
	}
}

// LogLevel implements log.LevelOverrider.
func (s *Sink) LogLevel() (log.Level, bool) {
	if s.override == nil {
		return 0, false
	}
	return *s.override, true
}

// ZapLevel maps a squidlog level to the closest zap level.
func ZapLevel(l log.Level) zapcore.Level {
	switch l {
	case log.DebugLevel:
		return zapcore.DebugLevel
	case log.InfoLevel:
		return zapcore.InfoLevel
	case log.WarnLevel:
		return zapcore.WarnLevel
	case log.ErrorLevel:
		return zapcore.ErrorLevel
	default:
		// zap's fatal and panic levels terminate the caller
		return zapcore.ErrorLevel
	}
}

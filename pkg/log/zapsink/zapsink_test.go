package zapsink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rzbill/squidlog/pkg/log"
	"github.com/rzbill/squidlog/pkg/log/zapsink"
)

func TestSink_ForwardsRenderedText(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := log.NewManager()
	m.SetTextFormatter(log.PayloadFormatter{})
	m.Configure(zapsink.New(zap.New(core), zapsink.WithZapLevel(zapcore.WarnLevel)))

	m.Named("Default").Error("boom")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "boom", entry.Message)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
}

func TestSink_EveryRecordUsesTheFixedZapLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := log.NewManager()
	m.SetDefaultLevel(log.DebugLevel)
	m.SetTextFormatter(log.PayloadFormatter{})
	m.Configure(zapsink.New(zap.New(core),
		zapsink.WithLogLevel(log.DebugLevel),
		zapsink.WithZapLevel(zapsink.ZapLevel(log.DebugLevel))))

	l := m.Named("Default")
	l.Debug("low")
	l.Error("high")

	require.Equal(t, 2, logs.Len())
	for _, e := range logs.All() {
		assert.Equal(t, zapcore.DebugLevel, e.Level, e.Message)
	}
}

func TestSink_LogLevelOverride(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := log.NewManager()
	m.Configure(zapsink.New(zap.New(core), zapsink.WithLogLevel(log.ErrorLevel)))

	l := m.Named("Default")
	l.Warn("dropped")
	l.Error("kept")

	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "kept")
}

func TestSink_ZapCoreLevelStillApplies(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	s := zapsink.New(zap.New(core))
	s.Print("info entry is below the core level")
	assert.Equal(t, 0, logs.Len())
}

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, zapsink.ZapLevel(log.DebugLevel))
	assert.Equal(t, zapcore.ErrorLevel, zapsink.ZapLevel(log.ErrorLevel))
	assert.Equal(t, zapcore.ErrorLevel, zapsink.ZapLevel(log.FatalLevel))
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/rzbill/squidlog/pkg/log"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return file
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Level != "info" {
		t.Fatalf("default level: %q", cfg.Level)
	}
	if cfg.Symbols != "emoji" {
		t.Fatalf("default symbols: %q", cfg.Symbols)
	}
	if len(cfg.Sinks) != 1 || cfg.Sinks[0].Type != "console" {
		t.Fatalf("default sinks: %+v", cfg.Sinks)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	file := writeFile(t, "squid.json", `{"level":"debug","symbols":"letter","sinks":[{"name":"out","type":"console","level":"error"}]}`)
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Level != "debug" || cfg.Symbols != "letter" {
		t.Fatalf("level/symbols: %q %q", cfg.Level, cfg.Symbols)
	}
	if cfg.Format != "default" {
		t.Fatalf("format should keep default, got %q", cfg.Format)
	}
	want := []SinkConfig{{Name: "out", Type: "console", Level: "error"}}
	if !reflect.DeepEqual(cfg.Sinks, want) {
		t.Fatalf("sinks: %+v", cfg.Sinks)
	}
}

func TestLoadJSON5(t *testing.T) {
	file := writeFile(t, "squid.json5", `{
  // comments and trailing commas are allowed
  level: 'warn',
  categories: {'net/**': 'error',},
}`)
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Level != "warn" {
		t.Fatalf("expected warn, got %q", cfg.Level)
	}
	if !reflect.DeepEqual(cfg.Categories, map[string]string{"net/**": "error"}) {
		t.Fatalf("categories: %+v", cfg.Categories)
	}
}

func TestLoadYAML(t *testing.T) {
	file := writeFile(t, "squid.yaml", `
level: error
format: payload
sinks:
  - name: console
    type: console
  - name: errors
    type: stderr
    level: fatal
categories:
  Network: debug
`)
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Level != "error" || cfg.Format != "payload" {
		t.Fatalf("level/format: %q %q", cfg.Level, cfg.Format)
	}
	if len(cfg.Sinks) != 2 || cfg.Sinks[1].Level != "fatal" {
		t.Fatalf("sinks: %+v", cfg.Sinks)
	}
	if cfg.Categories["Network"] != "debug" {
		t.Fatalf("categories: %+v", cfg.Categories)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load(writeFile(t, "bad.json", `{"level":`)); err == nil {
		t.Fatalf("expected parse error")
	}
	_, err := Load(writeFile(t, "bad.yaml", "level: loud\n"))
	if !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"bad level", func(c *Config) { c.Level = "chatty" }, ErrInvalidLevel},
		{"bad symbols", func(c *Config) { c.Symbols = "runes" }, ErrUnknownSymbols},
		{"bad format", func(c *Config) { c.Format = "xml" }, ErrUnknownFormat},
		{"bad sink", func(c *Config) { c.Sinks = []SinkConfig{{Type: "syslog"}} }, ErrUnknownSink},
		{"bad sink level", func(c *Config) { c.Sinks[0].Level = "x" }, ErrInvalidLevel},
		{"bad pattern", func(c *Config) { c.Categories = map[string]string{"net/[": "info"} }, ErrBadPattern},
		{"bad category level", func(c *Config) { c.Categories = map[string]string{"net": "x"} }, ErrInvalidLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	cfg := Default()
	cfg.Level = "warn"
	cfg.Symbols = "letter"
	cfg.Format = "payload"
	cfg.Sinks = []SinkConfig{
		{Name: "console", Type: "console", Level: "error"},
		{Type: "stderr"},
	}

	m := log.NewManager()
	handles, err := cfg.Apply(m)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if m.DefaultLevel() != log.WarnLevel {
		t.Fatalf("default level: %v", m.DefaultLevel())
	}
	if got := m.Symbol(log.WarnLevel); got != "W" {
		t.Fatalf("symbol: %q", got)
	}
	if n := len(m.Sinks()); n != 2 {
		t.Fatalf("sinks: %d", n)
	}
	if lvl, ok := m.SinkLevel(handles["console"]); !ok || lvl != log.ErrorLevel {
		t.Fatalf("console level: %v %v", lvl, ok)
	}
	if lvl, ok := m.SinkLevel(handles["stderr#1"]); !ok || lvl != log.WarnLevel {
		t.Fatalf("stderr level: %v %v", lvl, ok)
	}
}

func TestApplyWithConsole(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Format = "payload"
	m := log.NewManager()
	if _, err := cfg.Apply(m, WithConsole(&buf)); err != nil {
		t.Fatalf("apply: %v", err)
	}

	m.Named("Default").Warn("to buffer")
	if buf.String() != "to buffer\n" {
		t.Fatalf("console output: %q", buf.String())
	}
}

func TestApplyInvalidLeavesManagerUntouched(t *testing.T) {
	m := log.NewManager()
	before := m.Sinks()
	cfg := Default()
	cfg.Level = "nope"

	if _, err := cfg.Apply(m); err == nil {
		t.Fatalf("expected error")
	}
	if m.DefaultLevel() != log.InfoLevel {
		t.Fatalf("default level changed: %v", m.DefaultLevel())
	}
	if !reflect.DeepEqual(before, m.Sinks()) {
		t.Fatalf("sinks changed")
	}
}

func TestCategoryLevel(t *testing.T) {
	cfg := Default()
	cfg.Categories = map[string]string{
		"net/**":   "warn",
		"net/http": "debug",
		"Default":  "error",
		"*":        "fatal",
	}
	tests := []struct {
		name  string
		want  log.Level
		found bool
	}{
		{"net/http", log.DebugLevel, true},
		{"net/grpc/client", log.WarnLevel, true},
		{"Default", log.ErrorLevel, true},
		{"Network", log.FatalLevel, true},
		{"db/sql", 0, false},
	}
	for _, tt := range tests {
		got, ok := cfg.CategoryLevel(tt.name)
		if ok != tt.found || got != tt.want {
			t.Errorf("%s: got (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.found)
		}
	}

	if lvl, ok := cfg.Category("net/http").LogLevel(); !ok || lvl != log.DebugLevel {
		t.Fatalf("net/http category: %v %v", lvl, ok)
	}
	if _, ok := cfg.Category("db/sql").LogLevel(); ok {
		t.Fatalf("db/sql should have no override")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	t.Setenv("SQUID_LOG_LEVEL", "debug")
	t.Setenv("SQUID_LOG_SYMBOLS", "letter")
	t.Setenv("SQUID_LOG_FORMAT", "payload")
	t.Setenv("SQUID_LOG_CATEGORIES", "net/**=warn, Default = error,broken")
	FromEnv(&cfg)
	if cfg.Level != "debug" || cfg.Symbols != "letter" || cfg.Format != "payload" {
		t.Fatalf("env overlay: %+v", cfg)
	}
	want := map[string]string{"net/**": "warn", "Default": "error"}
	if !reflect.DeepEqual(cfg.Categories, want) {
		t.Fatalf("categories: %+v", cfg.Categories)
	}
}

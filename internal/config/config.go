package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/titanous/json5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rzbill/squidlog/pkg/log"
	"github.com/rzbill/squidlog/pkg/log/zapsink"
)

// Sentinel errors; returned wrapped with context.
var (
	ErrInvalidLevel   = errors.New("invalid log level")
	ErrUnknownSink    = errors.New("unknown sink type")
	ErrUnknownFormat  = errors.New("unknown format")
	ErrUnknownSymbols = errors.New("unknown symbol set")
	ErrBadPattern     = errors.New("invalid category pattern")
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Level   string       `json:"level" yaml:"level"`
	Symbols string       `json:"symbols" yaml:"symbols"`
	Format  string       `json:"format" yaml:"format"`
	Sinks   []SinkConfig `json:"sinks" yaml:"sinks"`
	// Categories maps glob patterns (doublestar syntax) to level names.
	Categories map[string]string `json:"categories" yaml:"categories"`
}

// SinkConfig describes one sink. Level is optional; empty follows the
// default level.
type SinkConfig struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Level:   "info",
		Symbols: "emoji",
		Format:  "default",
		Sinks:   []SinkConfig{{Name: "console", Type: "console"}},
	}
}

// Load reads configuration from a JSON, JSON5 or YAML file (by extension).
// If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json5":
		err = json5.Unmarshal(b, &cfg)
	default:
		err = json.Unmarshal(b, &cfg)
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func parseLevel(field, s string) (log.Level, error) {
	l, err := log.ParseLevel(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidLevel, "%s: %q", field, s)
	}
	return l, nil
}

// Validate checks every level, sink type, format and pattern.
func (c Config) Validate() error {
	if _, err := parseLevel("level", c.Level); err != nil {
		return err
	}
	if _, err := c.symbolStrategy(); err != nil {
		return err
	}
	if _, err := c.formatter(); err != nil {
		return err
	}
	for i, s := range c.Sinks {
		switch s.Type {
		case "console", "stderr", "zap":
		default:
			return errors.Wrapf(ErrUnknownSink, "sinks[%d]: %q", i, s.Type)
		}
		if s.Level != "" {
			if _, err := parseLevel("sinks["+s.Name+"].level", s.Level); err != nil {
				return err
			}
		}
	}
	for pattern, lvl := range c.Categories {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Wrapf(ErrBadPattern, "%q", pattern)
		}
		if _, err := parseLevel("categories["+pattern+"]", lvl); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) symbolStrategy() (log.SymbolStrategy, error) {
	switch c.Symbols {
	case "", "emoji":
		return log.EmojiSymbols{}, nil
	case "letter":
		return log.LetterSymbols{}, nil
	case "auto":
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return log.EmojiSymbols{}, nil
		}
		return log.LetterSymbols{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownSymbols, "%q", c.Symbols)
	}
}

func (c Config) formatter() (log.TextFormatter, error) {
	switch c.Format {
	case "", "default":
		return log.DefaultTextFormatter{}, nil
	case "payload":
		return log.PayloadFormatter{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", c.Format)
	}
}

// ApplyOption customizes Apply.
type ApplyOption func(*applyOptions)

type applyOptions struct {
	console io.Writer
}

// WithConsole makes "console" sinks write to w instead of standard output.
func WithConsole(w io.Writer) ApplyOption {
	return func(o *applyOptions) { o.console = w }
}

func newSink(s SinkConfig, o applyOptions) (log.Sink, error) {
	switch s.Type {
	case "console":
		if o.console != nil {
			return log.NewWriterSink(o.console), nil
		}
		return log.NewConsoleSink(), nil
	case "stderr":
		return log.NewWriterSink(colorable.NewColorableStderr()), nil
	case "zap":
		z, err := zap.NewDevelopment()
		if err != nil {
			return nil, errors.Wrap(err, "build zap logger")
		}
		zl := log.InfoLevel
		if s.Level != "" {
			zl, _ = log.ParseLevel(s.Level)
		}
		return zapsink.New(z, zapsink.WithZapLevel(zapsink.ZapLevel(zl))), nil
	default:
		return nil, errors.Wrapf(ErrUnknownSink, "%q", s.Type)
	}
}

// Apply validates c and configures m with it. The returned map holds the
// handle of every sink by name (sinks without a name are keyed by type and
// index, e.g. "console#0").
func (c Config) Apply(m *log.Manager, opts ...ApplyOption) (map[string]log.SinkHandle, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var o applyOptions
	for _, opt := range opts {
		opt(&o)
	}
	sinkCfgs := c.Sinks
	if len(sinkCfgs) == 0 {
		sinkCfgs = []SinkConfig{{Name: "console", Type: "console"}}
	}
	sinks := make([]log.Sink, len(sinkCfgs))
	for i, sc := range sinkCfgs {
		s, err := newSink(sc, o)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	level, _ := log.ParseLevel(c.Level)
	symbols, _ := c.symbolStrategy()
	formatter, _ := c.formatter()

	m.SetDefaultLevel(level)
	m.SetSymbolStrategy(symbols)
	m.SetTextFormatter(formatter)
	handles := m.Configure(sinks...)

	byName := make(map[string]log.SinkHandle, len(handles))
	for i, sc := range sinkCfgs {
		name := sc.Name
		if name == "" {
			name = sc.Type + "#" + strconv.Itoa(i)
		}
		byName[name] = handles[i]
		if sc.Level != "" {
			l, _ := log.ParseLevel(sc.Level)
			m.SetSinkLevel(l, handles[i])
		}
	}
	return byName, nil
}

// CategoryLevel returns the override configured for a category name. When
// several patterns match, the longest pattern wins; ties go to the
// lexically smaller one.
func (c Config) CategoryLevel(name string) (log.Level, bool) {
	patterns := make([]string, 0, len(c.Categories))
	for p := range c.Categories {
		patterns = append(patterns, p)
	}
	sort.Slice(patterns, func(i, j int) bool {
		if len(patterns[i]) != len(patterns[j]) {
			return len(patterns[i]) > len(patterns[j])
		}
		return patterns[i] < patterns[j]
	})
	for _, p := range patterns {
		ok, err := doublestar.Match(p, name)
		if err != nil || !ok {
			continue
		}
		l, err := log.ParseLevel(c.Categories[p])
		if err != nil {
			continue
		}
		return l, true
	}
	return 0, false
}

// Category returns a category named name carrying its configured override.
func (c Config) Category(name string) *log.NamedCategory {
	cat := log.NewCategory(name)
	if l, ok := c.CategoryLevel(name); ok {
		cat.SetLevel(l)
	}
	return cat
}

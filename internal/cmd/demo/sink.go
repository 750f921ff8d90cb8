package demo

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/rzbill/squidlog/pkg/log"
)

var levelColors = map[log.Level]color.Attribute{
	log.DebugLevel: color.FgHiBlack,
	log.InfoLevel:  color.FgCyan,
	log.WarnLevel:  color.FgYellow,
	log.ErrorLevel: color.FgRed,
	log.FatalLevel: color.FgHiMagenta,
}

// consoleSink renders "<level>:<payload>" and masks "hello".
type consoleSink struct {
	mu     sync.Mutex
	out    io.Writer
	color  bool
	filter func(string) string
}

func newConsoleSink(out io.Writer, colored bool) *consoleSink {
	return &consoleSink{
		out:    out,
		color:  colored,
		filter: log.ReplaceFilter("hello", "<FILTERED>"),
	}
}

func (s *consoleSink) FormatRecord(r log.Record) (string, bool) {
	level := r.Level.String()
	if attr, ok := levelColors[r.Level]; ok && s.color {
		c := color.New(attr)
		c.EnableColor()
		level = c.Sprint(level)
	}
	return level + ":" + r.Text, true
}

func (s *consoleSink) FilterText(text string) string { return s.filter(text) }

func (s *consoleSink) Print(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.out, text)
}

package log_test

import (
	"sync"

	"github.com/rzbill/squidlog/pkg/log"
)

// memSink records printed lines.
type memSink struct {
	mu     sync.Mutex
	lines  []string
	filter func(string) string
}

func (s *memSink) Print(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, text)
}

func (s *memSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// customSink renders "<prefix><payload>" and applies an optional filter.
type customSink struct {
	memSink
	prefix string
}

func (s *customSink) FormatRecord(r log.Record) (string, bool) {
	return s.prefix + r.Text, true
}

func (s *customSink) FilterText(text string) string {
	if s.filter == nil {
		return text
	}
	return s.filter(text)
}

type panicSink struct{}

func (panicSink) Print(string) { panic("broken sink") }

package demo

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-colorable"

	"github.com/rzbill/squidlog/pkg/log"
)

// Options configures Run.
type Options struct {
	// Manager defaults to a fresh manager.
	Manager *log.Manager
	// Out defaults to standard output.
	Out   io.Writer
	Color bool
	// Message is logged at every level by the Default category.
	Message string
}

// Run configures the manager the way the reference app does and logs
// Message once per level. It stops early if ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	m := opts.Manager
	if m == nil {
		m = log.NewManager()
	}
	out := opts.Out
	if out == nil {
		out = colorable.NewColorable(os.Stdout)
	}
	msg := opts.Message
	if msg == "" {
		msg = "hello world."
	}

	console := m.Configure(newConsoleSink(out, opts.Color))[0]
	m.SetDefaultLevel(log.DebugLevel)
	m.SetDefaultLevel(log.InfoLevel)
	m.SetSinkLevel(log.ErrorLevel, console)
	m.SetSymbolStrategy(log.LetterSymbols{})
	m.SetTextFormatter(log.PayloadFormatter{})

	ika := m.Named(log.DefaultCategoryName)
	for _, emit := range []func(any){ika.Debug, ika.Info, ika.Warn, ika.Error, ika.Fatal} {
		if err := ctx.Err(); err != nil {
			return err
		}
		emit(msg)
	}

	network := log.NewCategory("Network")
	network.SetLevel(log.ErrorLevel)
	m.Logger(network).Warn("network warnings are muted")
	return nil
}

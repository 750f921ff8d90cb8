package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rzbill/squidlog/internal/cmd/demo"
	logpkg "github.com/rzbill/squidlog/pkg/log"
)

func main() {
	// initialize the process-wide manager for the CLI's own output
	// Respect SQUID_LOG_LEVEL before any config file is applied
	manager := logpkg.Default()
	if parsed, err := logpkg.ParseLevel(os.Getenv("SQUID_LOG_LEVEL")); err == nil {
		manager.SetDefaultLevel(parsed)
	}
	logger := manager.Named("squid")

	// Redirect standard library logs to our logger
	restore := logpkg.RedirectStdLog(logger)
	defer restore()

	rootCmd := &cobra.Command{
		Use:           "squid",
		Short:         "squidlog CLI",
		Long:          "squid exercises the squidlog façade: replay the reference configuration or log through a config file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(demo.NewDemoCommand())
	rootCmd.AddCommand(demo.NewEmitCommand(manager))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		cancel()
		os.Exit(1)
	}
}

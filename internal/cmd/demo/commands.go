package demo

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	cfgpkg "github.com/rzbill/squidlog/internal/config"
	"github.com/rzbill/squidlog/pkg/log"
)

// NewDemoCommand constructs the `demo` command.
func NewDemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the reference logging configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			colored, _ := cmd.Flags().GetBool("color")
			message, _ := cmd.Flags().GetString("message")
			return Run(cmd.Context(), Options{
				Out:     cmd.OutOrStdout(),
				Color:   colored,
				Message: message,
			})
		},
	}
	cmd.Flags().Bool("color", isatty.IsTerminal(os.Stdout.Fd()), "Colour level names")
	cmd.Flags().String("message", "hello world.", "Message logged at every level")
	return cmd
}

// NewEmitCommand constructs the `emit` command. It logs through m after
// applying the file/env configuration to it; console sinks write to the
// command's output.
func NewEmitCommand(m *log.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emit [message...]",
		Short: "Log one message through the configured sinks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			category, _ := cmd.Flags().GetString("category")
			levelName, _ := cmd.Flags().GetString("level")

			level, err := log.ParseLevel(levelName)
			if err != nil {
				return fmt.Errorf("invalid --level: %w", err)
			}
			if path == "" {
				path = cfgpkg.DefaultPath()
			}
			cfg, err := cfgpkg.Load(path)
			if err != nil {
				return err
			}
			cfgpkg.FromEnv(&cfg)
			if _, err := cfg.Apply(m, cfgpkg.WithConsole(cmd.OutOrStdout())); err != nil {
				return err
			}
			m.Logger(cfg.Category(category)).Log(level, strings.Join(args, " "))
			return nil
		},
	}
	cmd.Flags().String("config", os.Getenv("SQUID_CONFIG"), "Config file (json, json5 or yaml); defaults to ./squid.yaml or $XDG_CONFIG_HOME/squid/")
	cmd.Flags().String("category", log.DefaultCategoryName, "Category name")
	cmd.Flags().String("level", "info", "Level: debug|info|warn|error|fatal|none")
	return cmd
}

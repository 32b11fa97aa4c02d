// Package cli wires the formbuilder commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/logging"
)

// app carries state shared by the subcommands.
type app struct {
	logLevel  string
	logFormat string
	logger    *zap.Logger
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

// NewRootCommand constructs the `formbuilder` command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Build and render HTML forms from definitions, tables and OpenAPI documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = logging.New(a.logLevel, logging.ParseFormat(a.logFormat), cmd.ErrOrStderr())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log().Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", envOr(logging.EnvLevel, "INFO"), "log level (DEBUG, INFO, WARN, ERROR)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", envOr(logging.EnvFormat, string(logging.FormatConsole)), "log format (CONSOLE, JSON)")

	cmd.AddCommand(newRenderCommand(a))
	cmd.AddCommand(newTableCommand(a))
	cmd.AddCommand(newOpenAPICommand(a))
	cmd.AddCommand(newFillCommand(a))
	cmd.AddCommand(newServeCommand(a))
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/facet/internal/core"
)

// RootOptions holds global flags plus the loaded configuration.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	Production bool
	Silent     bool
	LogLevel   slog.Level
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the facet CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "facet",
		Short: "facet - a component runtime",
		Long: `facet builds components from a constructor whose behaviour table is
composed from capabilities, extends it with plugins, and records every
lifecycle hook and event on a replayable timeline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.applyConfig(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", defaultFormat, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: ./facet.yaml)")

	cmd.AddCommand(NewComposeCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewPluginsCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// applyConfig merges facet.yaml and FACET_* values into opts. A flag set
// on the command line wins over both.
func (o *RootOptions) applyConfig(cmd *cobra.Command) error {
	cfg, err := LoadConfig(o.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if f := cmd.Flag("format"); (f == nil || !f.Changed) && cfg.Format != "" {
		o.Format = cfg.Format
	}
	o.Production = cfg.Production
	o.Silent = cfg.Silent
	o.LogLevel = parseLogLevel(cfg.LogLevel)

	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}
	return nil
}

// constructorOptions translates the CLI configuration into runtime options.
func (o *RootOptions) constructorOptions(cmd *cobra.Command) []core.Option {
	return []core.Option{
		core.WithLogger(newLogger(o, cmd.ErrOrStderr())),
		core.WithProduction(o.Production),
		core.WithSilent(o.Silent),
	}
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/facet/internal/core"
	"github.com/roach88/facet/internal/manifest"
)

// ComposeOptions holds flags for the compose command.
type ComposeOptions struct {
	*RootOptions
	Plugins []string
}

// MethodEntry is one row of the behaviour table.
type MethodEntry struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// ComposeResult describes a composed constructor.
type ComposeResult struct {
	Capabilities []string      `json:"capabilities"`
	Plugins      []string      `json:"plugins"`
	Methods      []MethodEntry `json:"methods"`
}

// NewComposeCommand creates the compose command.
func NewComposeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ComposeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Show the composed behaviour table",
		Long: `Compose a constructor from the standard capabilities and print its
behaviour table: every method name and the capability that defined it.

Builtin plugins named with --plugin are installed first, so their methods
show up with source "plugin".

Examples:
  facet compose
  facet compose --plugin counter --plugin inspect
  facet compose --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Plugins, "plugin", "p", nil, "builtin plugin to install (repeatable)")

	return cmd
}

func runCompose(opts *ComposeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	ctor := core.NewConstructor("Facet", opts.constructorOptions(cmd)...)
	installed := make([]string, 0, len(opts.Plugins))
	for _, name := range opts.Plugins {
		p, ok := manifest.LookupPlugin(name)
		if !ok {
			_ = formatter.Error(manifest.ErrCodeUnknownPlugin, fmt.Sprintf("unknown plugin %q", name), nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown plugin %q", name))
		}
		if _, err := ctor.Use(p); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to install plugin %s", name), err)
		}
		installed = append(installed, name)
		formatter.VerboseLog("installed plugin %s", name)
	}

	result := describeConstructor(ctor)
	result.Plugins = installed

	if formatter.JSON() {
		return formatter.Success(result)
	}
	return outputComposeText(formatter.Writer, result)
}

func describeConstructor(ctor *core.Constructor) ComposeResult {
	proto := ctor.Prototype()
	names := proto.Names()
	methods := make([]MethodEntry, 0, len(names))
	for _, name := range names {
		methods = append(methods, MethodEntry{Name: name, Source: proto.Source(name)})
	}
	return ComposeResult{
		Capabilities: ctor.Capabilities(),
		Methods:      methods,
	}
}

func outputComposeText(w io.Writer, result ComposeResult) error {
	fmt.Fprintf(w, "Capabilities: %v\n", result.Capabilities)
	if len(result.Plugins) > 0 {
		fmt.Fprintf(w, "Plugins: %v\n", result.Plugins)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tSOURCE")
	for _, m := range result.Methods {
		fmt.Fprintf(tw, "%s\t%s\n", m.Name, m.Source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d method(s)\n", len(result.Methods))
	return nil
}

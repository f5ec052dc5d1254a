package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/facet/internal/ir"
)

// VersionInfo is the output of the version command.
type VersionInfo struct {
	Runtime string `json:"runtime"`
	Schema  string `json:"schema"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print the version number",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			info := VersionInfo{Runtime: ir.RuntimeVersion, Schema: ir.SchemaVersion}
			if formatter.JSON() {
				return formatter.Success(info)
			}
			return formatter.Success(fmt.Sprintf("facet v%s (schema %s)", info.Runtime, info.Schema))
		},
	}
}

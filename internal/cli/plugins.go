package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/facet/internal/manifest"
)

// PluginInfo describes one builtin plugin.
type PluginInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewPluginsCommand creates the plugins command.
func NewPluginsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List builtin plugins",
		Long: `List the plugins a manifest may name in its "plugins" field.
Each is installed at most once per constructor.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			builtins := manifest.Builtins()
			infos := make([]PluginInfo, 0, len(builtins))
			for _, p := range builtins {
				infos = append(infos, PluginInfo{Name: p.PluginName(), Description: p.Description()})
			}

			if formatter.JSON() {
				return formatter.Success(infos)
			}
			tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\n", info.Name, info.Description)
			}
			return tw.Flush()
		},
	}
}

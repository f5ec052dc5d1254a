package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/facet/internal/ir"
	"github.com/roach88/facet/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database  string
	Component string // optional uid filter
	Kind      string // optional event kind filter
}

// TraceResult holds a recorded timeline.
type TraceResult struct {
	Components []store.ComponentSummary `json:"components"`
	Timeline   []ir.TimelineEvent       `json:"timeline"`
	Stats      TraceStats               `json:"stats"`
}

// TraceStats summarises the whole database, ignoring filters.
type TraceStats struct {
	TotalEvents int                  `json:"total_events"`
	LastSeq     int64                `json:"last_seq"`
	ByKind      map[ir.EventKind]int `json:"by_kind"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show a recorded timeline",
		Long: `Read the timeline recorded by "facet run --record" and print it in seq
order, together with the components it mentions and per-kind counts.

Examples:
  facet trace --db ./facet.db
  facet trace --db ./facet.db --component 0190f2c4-...
  facet trace --db ./facet.db --kind emit --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Component, "component", "", "only events of this component uid")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "only events of this kind (hook|emit|warn|plugin|error)")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Kind != "" && !ir.ValidEventKinds[ir.EventKind(opts.Kind)] {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown event kind %q", opts.Kind))
	}
	if _, err := os.Stat(opts.Database); err != nil {
		return WrapExitError(ExitCommandError, "database not found", err)
	}

	st, err := store.Open(opts.Database, store.ReadOnly())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var events []ir.TimelineEvent
	if opts.Component != "" {
		events, err = st.ReadComponent(ctx, opts.Component)
	} else {
		events, err = st.ReadTimeline(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read timeline", err)
	}
	if opts.Kind != "" {
		events = slices.DeleteFunc(events, func(ev ir.TimelineEvent) bool {
			return string(ev.Kind) != opts.Kind
		})
	}

	components, err := st.ReadComponents(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read components", err)
	}
	counts, err := st.CountByKind(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to count events", err)
	}
	last, err := st.LastSeq(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read timeline", err)
	}

	result := TraceResult{
		Components: components,
		Timeline:   events,
		Stats:      TraceStats{LastSeq: last, ByKind: counts},
	}
	for _, n := range counts {
		result.Stats.TotalEvents += n
	}

	if formatter.JSON() {
		return formatter.Success(result)
	}
	return outputTraceText(formatter.Writer, result)
}

func outputTraceText(w io.Writer, result TraceResult) error {
	if result.Stats.TotalEvents == 0 {
		fmt.Fprintln(w, "No events recorded.")
		return nil
	}

	fmt.Fprintf(w, "Components (%d):\n", len(result.Components))
	for _, c := range result.Components {
		fmt.Fprintf(w, "  %s %s (%d events)\n", c.UID, c.Name, c.Events)
	}

	fmt.Fprintf(w, "\nTimeline (%d events):\n", len(result.Timeline))
	if err := writeTimeline(w, result.Timeline, true); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nStats: %d events, last seq %d\n", result.Stats.TotalEvents, result.Stats.LastSeq)
	kinds := make([]string, 0, len(result.Stats.ByKind))
	for k := range result.Stats.ByKind {
		kinds = append(kinds, string(k))
	}
	slices.Sort(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %s: %d\n", k, result.Stats.ByKind[ir.EventKind(k)])
	}
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/facet/internal/core"
	"github.com/roach88/facet/internal/ir"
	"github.com/roach88/facet/internal/manifest"
	"github.com/roach88/facet/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Component string
	Database  string
	Props     []string // key=value
	Sets      []string // key=value, applied after mount
	Emits     []string // event names, emitted after the sets
}

// RunResult is the outcome of mounting one component.
type RunResult struct {
	Component string               `json:"component"`
	UID       string               `json:"uid"`
	Hash      string               `json:"hash"`
	Render    string               `json:"render,omitempty"`
	Data      ir.Object            `json:"data"`
	Timeline  []ir.TimelineEvent   `json:"timeline"`
	Counts    map[ir.EventKind]int `json:"counts,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <manifest>",
		Short: "Create and mount a component from a manifest",
		Long: `Create a component from its manifest definition, mount it, apply any
--set and --emit steps, flush pending updates and print the rendered
output together with the timeline.

Values for --prop and --set are parsed as YAML scalars, so 3 is a number,
true a boolean and anything else a string.

With --record the timeline is appended to a SQLite database; the logical
clock continues from the last recorded seq.

Examples:
  facet run ./components --component counter
  facet run ./components --component todo-item --prop label=milk --set done=true
  facet run ./components --component counter --record ./facet.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponent(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Component, "component", "c", "", "component name (optional when the manifest has one)")
	cmd.Flags().StringVar(&opts.Database, "record", "", "append the timeline to this SQLite database")
	cmd.Flags().StringArrayVar(&opts.Props, "prop", nil, "prop value as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Sets, "set", nil, "data update as key=value after mount (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Emits, "emit", nil, "event to emit after mount (repeatable)")

	return cmd
}

func runComponent(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	def, err := resolveDefinition(path, opts.Component)
	if err != nil {
		code, message := splitLoadError(err)
		_ = formatter.Error(code, message, nil)
		return WrapExitError(ExitCommandError, "failed to load component", err)
	}
	formatter.VerboseLog("component %s from %s", def.Name, path)

	options := def.Options()
	if len(opts.Props) > 0 {
		props, err := parseAssignments(opts.Props)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --prop", err)
		}
		options.PropsData = options.PropsData.Clone()
		for _, a := range props {
			options.PropsData[a.key] = a.value
		}
	}
	sets, err := parseAssignments(opts.Sets)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --set", err)
	}

	rec := core.NewMemoryRecorder()
	ctorOpts := opts.constructorOptions(cmd)
	var recorder core.Recorder = rec
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		last, err := st.LastSeq(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read timeline", err)
		}
		formatter.VerboseLog("recording to %s from seq %d", opts.Database, last)
		recorder = core.MultiRecorder{rec, st}
		ctorOpts = append(ctorOpts, core.WithClock(core.NewClockAt(last)))
	}
	ctorOpts = append(ctorOpts, core.WithRecorder(recorder))

	ctor := core.NewConstructor("Facet", ctorOpts...)
	if err := manifest.Install(ctor, def); err != nil {
		return WrapExitError(ExitCommandError, "failed to install plugins", err)
	}

	vm := ctor.New(options)
	if err := driveComponent(vm, sets, opts.Emits); err != nil {
		_ = formatter.Error(runtimeCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, fmt.Sprintf("component %s failed", def.Name), err)
	}
	ctor.Flush()

	result := RunResult{
		Component: def.Name,
		UID:       vm.UID(),
		Timeline:  rec.Events(),
		Counts:    countKinds(rec.Events()),
	}
	if hash, err := def.Hash(); err == nil {
		result.Hash = hash
	}
	if data, err := vm.Data(); err == nil {
		result.Data = data.Clone()
	}
	if vnode := vm.VNode(); vnode != nil {
		result.Render = vnode.String()
	}

	if formatter.JSON() {
		return formatter.Success(result)
	}
	return outputRunText(formatter.Writer, result)
}

// resolveDefinition loads the manifest and picks the named component. An
// empty name is allowed when the manifest defines exactly one.
func resolveDefinition(path, name string) (manifest.Definition, error) {
	loaded, errs := manifest.Load(path, manifest.LoadModeFailFast)
	if len(errs) > 0 {
		return manifest.Definition{}, errs[0]
	}
	if problems := manifest.Validate(loaded.Definitions); len(problems) > 0 {
		return manifest.Definition{}, errors.Join(problems...)
	}
	if name == "" {
		if len(loaded.Definitions) != 1 {
			return manifest.Definition{}, &manifest.LoadError{
				Code:    manifest.ErrCodeNotFound,
				Message: fmt.Sprintf("--component is required; manifest defines %v", loaded.Names()),
			}
		}
		return loaded.Definitions[0], nil
	}
	def, ok := loaded.Lookup(name)
	if !ok {
		return manifest.Definition{}, &manifest.LoadError{
			Code:    manifest.ErrCodeNotFound,
			Message: fmt.Sprintf("component %q not found; manifest defines %v", name, loaded.Names()),
		}
	}
	return def, nil
}

func driveComponent(vm *core.Component, sets []assignment, emits []string) error {
	if err := vm.Mount(); err != nil {
		return err
	}
	for _, a := range sets {
		if err := vm.Set(a.key, a.value); err != nil {
			return err
		}
	}
	for _, event := range emits {
		if err := vm.Emit(event); err != nil {
			return err
		}
	}
	return nil
}

type assignment struct {
	key   string
	value ir.Value
}

// parseAssignments decodes key=value pairs in order. Values are YAML
// scalars or flow collections.
func parseAssignments(pairs []string) ([]assignment, error) {
	out := make([]assignment, 0, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		var decoded any
		if err := yaml.Unmarshal([]byte(raw), &decoded); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		v, err := ir.FromGo(decoded)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, assignment{key: key, value: v})
	}
	return out, nil
}

func runtimeCode(err error) string {
	var re *core.RuntimeError
	if errors.As(err, &re) {
		return string(re.Code)
	}
	return manifest.ErrCodeGeneric
}

func countKinds(events []ir.TimelineEvent) map[ir.EventKind]int {
	counts := make(map[ir.EventKind]int)
	for _, ev := range events {
		counts[ev.Kind]++
	}
	return counts
}

func outputRunText(w io.Writer, result RunResult) error {
	fmt.Fprintf(w, "Component: %s (%s)\n", result.Component, result.UID)
	if result.Render != "" {
		fmt.Fprintf(w, "Render: %s\n", result.Render)
	}
	data, err := ir.MarshalCanonical(result.Data)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Data: %s\n", data)
	fmt.Fprintf(w, "\nTimeline (%d events):\n", len(result.Timeline))
	return writeTimeline(w, result.Timeline, false)
}

// writeTimeline prints one event per line as "[seq] kind:name payload".
func writeTimeline(w io.Writer, events []ir.TimelineEvent, withComponent bool) error {
	for _, ev := range events {
		fmt.Fprintf(w, "  [%d] %s:%s", ev.Seq, ev.Kind, ev.Name)
		if withComponent && ev.ComponentUID != "" {
			fmt.Fprintf(w, " <%s %s>", ev.ComponentName, ev.ComponentUID)
		}
		if len(ev.Payload) > 0 {
			payload, err := ir.MarshalCanonical(ev.Payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, " %s", payload)
		}
		fmt.Fprintln(w)
	}
	return nil
}

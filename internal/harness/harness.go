package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/roach88/facet/internal/core"
	"github.com/roach88/facet/internal/ir"
	"github.com/roach88/facet/internal/manifest"
	"github.com/roach88/facet/internal/testutil"
)

// Harness is the scenario execution engine.
// It runs one scenario against a fresh constructor with a deterministic
// clock and uid generator.
type Harness struct {
	ctor   *core.Constructor
	rec    *core.MemoryRecorder
	vm     *core.Component
	logger *slog.Logger
}

// Option configures a run.
type Option func(*runConfig)

type runConfig struct {
	logger   *slog.Logger
	recorder core.Recorder
}

// WithLogger routes runtime logs (including unhandled warnings) to l.
// Defaults to discarding them.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = l
	}
}

// WithRecorder copies every timeline event to r as well, e.g. a store.
func WithRecorder(r core.Recorder) Option {
	return func(c *runConfig) {
		c.recorder = r
	}
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Load and validate the manifest, find the component definition
//  2. Build a constructor and install the definition's plugins
//  3. Create the component with the scenario's props
//  4. Execute steps, then flush so the final state is settled
//  5. Evaluate assertions against the timeline and final state
//
// An error is returned only when the scenario cannot run at all; step and
// assertion failures are reported through Result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	def, err := loadDefinition(scenario)
	if err != nil {
		return nil, err
	}

	rec := core.NewMemoryRecorder()
	var recorder core.Recorder = rec
	if cfg.recorder != nil {
		recorder = core.MultiRecorder{rec, cfg.recorder}
	}

	ctor := core.NewConstructor("Facet",
		core.WithLogger(cfg.logger),
		core.WithUIDGenerator(testutil.NewFixedUIDGenerator("vm")),
		core.WithClock(testutil.NewDeterministicClock()),
		core.WithRecorder(recorder),
	)
	if err := manifest.Install(ctor, def); err != nil {
		return nil, fmt.Errorf("failed to install plugins: %w", err)
	}

	options := def.Options()
	if len(scenario.Props) > 0 {
		props, err := ir.FromGo(scenario.Props)
		if err != nil {
			return nil, fmt.Errorf("invalid props: %w", err)
		}
		options.PropsData = options.PropsData.Clone()
		maps.Copy(options.PropsData, props.(ir.Object))
	}

	h := &Harness{
		ctor:   ctor,
		rec:    rec,
		vm:     ctor.New(options),
		logger: cfg.logger,
	}

	result := NewResult()
	result.Component = h.vm.UID()
	h.executeSteps(scenario.Steps, result)
	ctor.Flush()

	result.Trace = rec.Events()
	if data, err := h.vm.Data(); err == nil {
		result.Data = data.Clone()
	}
	if vnode := h.vm.VNode(); vnode != nil {
		result.Render = vnode.String()
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func loadDefinition(scenario *Scenario) (manifest.Definition, error) {
	loaded, errs := manifest.Load(scenario.Manifest, manifest.LoadModeFailFast)
	if len(errs) > 0 {
		return manifest.Definition{}, fmt.Errorf("failed to load manifest: %w", errors.Join(errs...))
	}
	if errs := manifest.Validate(loaded.Definitions); len(errs) > 0 {
		return manifest.Definition{}, fmt.Errorf("invalid manifest: %w", errors.Join(errs...))
	}
	def, ok := loaded.Lookup(scenario.Component)
	if !ok {
		return manifest.Definition{}, fmt.Errorf("component %q not found in %s (have %v)", scenario.Component, scenario.Manifest, loaded.Names())
	}
	return def, nil
}

// executeSteps runs every step in order. A failing step is recorded and
// execution continues so the trace shows everything that happened.
func (h *Harness) executeSteps(steps []Step, result *Result) {
	for i, step := range steps {
		got, err := h.execute(step)
		if msg := checkStep(step, got, err); msg != "" {
			result.AddError(fmt.Sprintf("steps[%d] (%s): %s", i, step.Action, msg))
		}
		h.logger.Debug("step completed",
			"step", i,
			"action", step.Action,
			"error", err,
		)
	}
}

func (h *Harness) execute(step Step) (any, error) {
	vm := h.vm
	switch step.Action {
	case StepMount:
		return nil, vm.Mount()
	case StepSet:
		return nil, vm.Set(step.Key, step.Value)
	case StepDelete:
		return nil, vm.Delete(step.Key)
	case StepEmit:
		return nil, vm.Emit(step.Event, step.Args...)
	case StepCall:
		return vm.Call(step.Method, step.Args...)
	case StepFlush:
		h.ctor.Flush()
		return nil, nil
	case StepForceUpdate:
		return nil, vm.ForceUpdate()
	case StepDestroy:
		return nil, vm.Destroy()
	}
	return nil, fmt.Errorf("unknown action %q", step.Action)
}

// checkStep compares a step outcome with its expectations and returns a
// failure message, or "" when the step behaved.
func checkStep(step Step, got any, err error) string {
	if step.Error != "" {
		var re *core.RuntimeError
		switch {
		case err == nil:
			return fmt.Sprintf("expected error %s, got none", step.Error)
		case !errors.As(err, &re):
			return fmt.Sprintf("expected error %s, got %v", step.Error, err)
		case string(re.Code) != step.Error:
			return fmt.Sprintf("expected error %s, got %s", step.Error, re.Code)
		}
		return ""
	}
	if err != nil {
		return err.Error()
	}
	if step.Expect != nil && !valuesEqual(got, step.Expect) {
		return fmt.Sprintf("expected result %v, got %v", step.Expect, got)
	}
	return ""
}

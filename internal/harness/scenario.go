package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/facet/internal/ir"
)

// Scenario drives one component from a manifest through a list of steps
// and asserts on the recorded timeline and final state.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Manifest is a CUE directory or YAML manifest file.
	Manifest string `yaml:"manifest"`

	// Component names the definition to instantiate.
	Component string `yaml:"component"`

	// Props override the definition's propsData.
	Props map[string]any `yaml:"props,omitempty"`

	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operation on the component under test.
type Step struct {
	// Action is one of the Step* constants.
	Action string `yaml:"action"`

	// Key is the data key for set and delete.
	Key string `yaml:"key,omitempty"`

	// Value is the new value for set.
	Value any `yaml:"value,omitempty"`

	// Event is the event name for emit.
	Event string `yaml:"event,omitempty"`

	// Method is the behaviour-table method for call.
	Method string `yaml:"method,omitempty"`

	// Args are passed to emit or call.
	Args []any `yaml:"args,omitempty"`

	// Expect is the expected return value of call. Nil skips the check.
	Expect any `yaml:"expect,omitempty"`

	// Error is the expected runtime error code (e.g. READ_ONLY).
	Error string `yaml:"error,omitempty"`
}

// Step action constants.
const (
	StepMount       = "mount"
	StepSet         = "set"
	StepDelete      = "delete"
	StepEmit        = "emit"
	StepCall        = "call"
	StepFlush       = "flush"
	StepForceUpdate = "force_update"
	StepDestroy     = "destroy"
)

// Assertion validates trace or final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Kind is the event kind (hook, emit, warn, plugin, error) for
	// trace_contains and trace_count.
	Kind string `yaml:"kind,omitempty"`

	// Name is the event name for trace_contains and trace_count.
	Name string `yaml:"name,omitempty"`

	// Payload is the exact expected payload for trace_contains.
	Payload []any `yaml:"payload,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`

	// Events is the expected order of "kind:name" references (trace_order).
	Events []string `yaml:"events,omitempty"`

	// Expect contains expected data values (final_data, subset match).
	Expect map[string]any `yaml:"expect,omitempty"`

	// Render is the expected markup (final_render).
	Render string `yaml:"render,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalData     = "final_data"
	AssertFinalRender   = "final_render"
)

// LoadScenario reads and parses a scenario YAML file. A relative manifest
// path is resolved against the scenario file's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath is like LoadScenario but resolves the manifest
// path against basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Manifest != "" && !filepath.IsAbs(scenario.Manifest) && basePath != "" {
		scenario.Manifest = filepath.Join(basePath, scenario.Manifest)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Manifest == "" {
		return fmt.Errorf("manifest is required")
	}
	if s.Component == "" {
		return fmt.Errorf("component is required")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if _, err := os.Stat(s.Manifest); os.IsNotExist(err) {
		return fmt.Errorf("manifest not found: %s", s.Manifest)
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, s *Step) error {
	switch s.Action {
	case "":
		return fmt.Errorf("steps[%d]: action is required", index)
	case StepSet:
		if s.Key == "" {
			return fmt.Errorf("steps[%d]: key is required for set", index)
		}
	case StepDelete:
		if s.Key == "" {
			return fmt.Errorf("steps[%d]: key is required for delete", index)
		}
	case StepEmit:
		if s.Event == "" {
			return fmt.Errorf("steps[%d]: event is required for emit", index)
		}
	case StepCall:
		if s.Method == "" {
			return fmt.Errorf("steps[%d]: method is required for call", index)
		}
	case StepMount, StepFlush, StepForceUpdate, StepDestroy:
	default:
		return fmt.Errorf("steps[%d]: unknown action %q", index, s.Action)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains, AssertTraceCount:
		if a.Kind == "" || a.Name == "" {
			return fmt.Errorf("assertions[%d]: kind and name are required for %s", index, a.Type)
		}
		if !ir.ValidEventKinds[ir.EventKind(a.Kind)] {
			return fmt.Errorf("assertions[%d]: unknown event kind %q", index, a.Kind)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertTraceOrder:
		if len(a.Events) == 0 {
			return fmt.Errorf("assertions[%d]: events list is required for trace_order", index)
		}
		for _, ref := range a.Events {
			if _, _, err := parseEventRef(ref); err != nil {
				return fmt.Errorf("assertions[%d]: %w", index, err)
			}
		}
	case AssertFinalData:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_data", index)
		}
	case AssertFinalRender:
		if a.Render == "" {
			return fmt.Errorf("assertions[%d]: render is required for final_render", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

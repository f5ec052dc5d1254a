package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/facet/internal/ir"
)

// TraceSnapshot captures the observable outcome of a scenario execution.
type TraceSnapshot struct {
	ScenarioName string
	Component    string
	Trace        []ir.TimelineEvent
	Data         ir.Object
	Render       string
}

// toCanonical converts the snapshot into a value for canonical JSON.
// Component names and empty payloads are omitted to keep golden files
// small; uids identify components.
func (s *TraceSnapshot) toCanonical() ir.Object {
	trace := make(ir.Array, len(s.Trace))
	for i, ev := range s.Trace {
		entry := ir.Object{
			"seq":  ir.Int(ev.Seq),
			"kind": ir.String(ev.Kind),
			"name": ir.String(ev.Name),
		}
		if ev.ComponentUID != "" {
			entry["component"] = ir.String(ev.ComponentUID)
		}
		if len(ev.Payload) > 0 {
			entry["payload"] = ev.Payload
		}
		trace[i] = entry
	}

	out := ir.Object{
		"scenario_name": ir.String(s.ScenarioName),
		"component":     ir.String(s.Component),
		"trace":         trace,
		"data":          s.Data.Clone(),
	}
	if s.Render != "" {
		out["render"] = ir.String(s.Render)
	}
	return out
}

// MarshalSnapshot returns the canonical JSON form of a result, the bytes
// golden files hold.
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Component:    result.Component,
		Trace:        result.Trace,
		Data:         result.Data,
		Render:       result.Render,
	}
	return ir.MarshalCanonical(snapshot.toCanonical())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return result, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
	return nil
}

// Package harness runs component scenarios and checks the resulting
// timeline.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: counter_increments
//	description: "Incrementing the counter re-renders it"
//	manifest: ../components        # CUE directory or YAML file
//	component: counter
//	props: { label: "Clicks" }     # overrides the definition's propsData
//	steps:
//	  - action: mount
//	  - action: call
//	    method: $increment
//	    args: [count]
//	    expect: 1
//	  - action: flush
//	assertions:
//	  - type: trace_contains
//	    kind: emit
//	    name: changed
//	    payload: [1, 0]
//	  - type: trace_order
//	    events: ["hook:mounted", "emit:changed", "hook:updated"]
//	  - type: final_data
//	    expect: { count: 1 }
//
// The manifest path is resolved relative to the scenario file.
//
// # Assertion Types
//
//   - trace_contains: an event of kind/name (and payload, when given) was recorded
//   - trace_order: "kind:name" references appear in this order, not necessarily adjacent
//   - trace_count: an event of kind/name was recorded exactly N times
//   - final_data: the component's data holds the expected values (subset match)
//   - final_render: the last rendered tree prints as the expected markup
//
// # Deterministic Testing
//
// Every run uses a fresh constructor with a DeterministicClock, uids from a
// FixedUIDGenerator ("vm-1", "vm-2", ...) and an in-memory recorder, so the
// same scenario always produces the same timeline. RunWithGolden compares
// that timeline, in canonical JSON, against testdata/golden/<name>.golden.
package harness

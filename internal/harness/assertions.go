package harness

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/facet/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string             // Assertion type for categorization
	Expected string             // Human-readable expected outcome
	Actual   string             // Human-readable actual outcome
	Trace    []ir.TimelineEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s:%s %s\n", ev.Seq, ev.Kind, ev.Name, formatPayload(ev.Payload))
		}
	}
	return buf.String()
}

func formatPayload(p ir.Array) string {
	if len(p) == 0 {
		return ""
	}
	b, err := ir.MarshalCanonical(p)
	if err != nil {
		return fmt.Sprintf("%v", p)
	}
	return string(b)
}

// parseEventRef splits a "kind:name" reference at the first colon, so
// "emit:todo:done" names the emit event "todo:done".
func parseEventRef(ref string) (ir.EventKind, string, error) {
	kind, name, ok := strings.Cut(ref, ":")
	if !ok || name == "" {
		return "", "", fmt.Errorf("event reference %q must be kind:name", ref)
	}
	if !ir.ValidEventKinds[ir.EventKind(kind)] {
		return "", "", fmt.Errorf("event reference %q has unknown kind %q", ref, kind)
	}
	return ir.EventKind(kind), name, nil
}

func matches(ev ir.TimelineEvent, kind ir.EventKind, name string) bool {
	return ev.Kind == kind && ev.Name == name
}

// assertTraceContains checks that an event of the given kind and name was
// recorded, with exactly the given payload when one is specified.
func assertTraceContains(trace []ir.TimelineEvent, a Assertion) error {
	kind := ir.EventKind(a.Kind)
	for _, ev := range trace {
		if !matches(ev, kind, a.Name) {
			continue
		}
		if a.Payload == nil || valuesEqual(ev.Payload, a.Payload) {
			return nil
		}
	}

	expected := fmt.Sprintf("%s:%s", a.Kind, a.Name)
	if a.Payload != nil {
		expected += fmt.Sprintf(" with payload %v", a.Payload)
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: expected,
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that the referenced events appear in the given
// order. Intervening events are allowed; each reference matches the first
// occurrence after the previous match.
func assertTraceOrder(trace []ir.TimelineEvent, a Assertion) error {
	pos := 0
	for _, ref := range a.Events {
		kind, name, err := parseEventRef(ref)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(trace[pos:], func(ev ir.TimelineEvent) bool {
			return matches(ev, kind, name)
		})
		if idx < 0 {
			actual := fmt.Sprintf("%s not found after position %d", ref, pos)
			if !slices.ContainsFunc(trace, func(ev ir.TimelineEvent) bool { return matches(ev, kind, name) }) {
				actual = fmt.Sprintf("missing event: %s", ref)
			}
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("events in order: %v", a.Events),
				Actual:   actual,
				Trace:    trace,
			}
		}
		pos += idx + 1
	}
	return nil
}

// assertTraceCount checks that the event appears exactly Count times.
func assertTraceCount(trace []ir.TimelineEvent, a Assertion) error {
	kind := ir.EventKind(a.Kind)
	count := 0
	for _, ev := range trace {
		if matches(ev, kind, a.Name) {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s:%s", a.Count, a.Kind, a.Name),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertFinalData checks expected data values (subset semantics: keys not
// in Expect are ignored). A null expectation also matches a missing key.
func assertFinalData(data ir.Object, a Assertion) error {
	keys := make([]string, 0, len(a.Expect))
	for k := range a.Expect {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		expected := a.Expect[key]
		actual, exists := data[key]
		if !exists {
			if expected == nil {
				continue
			}
			return &AssertionError{
				Type:     AssertFinalData,
				Expected: fmt.Sprintf("data key %q to exist", key),
				Actual:   fmt.Sprintf("keys present: %v", data.SortedKeys()),
			}
		}
		if !valuesEqual(actual, expected) {
			return &AssertionError{
				Type:     AssertFinalData,
				Expected: fmt.Sprintf("%s = %v", key, expected),
				Actual:   fmt.Sprintf("%s = %s", key, formatValue(actual)),
			}
		}
	}
	return nil
}

func assertFinalRender(render string, a Assertion) error {
	if render != a.Render {
		return &AssertionError{
			Type:     AssertFinalRender,
			Expected: a.Render,
			Actual:   render,
		}
	}
	return nil
}

// valuesEqual compares two values by their canonical JSON form, so YAML
// ints match ir.Int and integral floats match ints.
func valuesEqual(actual, expected any) bool {
	a, errA := ir.MarshalCanonical(actual)
	b, errB := ir.MarshalCanonical(expected)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(a, b)
}

func formatValue(v ir.Value) string {
	b, err := ir.MarshalCanonical(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertFinalData:
			err = assertFinalData(result.Data, assertion)
		case AssertFinalRender:
			err = assertFinalRender(result.Render, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}
	return errors
}

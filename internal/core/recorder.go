package core

import (
	"context"
	"errors"
	"sync"

	"github.com/roach88/facet/internal/ir"
)

// Recorder receives timeline events as they happen.
// Implemented by MemoryRecorder and store.Store.
type Recorder interface {
	Record(ctx context.Context, ev ir.TimelineEvent) error
}

// MemoryRecorder keeps the timeline in memory.
//
// Thread-safety: safe for concurrent use.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []ir.TimelineEvent
}

// NewMemoryRecorder creates an empty recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Record appends ev.
func (r *MemoryRecorder) Record(_ context.Context, ev ir.TimelineEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of the recorded timeline.
func (r *MemoryRecorder) Events() []ir.TimelineEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ir.TimelineEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Reset drops every recorded event.
func (r *MemoryRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// MultiRecorder fans events out to several recorders. Every recorder sees
// every event; failures are joined.
type MultiRecorder []Recorder

// Record implements Recorder.
func (m MultiRecorder) Record(ctx context.Context, ev ir.TimelineEvent) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// record sends one event to the configured recorder. Recorder failures are
// logged and otherwise ignored.
func (c *Constructor) record(kind ir.EventKind, vm *Component, name string, payload ir.Array) {
	if c.cfg.Recorder == nil {
		return
	}
	ev := ir.TimelineEvent{
		Seq:     c.clock.Next(),
		Kind:    kind,
		Name:    name,
		Payload: payload,
	}
	if vm != nil {
		ev.ComponentUID = vm.uid
		ev.ComponentName = vm.options.Name
	}
	if err := c.cfg.Recorder.Record(context.Background(), ev); err != nil {
		c.cfg.Logger.Warn("timeline record failed",
			"kind", kind,
			"name", name,
			"error", err,
		)
	}
}

// toPayload converts handler arguments for the timeline. Values with no
// data representation are recorded by their type name.
func toPayload(args []any) ir.Array {
	if len(args) == 0 {
		return nil
	}
	out := make(ir.Array, len(args))
	for i, a := range args {
		v, err := ir.FromGo(a)
		if err != nil {
			v = ir.String("<" + typeName(a) + ">")
		}
		out[i] = v
	}
	return out
}

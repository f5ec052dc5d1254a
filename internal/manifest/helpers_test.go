package manifest

import (
	"log/slog"
	"testing"

	"github.com/roach88/facet/internal/core"
	"github.com/roach88/facet/internal/ir"
	"github.com/roach88/facet/internal/testutil"
)

func newTestConstructor(t *testing.T) (*core.Constructor, *core.MemoryRecorder, *[]string) {
	t.Helper()
	rec := core.NewMemoryRecorder()
	warns := &[]string{}
	ctor := core.NewConstructor("test",
		core.WithLogger(slog.New(slog.DiscardHandler)),
		core.WithUIDGenerator(testutil.NewFixedUIDGenerator("vm")),
		core.WithClock(testutil.NewDeterministicClock()),
		core.WithRecorder(rec),
		core.WithWarnHandler(func(msg string, _ *core.Component, _ string) {
			*warns = append(*warns, msg)
		}),
	)
	return ctor, rec, warns
}

func emitted(rec *core.MemoryRecorder) []ir.TimelineEvent {
	var out []ir.TimelineEvent
	for _, ev := range rec.Events() {
		if ev.Kind == ir.EventEmit {
			out = append(out, ev)
		}
	}
	return out
}

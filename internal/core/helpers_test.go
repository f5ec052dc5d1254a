package core

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/roach88/facet/internal/ir"
	"github.com/roach88/facet/internal/testutil"
)

// fixture is a constructor wired with deterministic uids, an in-memory
// timeline and collecting warn/error handlers.
type fixture struct {
	ctor  *Constructor
	rec   *MemoryRecorder
	warns []string
	errs  []error
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{rec: NewMemoryRecorder()}
	base := []Option{
		WithLogger(slog.New(slog.DiscardHandler)),
		WithUIDGenerator(testutil.NewFixedUIDGenerator("vm")),
		WithClock(testutil.NewDeterministicClock()),
		WithRecorder(f.rec),
		WithWarnHandler(func(msg string, _ *Component, _ string) {
			f.warns = append(f.warns, msg)
		}),
		WithErrorHandler(func(err error, _ *Component, info string) {
			f.errs = append(f.errs, fmt.Errorf("%s: %w", info, err))
		}),
	}
	f.ctor = NewConstructor("test", append(base, opts...)...)
	return f
}

// names returns the names of recorded events of kind for uid ("" = any).
func (f *fixture) names(kind ir.EventKind, uid string) []string {
	var out []string
	for _, ev := range f.rec.Events() {
		if ev.Kind != kind {
			continue
		}
		if uid != "" && ev.ComponentUID != uid {
			continue
		}
		out = append(out, ev.Name)
	}
	return out
}

func (f *fixture) hooks(vm *Component) []string {
	return f.names(ir.EventHook, vm.UID())
}

// textRender renders <p>{prefix}{data[key]}</p>.
func textRender(prefix, key string) RenderFunc {
	return func(vm *Component) (*VNode, error) {
		v, _ := vm.Get(key)
		return &VNode{Tag: "p", Text: prefix + vm.Display(v)}, nil
	}
}

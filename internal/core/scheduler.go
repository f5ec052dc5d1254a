package core

import (
	"slices"
	"sync"
)

// maxUpdateCount bounds how often one component may re-render within a
// single Flush before it is reported as an infinite update loop.
const maxUpdateCount = 100

// scheduler batches re-renders and nextTick callbacks until Flush.
//
// Updates are deduplicated per component and run in creation order, so a
// parent always re-renders before its children. Callbacks run FIFO after
// the updates of the same round.
//
// Thread-safety: queuing is safe from any goroutine. Flush must be driven
// by the goroutine that owns the components.
type scheduler struct {
	mu        sync.Mutex
	updates   []*Component
	has       map[*Component]bool
	callbacks []func()
	flushing  bool
}

func newScheduler() *scheduler {
	return &scheduler{
		updates: make([]*Component, 0, 16),
		has:     make(map[*Component]bool),
	}
}

// queueUpdate schedules vm for re-render. Already-queued components are
// ignored.
func (s *scheduler) queueUpdate(vm *Component) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.has[vm] {
		return
	}
	s.has[vm] = true
	s.updates = append(s.updates, vm)
}

// nextTick schedules fn after the pending updates.
func (s *scheduler) nextTick(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, fn)
}

// pending returns the queue lengths.
func (s *scheduler) pending() (updates, callbacks int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.updates), len(s.callbacks)
}

// take drains both queues.
func (s *scheduler) take() ([]*Component, []func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updates, callbacks := s.updates, s.callbacks
	s.updates = make([]*Component, 0, 16)
	s.callbacks = nil
	clear(s.has)
	return updates, callbacks
}

// flush runs rounds until nothing is queued. Work queued during a round
// runs in the next round of the same flush.
func (s *scheduler) flush(c *Constructor) {
	s.mu.Lock()
	if s.flushing {
		s.mu.Unlock()
		return
	}
	s.flushing = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.flushing = false
		s.mu.Unlock()
	}()

	circular := make(map[*Component]int)
	for {
		updates, callbacks := s.take()
		if len(updates) == 0 && len(callbacks) == 0 {
			return
		}

		slices.SortFunc(updates, func(a, b *Component) int {
			return int(a.order - b.order)
		})

		var updated []*Component
		for _, vm := range updates {
			circular[vm]++
			if circular[vm] > maxUpdateCount {
				c.warnf(vm, "You may have an infinite update loop in a component render function.")
				continue
			}
			if !vm.isMounted || vm.isDestroyed {
				continue
			}
			c.callHook(vm, HookBeforeUpdate)
			if err := vm.rerender(); err != nil {
				c.handleError(err, vm, "scheduler flush")
				continue
			}
			updated = append(updated, vm)
		}

		// updated hooks run child first.
		for i := len(updated) - 1; i >= 0; i-- {
			vm := updated[i]
			if vm.isMounted && !vm.isDestroyed {
				c.callHook(vm, HookUpdated)
			}
		}

		for _, fn := range callbacks {
			c.invokeWithErrorHandling(nil, "nextTick", func() error {
				fn()
				return nil
			})
		}
	}
}

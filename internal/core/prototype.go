package core

import (
	"fmt"
	"sync"
)

// Prototype is the behaviour table shared by every instance of one
// constructor. Capabilities and plugins add methods; nothing removes them.
//
// Thread-safety: safe for concurrent use.
type Prototype struct {
	mu      sync.RWMutex
	entries map[string]protoEntry
	order   []string
}

type protoEntry struct {
	method Method
	source string
}

func newPrototype() *Prototype {
	return &Prototype{entries: make(map[string]protoEntry)}
}

// define adds name to the table. An existing name is never overwritten.
func (p *Prototype) define(name, source string, m Method) error {
	if m == nil {
		return &RuntimeError{
			Code:    ErrCodeBadArgument,
			Message: "method body is nil",
			Method:  name,
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.entries[name]; ok {
		return &RuntimeError{
			Code:    ErrCodeMethodExists,
			Message: fmt.Sprintf("already defined by %q", existing.source),
			Method:  name,
		}
	}
	p.entries[name] = protoEntry{method: m, source: source}
	p.order = append(p.order, name)
	return nil
}

// Lookup returns the method registered under name.
func (p *Prototype) Lookup(name string) (Method, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entries[name]
	return e.method, ok
}

// Has reports whether name is defined.
func (p *Prototype) Has(name string) bool {
	_, ok := p.Lookup(name)
	return ok
}

// Source returns the capability (or "plugin") that defined name.
func (p *Prototype) Source(name string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.entries[name].source
}

// Names returns method names in definition order.
func (p *Prototype) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Len returns the number of methods.
func (p *Prototype) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}

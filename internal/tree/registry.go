package tree

import (
	"fmt"
	"sync"
)

// Factory reconstructs a node of one kind from its record and attaches it to
// t. Records must arrive parents-first; Decode guarantees that order.
type Factory func(t *Tree, rec Record) (*Node, error)

// Registry maps type discriminators to their factories. It is built
// explicitly at process start; no import-time side effects.
// Safe for concurrent reads; Register should only be called during startup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with the base Node kind registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindNode, DecodeNode)
	return r
}

// Register adds a factory. Panics on a duplicate kind to surface
// misconfiguration early.
func (r *Registry) Register(kind string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; exists {
		panic(fmt.Sprintf("node registry: duplicate kind %q", kind))
	}
	r.factories[kind] = fn
}

// Get returns the factory for the given kind.
func (r *Registry) Get(kind string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, kind)
	}
	return fn, nil
}

// Kinds returns all registered discriminators.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	return out
}

// DecodeNode is the base-kind Factory: it resolves the record's parents
// against the tree, restores the state, and attaches the node.
func DecodeNode(t *Tree, rec Record) (*Node, error) {
	parents := make([]*Node, 0, len(rec.Parents))
	for _, pid := range rec.Parents {
		p, ok := t.Get(pid)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingParent, pid)
		}
		parents = append(parents, p)
	}
	state := rec.State
	if state == "" {
		state = StateCreated
	}
	if _, err := ParseState(string(state)); err != nil {
		return nil, err
	}
	kind := rec.Type
	if kind == "" {
		kind = KindNode
	}
	n := NewOfKind(kind, rec.ID, rec.UUID, parents...)
	n.state = state
	return t.Attach(n)
}

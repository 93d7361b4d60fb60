package command

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps command names to their definitions.
// Safe for concurrent reads; Register should only be called while building a
// registry, before it is published.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates a Registry holding the builtin command set plus any
// extra commands. Extras come from configuration; a config reload builds a
// fresh registry rather than mutating a live one.
func NewRegistry(extra ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command)}
	for _, c := range Builtins() {
		r.Register(c)
	}
	for _, c := range extra {
		r.Register(c)
	}
	return r
}

// Register adds a command. Panics on a duplicate name to surface
// misconfiguration early.
func (r *Registry) Register(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[c.Name]; exists {
		panic(fmt.Sprintf("command registry: duplicate name %q", c.Name))
	}
	r.commands[c.Name] = c
}

// Get returns the named command.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[name]
	return c, ok
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Endpoints returns a name→endpoint map, the shape clients list commands in.
func (r *Registry) Endpoints() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.commands))
	for name := range r.commands {
		out[name] = Endpoint(name)
	}
	return out
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.commands))
	for name := range r.commands {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

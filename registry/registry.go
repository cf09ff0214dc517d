// Package registry provides the name→agent lookup table used to resolve
// delegation targets. Registration happens at host bootstrap; during a
// delegation chain the registry is lookup-only.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/handoff/core"
)

// ErrAgentNotFound is the sentinel matched via errors.Is when a lookup
// misses. The concrete error is a *NotFoundError naming the missing key.
var ErrAgentNotFound = errors.New("agent not found in registry")

// NotFoundError reports a registry miss for a named agent.
type NotFoundError struct {
	Name string
}

// Error returns the stable, host-facing message for a registry miss. The
// exact wording is part of the delegation report contract.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Agent '%s' not found in registry", e.Name)
}

// Is reports whether target is ErrAgentNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrAgentNotFound }

// Registry is a thread-safe mapping from agent name to Agent. It has no
// side effects beyond the mapping itself.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]core.Agent
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{agents: make(map[string]core.Agent)}
}

// Register inserts or overwrites the entry for the agent's name. Last write
// wins; overwriting is documented behavior, not recommended usage.
func (r *Registry) Register(a core.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[a.Name()] = a
}

// Resolve returns the agent registered under name, or a *NotFoundError
// naming the missing key.
func (r *Registry) Resolve(name string) (core.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agents[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return a, nil
}

// Names returns all registered agent names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.agents))
	for name := range r.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered agents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.agents)
}

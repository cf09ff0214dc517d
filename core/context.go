package core

import (
	"maps"
	"sort"
)

// Well-known ActionContext keys. Hosts may add arbitrary keys; these are the
// ones the framework itself interprets.
const (
	// KeyRegistry holds the caller's registry handle. It is always dropped
	// when the engine narrows a context for a delegated call, breaking
	// unbounded recursive self-delegation by default. Hosts must re-grant
	// it explicitly to allow a callee to delegate further.
	KeyRegistry = "handoff.registry"

	// KeyCredentials holds opaque credential material forwarded per policy.
	KeyCredentials = "handoff.credentials"

	// KeyConfig holds host configuration forwarded per policy.
	KeyConfig = "handoff.config"

	// KeyDepth tracks the delegation depth of the current call chain. The
	// engine increments it at every hop and fails closed past its
	// configured maximum.
	KeyDepth = "handoff.depth"
)

// ActionContext is a scoped, immutable bag of ambient values threaded
// explicitly through a call chain instead of global state. Lookups never
// fail; absent keys are reported via the boolean return so callers can
// handle missing optional context (e.g. a missing auth token) gracefully.
//
// Every transformation (WithOverrides, Without, Narrow) returns a new,
// independent context; the receiver is never mutated. This keeps the
// boundary of trust auditable at each delegation hop: a callee only sees
// what the caller deliberately handed over.
type ActionContext struct {
	values map[string]any
}

// NewActionContext creates a context from the given values (copied).
func NewActionContext(values map[string]any) *ActionContext {
	c := &ActionContext{values: make(map[string]any, len(values))}
	maps.Copy(c.values, values)
	return c
}

// Get returns the value for key and whether it is present. It never fails.
func (c *ActionContext) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetString returns the string value for key, or "" if the key is absent or
// not a string.
func (c *ActionContext) GetString(key string) string {
	if v, ok := c.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Depth returns the delegation depth recorded under KeyDepth, or 0.
func (c *ActionContext) Depth() int {
	if v, ok := c.values[KeyDepth]; ok {
		if d, ok := v.(int); ok {
			return d
		}
	}
	return 0
}

// WithOverrides returns a new context identical to the receiver except for
// the given keys replaced (or added).
func (c *ActionContext) WithOverrides(overrides map[string]any) *ActionContext {
	values := make(map[string]any, len(c.values)+len(overrides))
	maps.Copy(values, c.values)
	maps.Copy(values, overrides)
	return &ActionContext{values: values}
}

// Without returns a new context with the given keys removed.
func (c *ActionContext) Without(keys ...string) *ActionContext {
	values := make(map[string]any, len(c.values))
	maps.Copy(values, c.values)
	for _, k := range keys {
		delete(values, k)
	}
	return &ActionContext{values: values}
}

// Narrow returns a new context containing only the given allow-listed keys.
// Keys absent from the receiver are simply not carried over.
func (c *ActionContext) Narrow(keys ...string) *ActionContext {
	values := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := c.values[k]; ok {
			values[k] = v
		}
	}
	return &ActionContext{values: values}
}

// Keys returns the sorted key set, useful for auditing a context boundary.
func (c *ActionContext) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of values held by the context.
func (c *ActionContext) Len() int { return len(c.values) }

package core

import "context"

// Agent is the capability interface implemented by every agent variant.
//
// Invoke runs one synchronous task against the handed-off memory and returns
// the resulting log. Implementations must:
//   - Respect context cancellation
//   - Treat the received log as consumed-and-returned: append to it and hand
//     it back (or return a fresh log), never swap it out from under the
//     caller in a way visible through retained aliases
//   - Return an explicit error for faults; the delegation engine converts
//     errors (and panics) into structured failure reports.
type Agent interface {
	Name() string
	Description() string
	Invoke(ctx context.Context, task string, memory *MemoryLog, actionCtx *ActionContext) (*MemoryLog, error)
}

// InvokeFunc is the signature of a bare agent invocation.
type InvokeFunc func(ctx context.Context, task string, memory *MemoryLog, actionCtx *ActionContext) (*MemoryLog, error)

// AgentFunc adapts a plain function into an Agent, the idiomatic shortcut
// for hosts that do not need a full agent type.
type AgentFunc struct {
	name        string
	description string
	fn          InvokeFunc
}

// NewAgentFunc wraps fn as an Agent with the given name and description.
func NewAgentFunc(name, description string, fn InvokeFunc) *AgentFunc {
	return &AgentFunc{name: name, description: description, fn: fn}
}

// Name returns the agent's registry name.
func (a *AgentFunc) Name() string { return a.name }

// Description returns a human-readable description of the agent's purpose.
func (a *AgentFunc) Description() string { return a.description }

// Invoke implements Agent by calling the wrapped function.
func (a *AgentFunc) Invoke(ctx context.Context, task string, memory *MemoryLog, actionCtx *ActionContext) (*MemoryLog, error) {
	return a.fn(ctx, task, memory, actionCtx)
}

// Package agent provides reusable core.Agent implementations: an embeddable
// BaseAgent carrying identity and a ModelAgent backed by a reasoning
// collaborator. Hosts with custom behavior can use core.AgentFunc instead.
package agent

import "fmt"

// BaseAgent bundles the identity helpers shared by concrete agent
// implementations. Embed it and supply an Invoke method to satisfy the
// core.Agent interface.
type BaseAgent struct {
	name        string // Registry name
	description string // Detailed description of the agent's purpose
}

// NewBaseAgent constructs a BaseAgent with a generated description
// (customizable via SetDescription).
func NewBaseAgent(name string) BaseAgent {
	return BaseAgent{
		name:        name,
		description: fmt.Sprintf("Agent %s", name),
	}
}

// Name returns the registry name for this agent.
func (b *BaseAgent) Name() string { return b.name }

// Description returns a detailed description of this agent's purpose.
func (b *BaseAgent) Description() string { return b.description }

// SetDescription updates the agent's description.
func (b *BaseAgent) SetDescription(desc string) { b.description = desc }

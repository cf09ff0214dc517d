package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/handoff/core"
	"github.com/hupe1980/handoff/model"
)

// ModelAgentOptions configures a ModelAgent instance.
//
// Use functional options with NewModelAgent to override defaults.
type ModelAgentOptions struct {
	// Instruction is the system-level prompt establishing the agent's role.
	Instruction string
	// MaxHistoryEntries caps how many trailing memory entries are rendered
	// into the prompt. Zero means all.
	MaxHistoryEntries int
}

// ModelAgent is a core.Agent backed by a reasoning collaborator. It renders
// its instruction, the handed-off memory and the task into one completion
// request and appends the collaborator's reply to the memory as an assistant
// entry — making the reply the log's terminal result.
type ModelAgent struct {
	BaseAgent
	llm               model.Model
	instruction       string
	maxHistoryEntries int
}

var _ core.Agent = (*ModelAgent)(nil)

// NewModelAgent creates a model-backed agent with sensible defaults.
func NewModelAgent(name string, llm model.Model, optFns ...func(o *ModelAgentOptions)) *ModelAgent {
	opts := ModelAgentOptions{
		Instruction:       fmt.Sprintf("You are %s, a helpful AI assistant.", name),
		MaxHistoryEntries: 20,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &ModelAgent{
		BaseAgent:         NewBaseAgent(name),
		llm:               llm,
		instruction:       opts.Instruction,
		maxHistoryEntries: opts.MaxHistoryEntries,
	}
}

// Invoke implements core.Agent.
func (a *ModelAgent) Invoke(ctx context.Context, task string, memory *core.MemoryLog, _ *core.ActionContext) (*core.MemoryLog, error) {
	resp, err := a.llm.Complete(ctx, model.Request{
		Instructions: a.instruction,
		Prompt:       a.buildPrompt(task, memory),
	})
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	if err := memory.Append(core.Entry{Kind: core.KindAssistant, Content: resp.Text}); err != nil {
		return nil, err
	}

	return memory, nil
}

// buildPrompt renders the trailing memory window and the task.
func (a *ModelAgent) buildPrompt(task string, memory *core.MemoryLog) string {
	entries := memory.Entries()
	if a.maxHistoryEntries > 0 && len(entries) > a.maxHistoryEntries {
		entries = entries[len(entries)-a.maxHistoryEntries:]
	}

	var sb strings.Builder
	if len(entries) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, e := range entries {
			sb.WriteString(string(e.Kind))
			sb.WriteString(": ")
			sb.WriteString(e.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Task:\n")
	sb.WriteString(task)
	return sb.String()
}

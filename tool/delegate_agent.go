package tool

import (
	"fmt"

	"github.com/hupe1980/handoff/engine"
)

// delegateAgentTool hands a task to another registered agent via the
// delegation engine. The model chooses the target by name and whether
// relevant memories should be shared with it.
type delegateAgentTool struct {
	engine *engine.Engine
}

// NewDelegateAgentTool constructs the delegate tool instance bound to an engine.
func NewDelegateAgentTool(e *engine.Engine) Tool { return &delegateAgentTool{engine: e} }

func (t *delegateAgentTool) Name() string { return "delegate_agent" }

func (t *delegateAgentTool) Description() string {
	return "Delegate a task to another registered agent by name. Set share_memories when the target needs relevant context from this conversation; otherwise it starts with a blank memory."
}

func (t *delegateAgentTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"agent":          map[string]any{"type": "string", "description": "Target agent name"},
			"task":           map[string]any{"type": "string", "description": "Task for the target agent"},
			"share_memories": map[string]any{"type": "boolean", "description": "Share relevant memories with the target"},
		},
		"required": []string{"agent", "task"},
	}
}

func (t *delegateAgentTool) Call(toolCtx *Context, args map[string]any) (any, error) {
	agentName, ok := args["agent"].(string)
	if !ok || agentName == "" {
		return nil, fmt.Errorf("field 'agent' must be non-empty string")
	}
	task, ok := args["task"].(string)
	if !ok || task == "" {
		return nil, fmt.Errorf("field 'task' must be non-empty string")
	}

	mode := engine.ModeIsolated
	if share, _ := args["share_memories"].(bool); share {
		mode = engine.ModeSelective
	}

	toolCtx.Logger().Info("tool.delegate.request", "agent", agentName, "mode", string(mode))

	report := t.engine.Delegate(toolCtx.Context(), engine.Request{
		Agent:   agentName,
		Task:    task,
		Mode:    mode,
		Memory:  toolCtx.Memory(),
		Context: toolCtx.ActionContext(),
	})

	// The report is returned as-is so the model sees success and error
	// details in a stable shape and can retry or fall back.
	return report, nil
}

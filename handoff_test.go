package handoff

import (
	"context"
	"testing"

	"github.com/hupe1980/handoff/core"
	"github.com/hupe1980/handoff/model"
	"github.com/hupe1980/handoff/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandoff_DelegateIsolated(t *testing.T) {
	h := New()
	h.RegisterAgent(core.NewAgentFunc("scheduler", "books meetings", func(_ context.Context, task string, memory *core.MemoryLog, _ *core.ActionContext) (*core.MemoryLog, error) {
		require.NoError(t, memory.Append(core.Entry{Kind: core.KindAssistant, Content: "booked for 3pm"}))
		return memory, nil
	}))

	report := h.Delegate(context.Background(), "scheduler", "book a 30-minute sync", nil, nil)
	require.True(t, report.Success)
	assert.Equal(t, "scheduler", report.Agent)
	assert.Equal(t, "booked for 3pm", report.Result)
}

func TestHandoff_DelegateSelectiveWithoutModel(t *testing.T) {
	h := New()
	h.RegisterAgent(core.NewAgentFunc("worker", "works", func(_ context.Context, _ string, memory *core.MemoryLog, _ *core.ActionContext) (*core.MemoryLog, error) {
		return memory, nil
	}))

	report := h.DelegateSelective(context.Background(), "worker", "t", core.NewMemoryLog(), nil)
	assert.False(t, report.Success)
	assert.Contains(t, report.Error, "selector")
}

func TestHandoff_DelegateSelectiveEndToEnd(t *testing.T) {
	judge := model.NewMockModel("judge")
	judge.AddResponse("Memory entries", `{"selected_memories": ["0"], "reasoning": "only the request matters"}`)

	store := transcript.NewInMemoryStore()
	h := New(func(o *Options) {
		o.SelectorModel = judge
		o.Transcripts = store
	})
	h.RegisterAgent(core.NewAgentFunc("summarizer", "summarizes", func(_ context.Context, _ string, memory *core.MemoryLog, _ *core.ActionContext) (*core.MemoryLog, error) {
		require.NoError(t, memory.Append(core.Entry{Kind: core.KindAssistant, Content: "summary ready"}))
		return memory, nil
	}))

	callerMemory := core.NewMemoryLog(
		core.Entry{Kind: core.KindUser, Content: "please summarize my notes"},
		core.Entry{Kind: core.KindAssistant, Content: "noise"},
	)

	report := h.DelegateSelective(context.Background(), "summarizer", "summarize", callerMemory, nil)
	require.True(t, report.Success)
	assert.Equal(t, "summary ready", report.Result)
	assert.Equal(t, 1, report.SharedMemories)
	assert.Equal(t, "only the request matters", report.SelectionReasoning)

	// 2 original + 1 audit + 2 merged (selected entry + callee reply).
	assert.Equal(t, 5, callerMemory.Len())
	assert.Len(t, store.List(), 1)
}

func TestHandoff_UnknownAgent(t *testing.T) {
	h := New()
	report := h.Delegate(context.Background(), "unknown_agent", "t", nil, nil)
	assert.Equal(t, "Agent 'unknown_agent' not found in registry", report.Error)
	assert.False(t, report.Success)
}

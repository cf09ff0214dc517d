package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionContext_GetNeverFails(t *testing.T) {
	ac := NewActionContext(map[string]any{KeyCredentials: "token-123"})

	v, ok := ac.Get(KeyCredentials)
	assert.True(t, ok)
	assert.Equal(t, "token-123", v)

	_, ok = ac.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "", ac.GetString("missing"))
}

func TestActionContext_WithOverridesIsImmutable(t *testing.T) {
	parent := NewActionContext(map[string]any{"a": 1, "b": 2})
	child := parent.WithOverrides(map[string]any{"b": 3, "c": 4})

	v, _ := parent.Get("b")
	assert.Equal(t, 2, v)
	_, ok := parent.Get("c")
	assert.False(t, ok)

	v, _ = child.Get("b")
	assert.Equal(t, 3, v)
	v, _ = child.Get("c")
	assert.Equal(t, 4, v)
}

func TestActionContext_NewCopiesInput(t *testing.T) {
	src := map[string]any{"a": 1}
	ac := NewActionContext(src)
	src["a"] = 99

	v, _ := ac.Get("a")
	assert.Equal(t, 1, v)
}

func TestActionContext_Without(t *testing.T) {
	ac := NewActionContext(map[string]any{KeyRegistry: struct{}{}, KeyConfig: "cfg"})
	restricted := ac.Without(KeyRegistry)

	_, ok := restricted.Get(KeyRegistry)
	assert.False(t, ok)
	assert.Equal(t, "cfg", restricted.GetString(KeyConfig))

	// Receiver untouched.
	_, ok = ac.Get(KeyRegistry)
	assert.True(t, ok)
}

func TestActionContext_Narrow(t *testing.T) {
	ac := NewActionContext(map[string]any{
		KeyRegistry:    struct{}{},
		KeyCredentials: "token",
		"host.extra":   true,
	})
	restricted := ac.Narrow(KeyCredentials, "never-set")

	assert.Equal(t, 1, restricted.Len())
	assert.Equal(t, "token", restricted.GetString(KeyCredentials))
	_, ok := restricted.Get(KeyRegistry)
	assert.False(t, ok)
}

func TestActionContext_Depth(t *testing.T) {
	ac := NewActionContext(nil)
	assert.Equal(t, 0, ac.Depth())

	ac = ac.WithOverrides(map[string]any{KeyDepth: 3})
	assert.Equal(t, 3, ac.Depth())
}

func TestActionContext_Keys(t *testing.T) {
	ac := NewActionContext(map[string]any{"b": 1, "a": 2})
	assert.Equal(t, []string{"a", "b"}, ac.Keys())
}

func TestAgentFunc(t *testing.T) {
	a := NewAgentFunc("echo", "echoes the task", func(_ context.Context, task string, memory *MemoryLog, _ *ActionContext) (*MemoryLog, error) {
		require.NoError(t, memory.Append(Entry{Kind: KindAssistant, Content: task}))
		return memory, nil
	})

	assert.Equal(t, "echo", a.Name())
	assert.Equal(t, "echoes the task", a.Description())

	out, err := a.Invoke(context.Background(), "ping", NewMemoryLog(), NewActionContext(nil))
	require.NoError(t, err)
	last, err := out.Last()
	require.NoError(t, err)
	assert.Equal(t, "ping", last.Content)
}

package tool

import (
	"context"
	"testing"

	"github.com/hupe1980/handoff/core"
	"github.com/hupe1980/handoff/engine"
	"github.com/hupe1980/handoff/internal/util"
	"github.com/hupe1980/handoff/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() *Context {
	return NewContext(context.Background(), core.NewMemoryLog(), core.NewActionContext(nil), nil)
}

// -------------------- Schema & Validation Tests --------------------

type sampleSchema struct {
	A string `json:"a" description:"Field A"`
	B *int   `json:"b" description:"Optional pointer field"`
	C int    `json:"c,omitempty" description:"Omit empty field"`
}

func TestCreateSchema(t *testing.T) {
	schema := util.CreateSchema(sampleSchema{})
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
	assert.Contains(t, props, "c")

	req, _ := schema["required"].([]string)
	assert.ElementsMatch(t, []string{"a"}, req)
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		"required": []any{"x"},
	}

	assert.NoError(t, util.ValidateParameters(map[string]any{"x": 5}, schema))

	err := util.ValidateParameters(map[string]any{}, schema)
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "x", vErr.Field)

	err = util.ValidateParameters(map[string]any{"x": "not-int"}, schema)
	require.Error(t, err)
	vErr, ok = err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Message, "expected type integer")
}

// -------------------- FunctionTool Tests --------------------

func TestFunctionTool_Success(t *testing.T) {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []string{"a", "b"},
	}

	sumTool := NewFunctionTool("sum", "Add numbers", params, func(_ *Context, args map[string]any) (any, error) {
		return args["a"].(float64) + args["b"].(float64), nil
	})

	res, err := sumTool.Call(testContext(), map[string]any{"a": 1.5, "b": 2.5})
	require.NoError(t, err)
	assert.Equal(t, 4.0, res)
}

func TestFunctionTool_RejectsInvalidArgs(t *testing.T) {
	params := map[string]any{
		"type":       "object",
		"properties": map[string]any{"a": map[string]any{"type": "string"}},
		"required":   []string{"a"},
	}
	echo := NewFunctionTool("echo", "Echo", params, func(_ *Context, args map[string]any) (any, error) {
		return args["a"], nil
	})

	_, err := echo.Call(testContext(), map[string]any{})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

// -------------------- DelegateAgentTool Tests --------------------

func delegateFixture(t *testing.T) Tool {
	t.Helper()
	reg := registry.New()
	reg.Register(core.NewAgentFunc("scheduler", "books meetings", func(_ context.Context, task string, memory *core.MemoryLog, _ *core.ActionContext) (*core.MemoryLog, error) {
		require.NoError(t, memory.Append(core.Entry{Kind: core.KindAssistant, Content: "booked: " + task}))
		return memory, nil
	}))
	return NewDelegateAgentTool(engine.New(reg))
}

func TestDelegateAgentTool_Call(t *testing.T) {
	dt := delegateFixture(t)

	res, err := dt.Call(testContext(), map[string]any{"agent": "scheduler", "task": "friday sync"})
	require.NoError(t, err)

	report, ok := res.(*engine.Report)
	require.True(t, ok)
	assert.True(t, report.Success)
	assert.Equal(t, "scheduler", report.Agent)
	assert.Equal(t, "booked: friday sync", report.Result)
}

func TestDelegateAgentTool_UnknownAgentReportedNotErrored(t *testing.T) {
	dt := delegateFixture(t)

	res, err := dt.Call(testContext(), map[string]any{"agent": "nobody", "task": "t"})
	require.NoError(t, err, "delegation failures are reports, not tool errors")

	report := res.(*engine.Report)
	assert.False(t, report.Success)
	assert.Equal(t, "Agent 'nobody' not found in registry", report.Error)
}

func TestDelegateAgentTool_MissingArgs(t *testing.T) {
	dt := delegateFixture(t)

	_, err := dt.Call(testContext(), map[string]any{"task": "t"})
	assert.Error(t, err)

	_, err = dt.Call(testContext(), map[string]any{"agent": "scheduler"})
	assert.Error(t, err)
}

func TestDelegateAgentTool_Schema(t *testing.T) {
	dt := delegateFixture(t)

	assert.Equal(t, "delegate_agent", dt.Name())
	params := dt.Parameters()
	props := params["properties"].(map[string]any)
	assert.Contains(t, props, "agent")
	assert.Contains(t, props, "task")
	assert.Contains(t, props, "share_memories")
}

package tool

import (
	"github.com/hupe1980/handoff/internal/util"
)

// Func is the signature executed by a FunctionTool.
type Func func(toolCtx *Context, args map[string]any) (any, error)

// FunctionTool wraps a plain function as a Tool with schema validated
// arguments. It is the quickest way to expose host capabilities to a
// function-calling model.
type FunctionTool struct {
	name        string
	description string
	parameters  map[string]any
	fn          Func
}

var _ Tool = (*FunctionTool)(nil)

// NewFunctionTool creates a FunctionTool. The parameters schema follows the
// minimal JSON Schema subset understood by util.ValidateParameters; build it
// by hand or via util.CreateSchema from a struct.
func NewFunctionTool(name, description string, parameters map[string]any, fn Func) *FunctionTool {
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// Name implements Tool.
func (t *FunctionTool) Name() string { return t.name }

// Description implements Tool.
func (t *FunctionTool) Description() string { return t.description }

// Parameters implements Tool.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// Call validates args against the schema and executes the wrapped function.
func (t *FunctionTool) Call(toolCtx *Context, args map[string]any) (any, error) {
	if err := util.ValidateParameters(args, t.parameters); err != nil {
		return nil, err
	}
	return t.fn(toolCtx, args)
}

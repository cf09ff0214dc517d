// Package tool implements the function calling surface that lets
// model-driven agents trigger structured capabilities — most importantly
// delegation to other registered agents — with schema validated arguments
// and consistent error handling.
package tool

import (
	"context"
	"fmt"

	"github.com/hupe1980/handoff/core"
	"github.com/hupe1980/handoff/internal/util"
	"github.com/hupe1980/handoff/logging"
)

// Tool defines the interface for extending agent capabilities with external functions.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define proper JSON schema for parameters
//   - Handle errors gracefully
//   - Be thread-safe if used concurrently
type Tool interface {
	// Name returns the unique identifier for this tool.
	// Names should follow function naming conventions (snake_case recommended).
	Name() string

	// Description returns a human-readable description of what this tool does.
	// It is provided to the LLM to help it decide when and how to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	Parameters() map[string]any

	// Call executes the tool with structured arguments and the invocation
	// scoped Context.
	Call(toolCtx *Context, args map[string]any) (any, error)
}

// ValidationError re-exports the internal validation error type.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}

// Context provides a constrained, auditable surface for tool implementations
// invoked by an agent: the ambient cancellation context, the calling agent's
// memory log and action context, and a logger.
type Context struct {
	ctx       context.Context
	memory    *core.MemoryLog
	actionCtx *core.ActionContext
	logger    logging.Logger
}

// NewContext constructs a tool context bound to the calling agent's scope.
// A nil logger is substituted with NoOp.
func NewContext(ctx context.Context, memory *core.MemoryLog, actionCtx *core.ActionContext, logger logging.Logger) *Context {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	if memory == nil {
		memory = core.NewMemoryLog()
	}
	if actionCtx == nil {
		actionCtx = core.NewActionContext(nil)
	}
	return &Context{ctx: ctx, memory: memory, actionCtx: actionCtx, logger: logger}
}

// Context returns the cancellation context associated with the invocation.
func (tc *Context) Context() context.Context { return tc.ctx }

// Memory returns the calling agent's memory log.
func (tc *Context) Memory() *core.MemoryLog { return tc.memory }

// ActionContext returns the calling agent's action context.
func (tc *Context) ActionContext() *core.ActionContext { return tc.actionCtx }

// Logger returns the logger associated with the invocation.
func (tc *Context) Logger() logging.Logger { return tc.logger }

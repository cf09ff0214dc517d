// Package engine orchestrates single inter-agent delegations: it resolves
// the target through the registry, narrows the caller's action context,
// builds an isolated or relevance-filtered memory, invokes the target
// synchronously and normalizes the outcome into a structured Report.
//
// Failure semantics: a registry miss or a malformed selection aborts before
// any target is invoked; invocation faults (including panics) and empty
// results are post-flight outcomes. All four are reported as structured
// failure — a failed delegation never crashes the calling agent's loop.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/handoff/core"
	"github.com/hupe1980/handoff/logging"
	"github.com/hupe1980/handoff/registry"
	"github.com/hupe1980/handoff/selector"
	"github.com/hupe1980/handoff/transcript"
)

// Mode selects how much of the caller's memory a delegated agent receives.
type Mode string

const (
	// ModeIsolated hands the target a brand-new, empty memory log.
	ModeIsolated Mode = "isolated"
	// ModeSelective hands the target a relevance-filtered subset of the
	// caller's memory, chosen by the memory selector.
	ModeSelective Mode = "selective"
)

// emptyResultError is the defined, non-exceptional terminal outcome for a
// target that returned no entries. The exact wording is part of the report
// contract.
const emptyResultError = "Agent failed to run."

// DefaultMaxDepth bounds the delegation call chain when the host does not
// configure its own limit.
const DefaultMaxDepth = 8

// Report is the normalized outcome of one delegation, rendered back into
// the calling agent's own action-result channel.
type Report struct {
	Success            bool   `json:"success"`
	Agent              string `json:"agent,omitempty"`
	Result             string `json:"result,omitempty"`
	Error              string `json:"error,omitempty"`
	SharedMemories     int    `json:"shared_memories,omitempty"`
	SelectionReasoning string `json:"selection_reasoning,omitempty"`
}

// Request describes one delegation from a caller to a named target agent.
type Request struct {
	// Agent is the registry name of the target.
	Agent string
	// Task is the instruction handed to the target.
	Task string
	// Mode defaults to ModeIsolated.
	Mode Mode
	// Memory is the caller's log. In selective mode it is the selection
	// source and receives the audit entry plus the provenance merge. May be
	// nil, in which case an empty log is used.
	Memory *core.MemoryLog
	// Context is the caller's action context. The target never receives it
	// directly; the engine derives a restricted context per the allow-list.
	// May be nil.
	Context *core.ActionContext
}

// Options configures an Engine.
type Options struct {
	// Selector judges memory relevance in selective mode. Required only if
	// ModeSelective is used.
	Selector *selector.Selector
	// Transcripts, when set, receives a record per completed delegation.
	Transcripts transcript.Store
	// Logger defaults to NoOp.
	Logger logging.Logger
	// Timeout bounds the target invocation and the collaborator call.
	// Zero means no timeout.
	Timeout time.Duration
	// MaxDepth fails a delegation closed once the call chain reaches this
	// depth. Defaults to DefaultMaxDepth.
	MaxDepth int
	// ForwardKeys is the allow-list of action-context keys carried into the
	// restricted context handed to the target. The registry key is never
	// forwarded implicitly; a host that wants a callee to delegate further
	// must add core.KeyRegistry here deliberately.
	ForwardKeys []string
}

// Engine executes delegations against a fixed registry.
type Engine struct {
	registry    *registry.Registry
	selector    *selector.Selector
	transcripts transcript.Store
	logger      logging.Logger
	timeout     time.Duration
	maxDepth    int
	forwardKeys []string
}

// New creates an Engine for the given registry.
func New(reg *registry.Registry, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Logger:      logging.NoOpLogger{},
		MaxDepth:    DefaultMaxDepth,
		ForwardKeys: []string{core.KeyCredentials, core.KeyConfig},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{
		registry:    reg,
		selector:    opts.Selector,
		transcripts: opts.Transcripts,
		logger:      opts.Logger,
		timeout:     opts.Timeout,
		maxDepth:    opts.MaxDepth,
		forwardKeys: opts.ForwardKeys,
	}
}

// Delegate executes one inter-agent call. It blocks until the target returns
// and never panics or propagates an error; every outcome is a Report.
func (e *Engine) Delegate(ctx context.Context, req Request) *Report {
	start := time.Now()
	delegationID := uuid.NewString()

	if req.Mode == "" {
		req.Mode = ModeIsolated
	}
	if req.Memory == nil {
		req.Memory = core.NewMemoryLog()
	}
	if req.Context == nil {
		req.Context = core.NewActionContext(nil)
	}

	report := e.delegate(ctx, req)

	e.record(delegationID, req, report, start)
	e.logger.Info("delegation completed",
		"delegation_id", delegationID,
		"agent", req.Agent,
		"mode", string(req.Mode),
		"success", report.Success,
		"shared_memories", report.SharedMemories,
		"duration", time.Since(start),
	)

	return report
}

func (e *Engine) delegate(ctx context.Context, req Request) *Report {
	// Pre-flight: depth guard fails closed before anything else runs.
	depth := req.Context.Depth()
	if e.maxDepth > 0 && depth >= e.maxDepth {
		return failure(fmt.Sprintf("delegation depth %d exceeds maximum %d", depth, e.maxDepth))
	}

	// Pre-flight: resolve the target; a miss aborts before any invocation.
	target, err := e.registry.Resolve(req.Agent)
	if err != nil {
		return failure(err.Error())
	}

	// Pre-flight in selective mode: judge relevance; a malformed or
	// unavailable collaborator aborts before the target runs.
	var selection *selector.Result
	handed := core.NewMemoryLog()
	if req.Mode == ModeSelective {
		if e.selector == nil {
			return failure("selective mode requires a configured selector")
		}
		selection, err = e.selectMemories(ctx, req.Task, req.Memory)
		if err != nil {
			return failure(err.Error())
		}
		handed = selection.Filtered
	}

	restricted := e.restrictContext(req.Context, depth)
	shared := handed.Len()

	result, err := e.invoke(ctx, target, req.Task, handed, restricted)

	// Provenance: in selective mode the caller keeps an audit trail of what
	// was shared and absorbs everything the callee produced, regardless of
	// how the call ended.
	if selection != nil {
		e.mergeProvenance(req.Memory, selection, result)
	}

	if err != nil {
		return failure(err.Error())
	}
	if result == nil || result.Len() == 0 {
		return failure(emptyResultError)
	}

	last, err := result.Last()
	if err != nil {
		// Unreachable given the length check; kept for the terminal contract.
		return failure(emptyResultError)
	}

	report := &Report{Success: true, Agent: req.Agent, Result: last.Content}
	if selection != nil {
		report.SharedMemories = shared
		report.SelectionReasoning = selection.Reasoning
	}
	return report
}

// selectMemories runs the selector under the engine's timeout.
func (e *Engine) selectMemories(ctx context.Context, task string, memory *core.MemoryLog) (*selector.Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.selector.Select(ctx, task, memory)
}

// restrictContext derives the context handed to the target: only the
// allow-listed keys are carried forward, the registry handle is dropped
// unless deliberately re-granted via ForwardKeys, and the depth counter is
// advanced by one hop.
func (e *Engine) restrictContext(actionCtx *core.ActionContext, depth int) *core.ActionContext {
	return actionCtx.Narrow(e.forwardKeys...).WithOverrides(map[string]any{core.KeyDepth: depth + 1})
}

// invoke runs the target synchronously under the engine's timeout, catching
// panics at the boundary so a faulty agent cannot crash the caller.
func (e *Engine) invoke(ctx context.Context, target core.Agent, task string, memory *core.MemoryLog, actionCtx *core.ActionContext) (result *core.MemoryLog, err error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("agent %q panicked: %v", target.Name(), r)
			e.logger.Error("recovered panic during agent invocation", "agent", target.Name(), "panic", fmt.Sprintf("%v", r))
		}
	}()

	return target.Invoke(ctx, task, memory, actionCtx)
}

// mergeProvenance appends the selection reasoning as a system audit entry to
// the caller's memory, then appends every entry of the callee's resulting
// log. The audit entry never enters the log handed to the callee.
func (e *Engine) mergeProvenance(caller *core.MemoryLog, selection *selector.Result, result *core.MemoryLog) {
	audit := core.Entry{
		Kind:     core.KindSystem,
		Content:  fmt.Sprintf("Memory selection reasoning: %s", selection.Reasoning),
		Metadata: map[string]any{"shared_memories": selection.Filtered.Len()},
	}
	if err := caller.Append(audit); err != nil {
		e.logger.Warn("failed to append selection audit entry", "error", err.Error())
	}
	if result == nil {
		return
	}
	for _, entry := range result.Entries() {
		if err := caller.Append(entry); err != nil {
			e.logger.Warn("failed to merge callee entry", "error", err.Error())
		}
	}
}

// record writes a transcript if a store is configured.
func (e *Engine) record(id string, req Request, report *Report, start time.Time) {
	if e.transcripts == nil {
		return
	}
	rec := transcript.Record{
		ID:      id,
		Agent:   req.Agent,
		Task:    req.Task,
		Mode:    string(req.Mode),
		Success: report.Success,
		Result:  report.Result,
		Error:   report.Error,
		Shared:  report.SharedMemories,
		Created: start,
	}
	if req.Memory != nil {
		rec.Entries = req.Memory.Entries()
	}
	if err := e.transcripts.Save(rec); err != nil {
		e.logger.Warn("failed to save delegation transcript", "delegation_id", id, "error", err.Error())
	}
}

func failure(msg string) *Report {
	return &Report{Success: false, Error: msg}
}

// Package handoff provides a high-level façade over the delegation engine
// and its service abstractions (registry, selector, transcripts & logging)
// enabling memory-scoped delegation between named agents. Most applications
// interact with this package by:
//  1. Creating a Handoff via New() (optionally supplying a selector model,
//     transcript store or structured logger)
//  2. Registering one or more agents (model-backed, func-based, custom)
//  3. Delegating tasks in isolation mode (Delegate) or with
//     relevance-filtered memory sharing (DelegateSelective)
//
// The façade delegates orchestration to engine.Engine while keeping setup
// and usage ergonomics concise. All defaults are safe for local development
// and testing; production deployments typically supply a persistent
// transcript store and a structured logger.
package handoff

import (
	"context"
	"time"

	"github.com/hupe1980/handoff/core"
	"github.com/hupe1980/handoff/engine"
	"github.com/hupe1980/handoff/logging"
	"github.com/hupe1980/handoff/model"
	"github.com/hupe1980/handoff/registry"
	"github.com/hupe1980/handoff/selector"
	"github.com/hupe1980/handoff/transcript"
)

// Options configures the Handoff instance.
type Options struct {
	// SelectorModel is the reasoning collaborator used to judge memory
	// relevance in selective mode. Leave nil to disable selective mode.
	SelectorModel model.Model

	// SelectorInstructions overrides the selector's default system prompt.
	SelectorInstructions string

	// Transcripts, when set, receives a record per completed delegation.
	Transcripts transcript.Store

	// Timeout bounds the collaborator call and the target invocation.
	Timeout time.Duration

	// MaxDepth bounds the delegation call chain (default engine.DefaultMaxDepth).
	MaxDepth int

	// ForwardKeys is the action-context allow-list carried into delegated
	// calls. Defaults to credentials and config; the registry key is never
	// included implicitly.
	ForwardKeys []string

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Handoff is the high-level façade aggregating the registry and engine.
type Handoff struct {
	opts     Options
	registry *registry.Registry
	engine   *engine.Engine
}

// New creates a new Handoff instance with optional overrides.
func New(optFns ...func(o *Options)) *Handoff {
	opts := Options{
		Logger:   logging.NoOpLogger{},
		MaxDepth: engine.DefaultMaxDepth,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	reg := registry.New()

	var sel *selector.Selector
	if opts.SelectorModel != nil {
		sel = selector.New(opts.SelectorModel, func(o *selector.Options) {
			if opts.SelectorInstructions != "" {
				o.Instructions = opts.SelectorInstructions
			}
			o.Logger = opts.Logger
		})
	}

	eng := engine.New(reg, func(o *engine.Options) {
		o.Selector = sel
		o.Transcripts = opts.Transcripts
		o.Logger = opts.Logger
		o.Timeout = opts.Timeout
		o.MaxDepth = opts.MaxDepth
		if opts.ForwardKeys != nil {
			o.ForwardKeys = opts.ForwardKeys
		}
	})

	return &Handoff{opts: opts, registry: reg, engine: eng}
}

// RegisterAgent adds an agent to the underlying registry.
func (h *Handoff) RegisterAgent(a core.Agent) { h.registry.Register(a) }

// Registry exposes the underlying registry, e.g. for hosts that re-grant
// delegation capability to a callee via core.KeyRegistry.
func (h *Handoff) Registry() *registry.Registry { return h.registry }

// Engine exposes the underlying delegation engine, e.g. for wiring the
// delegate_agent tool.
func (h *Handoff) Engine() *engine.Engine { return h.engine }

// Delegate invokes the named agent with a brand-new, empty memory log.
func (h *Handoff) Delegate(ctx context.Context, agentName, task string, memory *core.MemoryLog, actionCtx *core.ActionContext) *engine.Report {
	return h.engine.Delegate(ctx, engine.Request{
		Agent:   agentName,
		Task:    task,
		Mode:    engine.ModeIsolated,
		Memory:  memory,
		Context: actionCtx,
	})
}

// DelegateSelective invokes the named agent with a relevance-filtered subset
// of the caller's memory and merges provenance back into it.
func (h *Handoff) DelegateSelective(ctx context.Context, agentName, task string, memory *core.MemoryLog, actionCtx *core.ActionContext) *engine.Report {
	return h.engine.Delegate(ctx, engine.Request{
		Agent:   agentName,
		Task:    task,
		Mode:    engine.ModeSelective,
		Memory:  memory,
		Context: actionCtx,
	})
}

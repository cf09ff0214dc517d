// Package selector implements model-assisted relevance selection over a
// memory log: given a task, it asks a reasoning collaborator which entries
// matter and produces a fresh, filtered log plus a reasoning trace.
//
// Entry references are transient and purely positional — stable only for the
// duration of one Select call, never reused as persistent identifiers.
package selector

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hupe1980/handoff/core"
	"github.com/hupe1980/handoff/logging"
	"github.com/hupe1980/handoff/model"
	"github.com/tidwall/gjson"
)

// emptyMemoryReasoning is the fixed explanation used when the source log is
// empty and no collaborator call is made.
const emptyMemoryReasoning = "No memories were available to select from."

const defaultInstructions = `You decide which entries of a conversation memory are relevant to a task.
Respond with a single JSON object of the shape:
{"selected_memories": ["<id>", ...], "reasoning": "<why these entries>"}
Use only the ids shown in the memory listing. Select nothing if nothing is relevant.
Do not add any text outside the JSON object.`

// SelectionError reports a failed selection round: the collaborator was
// unavailable or returned output that could not be interpreted. It is a
// pre-flight error from the delegation engine's perspective — no target
// agent has been invoked yet.
type SelectionError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SelectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("memory selection failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("memory selection failed: %s", e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *SelectionError) Unwrap() error { return e.Err }

// Result is the outcome of one selection call.
type Result struct {
	// Indices are the selected entry positions in the source log, ascending.
	Indices []int
	// Reasoning is the collaborator's free-text explanation. It is meant to
	// be appended to the caller's log as an audit entry, never inserted into
	// the filtered log handed to a callee.
	Reasoning string
	// Filtered is a fresh log containing exactly the selected entries in
	// their original relative order.
	Filtered *core.MemoryLog
}

// Options configures a Selector.
type Options struct {
	// Instructions overrides the default collaborator system prompt.
	Instructions string
	// Logger receives selection diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Selector delegates relevance judgment over memory entries to a reasoning
// collaborator (model.Model).
type Selector struct {
	model        model.Model
	instructions string
	logger       logging.Logger
}

// New creates a Selector backed by the given collaborator.
func New(m model.Model, optFns ...func(o *Options)) *Selector {
	opts := Options{
		Instructions: defaultInstructions,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Selector{model: m, instructions: opts.Instructions, logger: opts.Logger}
}

// Select judges which entries of memory are relevant to task. The call is
// atomic from the caller's perspective: it either returns a well-formed
// Result or a *SelectionError. An empty memory yields a vacuously empty
// result without consulting the collaborator.
func (s *Selector) Select(ctx context.Context, task string, memory *core.MemoryLog) (*Result, error) {
	if strings.TrimSpace(task) == "" {
		return nil, &SelectionError{Message: "task must not be empty"}
	}

	// Snapshot once; positional ids refer to this snapshot for the whole call.
	entries := memory.Entries()
	if len(entries) == 0 {
		return &Result{Reasoning: emptyMemoryReasoning, Filtered: core.NewMemoryLog()}, nil
	}

	prompt, err := buildPrompt(task, entries)
	if err != nil {
		return nil, &SelectionError{Message: "failed to serialize memory entries", Err: err}
	}

	resp, err := s.model.Complete(ctx, model.Request{Instructions: s.instructions, Prompt: prompt})
	if err != nil {
		return nil, &SelectionError{Message: "collaborator call failed", Err: err}
	}

	indices, reasoning, err := s.parse(resp.Text, len(entries))
	if err != nil {
		return nil, err
	}

	selected := make([]core.Entry, 0, len(indices))
	for _, i := range indices {
		selected = append(selected, entries[i])
	}

	s.logger.Debug("memory selection completed", "model", s.model.Info().Name, "selected", len(indices), "total", len(entries))

	return &Result{Indices: indices, Reasoning: reasoning, Filtered: core.NewMemoryLog(selected...)}, nil
}

// promptEntry is the serialized form of a memory entry shown to the
// collaborator. IDs are transient positional references.
type promptEntry struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

func buildPrompt(task string, entries []core.Entry) (string, error) {
	serialized := make([]promptEntry, len(entries))
	for i, e := range entries {
		serialized[i] = promptEntry{ID: strconv.Itoa(i), Kind: string(e.Kind), Content: e.Content}
	}
	data, err := json.MarshalIndent(serialized, "", "  ")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Task:\n")
	sb.WriteString(task)
	sb.WriteString("\n\nMemory entries:\n")
	sb.Write(data)
	return sb.String(), nil
}

// parse extracts the selected indices and reasoning from the collaborator's
// raw output. Ids that are not valid positions in the snapshot are ignored
// defensively rather than rejected; duplicates collapse to one.
func (s *Selector) parse(raw string, total int) ([]int, string, error) {
	payload := extractJSON(raw)
	if payload == "" || !gjson.Valid(payload) {
		return nil, "", &SelectionError{Message: fmt.Sprintf("collaborator returned malformed output: %q", truncate(raw, 120))}
	}

	selected := gjson.Get(payload, "selected_memories")
	if !selected.Exists() || !selected.IsArray() {
		return nil, "", &SelectionError{Message: "collaborator output is missing 'selected_memories'"}
	}

	seen := make(map[int]struct{})
	var indices []int
	for _, id := range selected.Array() {
		i, err := strconv.Atoi(strings.TrimSpace(id.String()))
		if err != nil || i < 0 || i >= total {
			s.logger.Warn("ignoring unknown memory id from collaborator", "id", id.String(), "total", total)
			continue
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		indices = append(indices, i)
	}
	sort.Ints(indices)

	return indices, gjson.Get(payload, "reasoning").String(), nil
}

// extractJSON pulls the first JSON object out of raw, tolerating markdown
// fences and surrounding prose.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package selector

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/handoff/core"
	"github.com/hupe1980/handoff/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sixEntryLog(t *testing.T) *core.MemoryLog {
	t.Helper()
	return core.NewMemoryLog(
		core.Entry{Kind: core.KindUser, Content: "my calendar is empty on friday"},
		core.Entry{Kind: core.KindAssistant, Content: "noted"},
		core.Entry{Kind: core.KindUser, Content: "I prefer morning meetings"},
		core.Entry{Kind: core.KindAssistant, Content: "understood"},
		core.Entry{Kind: core.KindUser, Content: "my cat is called Bob"},
		core.Entry{Kind: core.KindAssistant, Content: "cute"},
	)
}

func TestSelect_FiltersInOriginalOrder(t *testing.T) {
	m := model.NewMockModel("judge")
	m.AddResponse("Memory entries", `{"selected_memories": ["2", "0", "3"], "reasoning": "scheduling context only"}`)

	s := New(m)
	res, err := s.Select(context.Background(), "book a 30-minute sync", sixEntryLog(t))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 3}, res.Indices)
	assert.Equal(t, "scheduling context only", res.Reasoning)

	entries := res.Filtered.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "my calendar is empty on friday", entries[0].Content)
	assert.Equal(t, "I prefer morning meetings", entries[1].Content)
	assert.Equal(t, "understood", entries[2].Content)
}

func TestSelect_EmptyMemorySkipsCollaborator(t *testing.T) {
	m := model.NewMockModel("judge")
	s := New(m)

	res, err := s.Select(context.Background(), "anything", core.NewMemoryLog())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Filtered.Len())
	assert.Empty(t, res.Indices)
	assert.Equal(t, emptyMemoryReasoning, res.Reasoning)
	assert.Empty(t, m.Requests(), "collaborator must not be called for empty memory")
}

func TestSelect_EmptyTask(t *testing.T) {
	s := New(model.NewMockModel("judge"))
	_, err := s.Select(context.Background(), "   ", sixEntryLog(t))

	var selErr *SelectionError
	require.ErrorAs(t, err, &selErr)
}

func TestSelect_UnknownIDsIgnored(t *testing.T) {
	// Pins the open-question decision: ids the collaborator invents that do
	// not reference a snapshot position are dropped, not rejected.
	m := model.NewMockModel("judge")
	m.AddResponse("Memory entries", `{"selected_memories": ["1", "99", "-3", "bogus", "1"], "reasoning": "r"}`)

	s := New(m)
	res, err := s.Select(context.Background(), "task", sixEntryLog(t))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, res.Indices)
	assert.Equal(t, 1, res.Filtered.Len())
}

func TestSelect_NothingRelevant(t *testing.T) {
	m := model.NewMockModel("judge")
	m.AddResponse("Memory entries", `{"selected_memories": [], "reasoning": "nothing applies"}`)

	s := New(m)
	res, err := s.Select(context.Background(), "task", sixEntryLog(t))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Filtered.Len())
	assert.Equal(t, "nothing applies", res.Reasoning)
}

func TestSelect_MalformedOutput(t *testing.T) {
	for name, raw := range map[string]string{
		"prose":         "I think entries 1 and 2 are relevant.",
		"missing field": `{"reasoning": "no ids here"}`,
		"not an array":  `{"selected_memories": "0", "reasoning": "r"}`,
	} {
		t.Run(name, func(t *testing.T) {
			m := model.NewMockModel("judge")
			m.AddResponse("Memory entries", raw)

			s := New(m)
			_, err := s.Select(context.Background(), "task", sixEntryLog(t))

			var selErr *SelectionError
			require.ErrorAs(t, err, &selErr)
		})
	}
}

func TestSelect_FencedJSONAccepted(t *testing.T) {
	m := model.NewMockModel("judge")
	m.AddResponse("Memory entries", "```json\n{\"selected_memories\": [\"0\"], \"reasoning\": \"r\"}\n```")

	s := New(m)
	res, err := s.Select(context.Background(), "task", sixEntryLog(t))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Indices)
}

func TestSelect_CollaboratorUnavailable(t *testing.T) {
	m := model.NewMockModel("judge")
	m.FailWith(errors.New("connection refused"))

	s := New(m)
	_, err := s.Select(context.Background(), "task", sixEntryLog(t))

	var selErr *SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Contains(t, err.Error(), "collaborator call failed")
}

func TestSelect_PromptContainsTaskAndIDs(t *testing.T) {
	m := model.NewMockModel("judge")
	m.AddResponse("Memory entries", `{"selected_memories": [], "reasoning": "r"}`)

	s := New(m)
	_, err := s.Select(context.Background(), "find the cat's name", sixEntryLog(t))
	require.NoError(t, err)

	require.Len(t, m.Requests(), 1)
	prompt := m.Requests()[0].Prompt
	assert.Contains(t, prompt, "find the cat's name")
	assert.Contains(t, prompt, `"id": "0"`)
	assert.Contains(t, prompt, `"id": "5"`)
	assert.Contains(t, prompt, "my cat is called Bob")
}

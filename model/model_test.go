package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModel_CannedResponse(t *testing.T) {
	m := NewMockModel("test-model")
	m.AddResponse("weather", `{"answer":"sunny"}`)

	resp, err := m.Complete(context.Background(), Request{Prompt: "what is the weather like?"})
	require.NoError(t, err)
	assert.Equal(t, `{"answer":"sunny"}`, resp.Text)
	require.Len(t, m.Requests(), 1)
	assert.Equal(t, "what is the weather like?", m.Requests()[0].Prompt)
}

func TestMockModel_FallbackEcho(t *testing.T) {
	m := NewMockModel("test-model")
	resp, err := m.Complete(context.Background(), Request{Prompt: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: hello", resp.Text)
}

func TestMockModel_FailWith(t *testing.T) {
	m := NewMockModel("test-model")
	boom := errors.New("collaborator unavailable")
	m.FailWith(boom)

	_, err := m.Complete(context.Background(), Request{Prompt: "anything"})
	assert.ErrorIs(t, err, boom)
}

func TestMockModel_RespectsCancellation(t *testing.T) {
	m := NewMockModel("test-model")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Complete(ctx, Request{Prompt: "anything"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Requests())
}

func TestMockModel_Info(t *testing.T) {
	m := NewMockModel("test-model")
	info := m.Info()
	assert.Equal(t, "test-model", info.Name)
	assert.Equal(t, "mock", info.Provider)
}

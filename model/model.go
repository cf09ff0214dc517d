// Package model defines the reasoning-collaborator interface consumed by the
// memory selector and by model-backed agents, together with a deterministic
// mock for tests. Provider adapters live in the subpackages model/openai and
// model/anthropic.
package model

import (
	"context"
	"fmt"
	"strings"
)

// Request captures a normalized single-shot completion input. The collaborator
// is modeled as an opaque blocking request/response with no partial results.
type Request struct {
	Instructions string `json:"instructions"` // System-level guidance
	Prompt       string `json:"prompt"`       // User-level input
}

// Response is the collaborator's completion output.
type Response struct {
	Text string `json:"text"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required to drive a reasoning collaborator.
type Model interface {
	// Complete performs one blocking completion call.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Responses are matched against prompt substrings in registration order; if
// nothing matches, a generic echo response is produced.
type MockModel struct {
	info     Info
	prompts  []string
	answers  map[string]string
	requests []Request
	err      error
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:    Info{Name: name, Provider: "mock"},
		answers: make(map[string]string),
	}
}

// AddResponse registers a canned completion returned when the prompt contains
// the given substring.
func (m *MockModel) AddResponse(promptContains, response string) {
	if _, exists := m.answers[promptContains]; !exists {
		m.prompts = append(m.prompts, promptContains)
	}
	m.answers[promptContains] = response
}

// FailWith makes every subsequent Complete call return err.
func (m *MockModel) FailWith(err error) { m.err = err }

// Requests returns all requests seen by the mock, in order.
func (m *MockModel) Requests() []Request { return m.requests }

// Complete implements Model.
func (m *MockModel) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.prompts {
		if strings.Contains(req.Prompt, p) {
			return &Response{Text: m.answers[p]}, nil
		}
	}
	return &Response{Text: fmt.Sprintf("Mock response to: %s", req.Prompt)}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }

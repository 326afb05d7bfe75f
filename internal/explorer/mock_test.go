package explorer

import (
	"context"
	"sync"

	"github.com/pulseboard/dashgen/pkg/anthropic"
)

// scriptedCall is one canned response (or error) for the mock client.
type scriptedCall struct {
	text string
	err  error
}

// mockClient implements anthropic.Client, replaying scripted responses in
// order and recording every request it saw.
type mockClient struct {
	mu       sync.Mutex
	script   []scriptedCall
	requests []anthropic.MessageRequest
}

func (m *mockClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	idx := len(m.requests) - 1
	if idx >= len(m.script) {
		idx = len(m.script) - 1
	}
	call := m.script[idx]
	if call.err != nil {
		return nil, call.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: call.text}},
	}, nil
}

func (m *mockClient) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *mockClient) modelAt(i int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[i].Model
}

package genai

import (
	"context"
	"sync"

	"github.com/fjordlane/counterpoint/internal/errors"
)

// MockClient is a scripted Client for tests. Queue results with
// QueueRefinement/QueueResponse/QueueError; calls consume the queue in order.
// Every call is recorded so tests can assert on what was sent.
type MockClient struct {
	mu sync.Mutex

	refinements []*Refinement
	responses   []string
	errs        []error

	// RefineCalls records the thought of each Refine invocation.
	RefineCalls []string
	// RespondCalls records the history of each Respond invocation.
	RespondCalls [][]Message
	// Instructions records the instruction of every call, in order.
	Instructions []string
}

// NewMockClient returns an empty mock. Calls against an empty queue fail
// with a service error, so forgetting to script a test surfaces loudly.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// QueueRefinement schedules a successful Refine result.
func (m *MockClient) QueueRefinement(r *Refinement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refinements = append(m.refinements, r)
	m.errs = append(m.errs, nil)
}

// QueueResponse schedules a successful Respond result.
func (m *MockClient) QueueResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, text)
	m.errs = append(m.errs, nil)
}

// QueueError schedules a failure for the next call of either shape.
func (m *MockClient) QueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
}

// Refine implements Client.
func (m *MockClient) Refine(ctx context.Context, instruction, thought string) (*Refinement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RefineCalls = append(m.RefineCalls, thought)
	m.Instructions = append(m.Instructions, instruction)

	if err := m.nextErr(); err != nil {
		return nil, err
	}
	if len(m.refinements) == 0 {
		return nil, errors.NewServiceError("mock: no refinement queued", errors.ErrServiceUnavailable)
	}
	r := m.refinements[0]
	m.refinements = m.refinements[1:]
	return r, nil
}

// Respond implements Client.
func (m *MockClient) Respond(ctx context.Context, instruction string, history []Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recorded := make([]Message, len(history))
	copy(recorded, history)
	m.RespondCalls = append(m.RespondCalls, recorded)
	m.Instructions = append(m.Instructions, instruction)

	if err := m.nextErr(); err != nil {
		return "", err
	}
	if len(m.responses) == 0 {
		return "", errors.NewServiceError("mock: no response queued", errors.ErrServiceUnavailable)
	}
	text := m.responses[0]
	m.responses = m.responses[1:]
	return text, nil
}

// nextErr pops the next scheduled outcome; non-nil means the call fails.
func (m *MockClient) nextErr() error {
	if len(m.errs) == 0 {
		return errors.NewServiceError("mock: nothing queued", errors.ErrServiceUnavailable)
	}
	err := m.errs[0]
	m.errs = m.errs[1:]
	return err
}

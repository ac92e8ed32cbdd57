package mock

import (
	"context"
	"fmt"

	"github.com/sahilrangra/ayur-llm/ai"
)

// MockAnswerGenerator is a test double for ai.AnswerGenerator.
// It allows custom behavior injection via function fields and records
// the last call for assertions.
type MockAnswerGenerator struct {
	// GenerateAnswerFunc is called by GenerateAnswer if set.
	// If nil, uses default canned behavior.
	GenerateAnswerFunc func(ctx context.Context, question string, contexts []ai.Context, strict bool) (string, error)

	callCount    int
	lastQuestion string
	lastContexts []ai.Context
	lastStrict   bool
}

// NewMockAnswerGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockAnswerGenerator() *MockAnswerGenerator {
	return &MockAnswerGenerator{}
}

// GenerateAnswer returns a canned answer naming the question and source count.
func (m *MockAnswerGenerator) GenerateAnswer(ctx context.Context, question string, contexts []ai.Context, strict bool) (string, error) {
	m.callCount++
	m.lastQuestion = question
	m.lastContexts = contexts
	m.lastStrict = strict

	if m.GenerateAnswerFunc != nil {
		return m.GenerateAnswerFunc(ctx, question, contexts, strict)
	}

	if len(contexts) == 0 {
		return ai.NoInformationAnswer, nil
	}
	return fmt.Sprintf("mock answer to %q from %d sources [SOURCE 1]", question, len(contexts)), nil
}

// CallCount returns the number of times GenerateAnswer was called.
func (m *MockAnswerGenerator) CallCount() int {
	return m.callCount
}

// LastQuestion returns the question from the most recent call.
func (m *MockAnswerGenerator) LastQuestion() string {
	return m.lastQuestion
}

// LastContexts returns the contexts from the most recent call.
func (m *MockAnswerGenerator) LastContexts() []ai.Context {
	return m.lastContexts
}

// LastStrict returns the strict flag from the most recent call.
func (m *MockAnswerGenerator) LastStrict() bool {
	return m.lastStrict
}

// Reset clears recorded state and injected behavior.
func (m *MockAnswerGenerator) Reset() {
	m.callCount = 0
	m.lastQuestion = ""
	m.lastContexts = nil
	m.lastStrict = false
	m.GenerateAnswerFunc = nil
}

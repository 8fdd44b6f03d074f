package mock

import "context"

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, returns a canned completion.
	GenerateFunc func(ctx context.Context, system, user string) (string, error)

	// GenerateJSONFunc is called by GenerateJSON if set.
	// If nil, returns an empty JSON object.
	GenerateJSONFunc func(ctx context.Context, system, user string) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate returns a canned completion or the injected behavior.
func (m *MockGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	m.callCount++

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, system, user)
	}

	return "mock completion", nil
}

// GenerateJSON returns an empty JSON object or the injected behavior.
func (m *MockGenerator) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	m.callCount++

	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, system, user)
	}

	return "{}", nil
}

// CallCount returns the number of times any method was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateFunc = nil
	m.GenerateJSONFunc = nil
}

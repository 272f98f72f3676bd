package llm

import (
	"context"

	"qsolve/ports"
)

var _ ports.SolutionGenerator = (*MockGenerator)(nil)

// MockGenerator is a SolutionGenerator stub for testing
type MockGenerator struct {
	Solution ports.Solution // Set this for testing
	Error    error          // Set this to simulate errors
	Calls    int            // Incremented on every Generate call
}

func (m *MockGenerator) Generate(ctx context.Context, questions string) (ports.Solution, error) {
	m.Calls++
	if m.Error != nil {
		return ports.Solution{}, m.Error
	}
	if m.Solution.Text != "" {
		return m.Solution, nil
	}
	// Default mock response
	return ports.Solution{
		Text:  "## Question Analysis\nMock analysis.\n\n## Step-by-Step Solution\n1. Mock step.\n\n## Final Answer\n42",
		Model: "mock-model",
	}, nil
}

package api

import (
	"context"
	"sync"

	"github.com/diogo/geminichat/internal/models"
)

// MockGeminiClient is a mock implementation of GeminiClientInterface for testing
type MockGeminiClient struct {
	// Mock return values
	Model              models.Model
	GenerateContentVal *models.ModelOutput
	GenerateContentErr error

	// Call counters/recorders
	mu            sync.Mutex
	CloseCalled   bool
	closed        bool
	GenerateCalls int
	LastPrompt    string
}

// Ensure MockGeminiClient implements GeminiClientInterface
var _ GeminiClientInterface = (*MockGeminiClient)(nil)

func (m *MockGeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	output, err := m.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}
	return output.Text, nil
}

func (m *MockGeminiClient) GenerateContent(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateCalls++
	m.LastPrompt = prompt
	if m.GenerateContentErr != nil {
		return nil, m.GenerateContentErr
	}
	if m.GenerateContentVal == nil {
		return &models.ModelOutput{}, nil
	}
	return m.GenerateContentVal, nil
}

func (m *MockGeminiClient) GetModel() models.Model {
	return m.Model
}

func (m *MockGeminiClient) SetModel(model models.Model) {
	m.Model = model
}

func (m *MockGeminiClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	m.closed = true
}

func (m *MockGeminiClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

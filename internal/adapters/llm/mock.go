package llm

import (
	"context"
	"fmt"

	"github.com/emofy/emofy-api/internal/domain"
)

// MockClient is a deterministic stand-in for local development. It echoes
// the last user turn, so keyword classification reacts to the input text.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GenerateReply(ctx context.Context, history []domain.Turn) (string, error) {
	last := ""
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == domain.RoleUser {
			last = history[i].Text
			break
		}
	}
	return fmt.Sprintf("I hear you. You said %q. Tell me more about how that makes you feel.", last), nil
}

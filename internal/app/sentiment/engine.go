package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/emofy/emofy-api/internal/domain"
	"github.com/emofy/emofy-api/internal/observability"
)

// Engine runs one sentiment round-trip: append the user turn, invoke the
// model with the full history, append the model turn, classify the reply.
type Engine struct {
	model domain.ModelClient
}

func NewEngine(model domain.ModelClient) *Engine {
	return &Engine{model: model}
}

// Analyze rejects blank input before mutating any state. On model failure
// the user turn stays appended (conversation continuity is preserved) but
// no model turn is appended and no emotion is returned.
func (e *Engine) Analyze(
	ctx context.Context,
	input string,
	conv *domain.Conversation,
) (string, domain.EmotionLabel, error) {
	if strings.TrimSpace(input) == "" {
		return "", "", fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}

	log := observability.LoggerFromContext(ctx)

	conv.Append(domain.Turn{Role: domain.RoleUser, Text: input})

	reply, err := e.model.GenerateReply(ctx, conv.Snapshot())
	if err != nil {
		log.Error("model invocation failed", "error", err)
		return "", "", fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}

	conv.Append(domain.Turn{Role: domain.RoleModel, Text: reply})

	emotion := Classify(reply)
	log.Info("sentiment analyzed", "emotion", emotion, "history_len", conv.Len())

	return reply, emotion, nil
}

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emofy/emofy-api/internal/app/recommend"
	"github.com/emofy/emofy-api/internal/app/sentiment"
	"github.com/emofy/emofy-api/internal/domain"
	"github.com/emofy/emofy-api/internal/observability"
)

// Orchestrator is the per-request coordinator: it scopes conversation
// state and the last derived emotion to the authenticated user's session,
// runs the sentiment engine, records history best-effort, and fans out
// recommendations keyed by the session's last emotion.
type Orchestrator struct {
	engine     *sentiment.Engine
	aggregator *recommend.Aggregator
	sessions   domain.SessionStore
	users      domain.UserStore
	now        func() time.Time
}

func NewOrchestrator(
	engine *sentiment.Engine,
	aggregator *recommend.Aggregator,
	sessions domain.SessionStore,
	users domain.UserStore,
) *Orchestrator {
	return &Orchestrator{
		engine:     engine,
		aggregator: aggregator,
		sessions:   sessions,
		users:      users,
		now:        time.Now,
	}
}

type AnalyzeOutput struct {
	Reply   string
	Emotion domain.EmotionLabel
}

// AnalyzeSentiment runs one sentiment round-trip inside the user's session.
// Persistence is best-effort: a missing user record is logged and the
// response is still returned.
func (o *Orchestrator) AnalyzeSentiment(ctx context.Context, userID domain.UserID, text string) (*AnalyzeOutput, error) {
	sess, err := o.sessions.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	log := observability.LoggerFromContext(ctx).With("user_id", userID)

	// Hold the session lock across the whole round-trip so one user's
	// sequential requests observe arrival order.
	sess.Lock()
	defer sess.Unlock()

	reply, emotion, err := o.engine.Analyze(ctx, text, sess.Conversation)
	if err != nil {
		return nil, err
	}

	sess.LastEmotion = emotion
	sess.UpdatedAt = o.now()

	if err := o.users.RecordInteraction(ctx, string(userID), text, reply, emotion); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			log.Warn("skipping history persistence, user record missing")
		} else {
			log.Error("failed to persist interaction", "error", err)
		}
	}

	return &AnalyzeOutput{Reply: reply, Emotion: emotion}, nil
}

// Recommend requires an emotion previously derived in this user's session;
// it never guesses a default.
func (o *Orchestrator) Recommend(ctx context.Context, userID domain.UserID) (*domain.RecommendationResult, error) {
	sess, err := o.sessions.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	sess.Lock()
	emotion := sess.LastEmotion
	sess.Unlock()

	if !emotion.IsKnown() {
		return nil, domain.ErrNoEmotion
	}

	return o.aggregator.Recommend(ctx, emotion)
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/emofy/emofy-api/internal/domain"
)

// UserStore is an in-memory domain.UserStore. It is NOT persistent and is
// only suitable for development / local mode.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.UserRecord
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]*domain.UserRecord),
	}
}

func (s *UserStore) CreateUser(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return domain.ErrUserExists
	}

	s.users[username] = &domain.UserRecord{
		Username:     username,
		PasswordHash: passwordHash,
		History:      []domain.Interaction{},
		LastEmotion:  domain.EmotionNeutral,
		CreatedAt:    time.Now(),
	}
	return nil
}

func (s *UserStore) GetUser(ctx context.Context, username string) (*domain.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	// Copy so callers can't mutate the stored record.
	out := *user
	out.History = make([]domain.Interaction, len(user.History))
	copy(out.History, user.History)
	return &out, nil
}

// RecordInteraction appends under the write lock, so two concurrent calls
// for the same user can never lose a history entry; last writer wins on
// LastEmotion.
func (s *UserStore) RecordInteraction(ctx context.Context, username, input, reply string, emotion domain.EmotionLabel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}

	user.History = append(user.History, domain.Interaction{Input: input, Reply: reply})
	user.LastEmotion = emotion
	return nil
}

package memory

import (
	"sync"
	"time"

	"github.com/emofy/emofy-api/internal/domain"
)

// SessionStore keeps per-user session state in memory for the process
// lifetime. Sessions are created lazily on first use.
type SessionStore struct {
	mu            sync.Mutex
	sessions      map[domain.UserID]*domain.Session
	historyWindow int
}

// NewSessionStore creates a session store whose conversations retain at
// most historyWindow turns (0 disables eviction).
func NewSessionStore(historyWindow int) *SessionStore {
	return &SessionStore{
		sessions:      make(map[domain.UserID]*domain.Session),
		historyWindow: historyWindow,
	}
}

func (s *SessionStore) GetOrCreate(userID domain.UserID) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}

	now := time.Now()
	sess := &domain.Session{
		UserID:       userID,
		Conversation: domain.NewConversation(s.historyWindow),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.sessions[userID] = sess
	return sess, nil
}

package domain

import (
	"sync"
	"time"
)

// Session holds the per-user conversational state: the turn log and the
// last derived emotion. It replaces the process-global history of the
// first Emofy backend, so concurrent users can never interleave turns.
//
// The embedded mutex serializes whole interactions for one user; callers
// hold it across the model round-trip so appends observe arrival order.
type Session struct {
	sync.Mutex

	UserID       UserID
	Conversation *Conversation
	LastEmotion  EmotionLabel
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

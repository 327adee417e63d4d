package domain

import "context"

// ModelClient defines how the core application invokes the conversational
// model. The full ordered history is the prompt: the model treats the last
// history turn as the instruction and no standalone message is sent.
type ModelClient interface {
	GenerateReply(ctx context.Context, history []Turn) (string, error)
}

// UserStore defines user persistence, keyed by unique username.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) error
	GetUser(ctx context.Context, username string) (*UserRecord, error)

	// RecordInteraction appends one (input, reply) pair and overwrites
	// LastEmotion, atomically with respect to concurrent calls for the
	// same user. Returns ErrUserNotFound when the record is absent.
	RecordInteraction(ctx context.Context, username, input, reply string, emotion EmotionLabel) error
}

// SessionStore hands out the per-user session state.
type SessionStore interface {
	GetOrCreate(userID UserID) (*Session, error)
}

// MovieCatalog is an external read-only movie metadata service.
type MovieCatalog interface {
	SearchByGenre(ctx context.Context, genre string) ([]MovieItem, error)
}

// BookCatalog is an external read-only book metadata service.
type BookCatalog interface {
	SearchByTopic(ctx context.Context, topic string) ([]BookItem, error)
}

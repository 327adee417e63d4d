package domain

import "time"

// Interaction is one recorded (input, reply) pair in a user's history.
type Interaction struct {
	Input string
	Reply string
}

// UserRecord is the persisted view of a user. History is append-only;
// LastEmotion always reflects the most recent sentiment analysis for
// this user and is never written by any other path.
type UserRecord struct {
	Username     string
	PasswordHash string
	History      []Interaction
	LastEmotion  EmotionLabel
	CreatedAt    time.Time
}

package domain

import "time"

type UserID string

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// EmotionLabel is the coarse classification derived from the model's reply.
// The zero value means no emotion has been derived yet.
type EmotionLabel string

const (
	EmotionPositive EmotionLabel = "positive"
	EmotionNegative EmotionLabel = "negative"
	EmotionNeutral  EmotionLabel = "neutral"
)

// IsKnown reports whether e is one of the three derived labels.
func (e EmotionLabel) IsKnown() bool {
	switch e {
	case EmotionPositive, EmotionNegative, EmotionNeutral:
		return true
	}
	return false
}

type Timestamp = time.Time

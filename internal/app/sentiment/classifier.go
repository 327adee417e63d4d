package sentiment

import (
	"strings"

	"github.com/emofy/emofy-api/internal/domain"
)

var (
	positiveKeywords = []string{"happy", "joy", "good", "excited", "positive"}
	negativeKeywords = []string{"sad", "angry", "bad", "negative", "upset", "sadness"}
)

// Classify derives a coarse emotion label from free text by counting
// distinct keyword hits (not occurrences) per set, case-insensitive.
// The set with the strictly greater count wins; ties are neutral.
// It is pure, never fails, and classifies the empty string as neutral.
func Classify(text string) domain.EmotionLabel {
	lower := strings.ToLower(text)

	positive := countHits(lower, positiveKeywords)
	negative := countHits(lower, negativeKeywords)

	switch {
	case positive > negative:
		return domain.EmotionPositive
	case negative > positive:
		return domain.EmotionNegative
	default:
		return domain.EmotionNeutral
	}
}

func countHits(lower string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}

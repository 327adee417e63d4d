package sentiment_test

import (
	"testing"

	"github.com/emofy/emofy-api/internal/app/sentiment"
	"github.com/emofy/emofy-api/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.EmotionLabel
	}{
		{"positive phrase", "I am happy and joyful", domain.EmotionPositive},
		{"negative phrase", "I am sad and angry", domain.EmotionNegative},
		{"empty string", "", domain.EmotionNeutral},
		{"tie is neutral", "happy sad", domain.EmotionNeutral},
		{"no keywords", "the weather report for tomorrow", domain.EmotionNeutral},
		{"case insensitive", "SO EXCITED, THIS IS GOOD", domain.EmotionPositive},
		{"distinct hits not occurrences", "sad sad sad sad but happy joy", domain.EmotionPositive},
		{"substring match", "he wore a badge with pride", domain.EmotionNegative},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sentiment.Classify(tc.text)
			if got != tc.want {
				t.Fatalf("Classify(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestClassifyAlwaysReturnsAKnownLabel(t *testing.T) {
	inputs := []string{"", "x", "happy sad good bad", "ñandú 漢字", "\n\t"}
	for _, in := range inputs {
		if got := sentiment.Classify(in); !got.IsKnown() {
			t.Fatalf("Classify(%q) returned unknown label %q", in, got)
		}
	}
}

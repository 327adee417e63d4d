package domain

// MovieItem is a single movie catalog result. PosterURL is nil when the
// upstream omits the poster; it is never defaulted to an empty string.
type MovieItem struct {
	Title     string
	PosterURL *string
}

// BookItem is a single book catalog result. CoverURL is nil when the
// upstream has no cover image.
type BookItem struct {
	Title    string
	CoverURL *string
	Author   string
}

// RecommendationResult combines both catalog fan-out branches. Either
// slice may be empty (never nil) when that catalog failed or returned
// nothing; an empty slice means "fetched, degraded gracefully".
type RecommendationResult struct {
	Emotion EmotionLabel
	Movies  []MovieItem
	Books   []BookItem
}

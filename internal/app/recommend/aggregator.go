package recommend

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/emofy/emofy-api/internal/domain"
	"github.com/emofy/emofy-api/internal/observability"
)

const maxMovies = 10

// movieGenres maps emotions to the OMDb genre search term.
var movieGenres = map[domain.EmotionLabel]string{
	domain.EmotionPositive: "happy",
	domain.EmotionNegative: "sad",
	domain.EmotionNeutral:  "Documentary",
}

const defaultMovieGenre = "Movie"

// bookTopics maps emotions to the book catalog topic term.
var bookTopics = map[domain.EmotionLabel]string{
	domain.EmotionPositive: "happiness",
	domain.EmotionNegative: "sadness",
	domain.EmotionNeutral:  "life",
}

const defaultBookTopic = "life"

// Aggregator fans out to both catalogs for one emotion and combines the
// results. Each branch is independently fault tolerant: a failure yields
// an empty slice for that catalog only and never fails the overall call.
type Aggregator struct {
	movies domain.MovieCatalog
	books  domain.BookCatalog
}

func NewAggregator(movies domain.MovieCatalog, books domain.BookCatalog) *Aggregator {
	return &Aggregator{movies: movies, books: books}
}

// Recommend queries both catalogs concurrently, so aggregate latency is
// the slower of the two calls, not their sum.
//
// Movies are capped to the top 10 in upstream order: the OMDb search
// payload carries no rating field, so there is no ranking key to sort by.
// This is a known ranking limitation, not an error.
func (a *Aggregator) Recommend(ctx context.Context, emotion domain.EmotionLabel) (*domain.RecommendationResult, error) {
	log := observability.LoggerFromContext(ctx).With("emotion", emotion)

	result := &domain.RecommendationResult{
		Emotion: emotion,
		Movies:  []domain.MovieItem{},
		Books:   []domain.BookItem{},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		movies, err := a.movies.SearchByGenre(ctx, movieGenre(emotion))
		if err != nil {
			log.Warn("movie catalog degraded", "error", err)
			return nil
		}
		if len(movies) > maxMovies {
			movies = movies[:maxMovies]
		}
		if movies != nil {
			result.Movies = movies
		}
		return nil
	})

	g.Go(func() error {
		books, err := a.books.SearchByTopic(ctx, bookTopic(emotion))
		if err != nil {
			log.Warn("book catalog degraded", "error", err)
			return nil
		}
		if books != nil {
			result.Books = books
		}
		return nil
	})

	// Branches swallow their own failures, so Wait never reports one.
	_ = g.Wait()

	log.Info("recommendations aggregated",
		"movies", len(result.Movies),
		"books", len(result.Books),
	)
	return result, nil
}

func movieGenre(emotion domain.EmotionLabel) string {
	if genre, ok := movieGenres[emotion]; ok {
		return genre
	}
	return defaultMovieGenre
}

func bookTopic(emotion domain.EmotionLabel) string {
	if topic, ok := bookTopics[emotion]; ok {
		return topic
	}
	return defaultBookTopic
}

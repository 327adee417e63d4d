package recommend_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/emofy/emofy-api/internal/app/recommend"
	"github.com/emofy/emofy-api/internal/domain"
)

type fakeMovieCatalog struct {
	movies   []domain.MovieItem
	err      error
	gotGenre string
}

func (f *fakeMovieCatalog) SearchByGenre(ctx context.Context, genre string) ([]domain.MovieItem, error) {
	f.gotGenre = genre
	return f.movies, f.err
}

type fakeBookCatalog struct {
	books    []domain.BookItem
	err      error
	gotTopic string
}

func (f *fakeBookCatalog) SearchByTopic(ctx context.Context, topic string) ([]domain.BookItem, error) {
	f.gotTopic = topic
	return f.books, f.err
}

func someMovies(n int) []domain.MovieItem {
	out := make([]domain.MovieItem, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.MovieItem{Title: fmt.Sprintf("Movie %d", i)})
	}
	return out
}

func TestRecommendQueriesMappedTerms(t *testing.T) {
	cases := []struct {
		emotion   domain.EmotionLabel
		wantGenre string
		wantTopic string
	}{
		{domain.EmotionPositive, "happy", "happiness"},
		{domain.EmotionNegative, "sad", "sadness"},
		{domain.EmotionNeutral, "Documentary", "life"},
		{domain.EmotionLabel("confused"), "Movie", "life"},
	}

	for _, tc := range cases {
		movies := &fakeMovieCatalog{}
		books := &fakeBookCatalog{}
		agg := recommend.NewAggregator(movies, books)

		if _, err := agg.Recommend(context.Background(), tc.emotion); err != nil {
			t.Fatalf("Recommend(%q) failed: %v", tc.emotion, err)
		}
		if movies.gotGenre != tc.wantGenre {
			t.Fatalf("emotion %q: expected movie genre %q, got %q", tc.emotion, tc.wantGenre, movies.gotGenre)
		}
		if books.gotTopic != tc.wantTopic {
			t.Fatalf("emotion %q: expected book topic %q, got %q", tc.emotion, tc.wantTopic, books.gotTopic)
		}
	}
}

func TestRecommendIsolatesMovieCatalogFailure(t *testing.T) {
	movies := &fakeMovieCatalog{err: errors.New("omdb down")}
	books := &fakeBookCatalog{books: []domain.BookItem{{Title: "A Book", Author: "Someone"}}}
	agg := recommend.NewAggregator(movies, books)

	result, err := agg.Recommend(context.Background(), domain.EmotionPositive)
	if err != nil {
		t.Fatalf("one failed catalog must not fail the aggregate call: %v", err)
	}

	if result.Movies == nil || len(result.Movies) != 0 {
		t.Fatalf("expected empty (non-nil) movie list, got %#v", result.Movies)
	}
	if len(result.Books) != 1 {
		t.Fatalf("expected the book branch to survive, got %d books", len(result.Books))
	}
}

func TestRecommendIsolatesBookCatalogFailure(t *testing.T) {
	movies := &fakeMovieCatalog{movies: someMovies(2)}
	books := &fakeBookCatalog{err: errors.New("books down")}
	agg := recommend.NewAggregator(movies, books)

	result, err := agg.Recommend(context.Background(), domain.EmotionNegative)
	if err != nil {
		t.Fatalf("one failed catalog must not fail the aggregate call: %v", err)
	}

	if len(result.Movies) != 2 {
		t.Fatalf("expected the movie branch to survive, got %d movies", len(result.Movies))
	}
	if result.Books == nil || len(result.Books) != 0 {
		t.Fatalf("expected empty (non-nil) book list, got %#v", result.Books)
	}
}

func TestRecommendCapsMoviesAtTen(t *testing.T) {
	movies := &fakeMovieCatalog{movies: someMovies(15)}
	books := &fakeBookCatalog{}
	agg := recommend.NewAggregator(movies, books)

	result, err := agg.Recommend(context.Background(), domain.EmotionNeutral)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if len(result.Movies) != 10 {
		t.Fatalf("expected at most 10 movies, got %d", len(result.Movies))
	}
	// Upstream order is preserved; there is no rating key to rank by.
	if result.Movies[0].Title != "Movie 0" {
		t.Fatalf("expected upstream order, got first title %q", result.Movies[0].Title)
	}
}

func TestRecommendCarriesTheEmotion(t *testing.T) {
	agg := recommend.NewAggregator(&fakeMovieCatalog{}, &fakeBookCatalog{})

	result, err := agg.Recommend(context.Background(), domain.EmotionPositive)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if result.Emotion != domain.EmotionPositive {
		t.Fatalf("expected emotion to be echoed, got %q", result.Emotion)
	}
}

package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/emofy/emofy-api/internal/domain"
)

// OMDBClient queries the OMDb movie catalog by free-text genre term with
// the media-type filter fixed to "movie".
type OMDBClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker[[]domain.MovieItem]
}

func NewOMDBClient(baseURL, apiKey string, timeout time.Duration) *OMDBClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OMDBClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		cb:         newBreaker[[]domain.MovieItem]("omdb"),
	}
}

// omdbSearchResponse mirrors OMDb's search payload. Response is the
// literal string "False" (with an Error message) when nothing matched.
type omdbSearchResponse struct {
	Search   []omdbMovie `json:"Search"`
	Response string      `json:"Response"`
	Error    string      `json:"Error"`
}

type omdbMovie struct {
	Title  string `json:"Title"`
	Poster string `json:"Poster"`
}

func (c *OMDBClient) SearchByGenre(ctx context.Context, genre string) ([]domain.MovieItem, error) {
	return c.cb.Execute(func() ([]domain.MovieItem, error) {
		return c.search(ctx, genre)
	})
}

func (c *OMDBClient) search(ctx context.Context, genre string) ([]domain.MovieItem, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("s", genre)
	q.Set("type", "movie")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building omdb request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("omdb request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb returned status %d", res.StatusCode)
	}

	var payload omdbSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding omdb response: %w", err)
	}

	// "Response": "False" means no matches, which is not a failure.
	movies := make([]domain.MovieItem, 0, len(payload.Search))
	for _, m := range payload.Search {
		movies = append(movies, domain.MovieItem{
			Title:     m.Title,
			PosterURL: posterURL(m.Poster),
		})
	}
	return movies, nil
}

// posterURL normalizes OMDb's missing-poster markers to nil instead of
// passing a misleading placeholder string to callers.
func posterURL(poster string) *string {
	if poster == "" || poster == "N/A" {
		return nil
	}
	return &poster
}

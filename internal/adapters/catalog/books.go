package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/emofy/emofy-api/internal/domain"
)

// pageSize is the book catalog's own page size; results are capped to it.
const pageSize = 10

// unknownAuthor is the sentinel used when the upstream omits authors.
const unknownAuthor = "Unknown Author"

// BooksClient queries the Google Books volumes endpoint by free-text
// topic term.
type BooksClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker[[]domain.BookItem]
}

func NewBooksClient(baseURL string, timeout time.Duration) *BooksClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BooksClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		cb:         newBreaker[[]domain.BookItem]("google-books"),
	}
}

type booksResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title      string   `json:"title"`
			Authors    []string `json:"authors"`
			ImageLinks *struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (c *BooksClient) SearchByTopic(ctx context.Context, topic string) ([]domain.BookItem, error) {
	return c.cb.Execute(func() ([]domain.BookItem, error) {
		return c.search(ctx, topic)
	})
}

func (c *BooksClient) search(ctx context.Context, topic string) ([]domain.BookItem, error) {
	q := url.Values{}
	q.Set("q", topic)
	q.Set("maxResults", fmt.Sprintf("%d", pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/volumes?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building books request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("books request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("books returned status %d", res.StatusCode)
	}

	var payload booksResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding books response: %w", err)
	}

	books := make([]domain.BookItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		if len(books) >= pageSize {
			break
		}

		info := item.VolumeInfo

		author := unknownAuthor
		if len(info.Authors) > 0 {
			author = strings.Join(info.Authors, ", ")
		}

		var cover *string
		if info.ImageLinks != nil && info.ImageLinks.Thumbnail != "" {
			thumb := info.ImageLinks.Thumbnail
			cover = &thumb
		}

		books = append(books, domain.BookItem{
			Title:    info.Title,
			CoverURL: cover,
			Author:   author,
		})
	}
	return books, nil
}

package httpadapter_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	httpadapter "github.com/emofy/emofy-api/internal/adapters/http"
	memstore "github.com/emofy/emofy-api/internal/adapters/storage/memory"
	"github.com/emofy/emofy-api/internal/app/account"
	"github.com/emofy/emofy-api/internal/app/recommend"
	"github.com/emofy/emofy-api/internal/app/sentiment"
	sessionapp "github.com/emofy/emofy-api/internal/app/session"
	"github.com/emofy/emofy-api/internal/auth"
	"github.com/emofy/emofy-api/internal/domain"
)

type fakeModel struct {
	reply string
}

func (f *fakeModel) GenerateReply(ctx context.Context, history []domain.Turn) (string, error) {
	return f.reply, nil
}

type fakeMovies struct{}

func (fakeMovies) SearchByGenre(ctx context.Context, genre string) ([]domain.MovieItem, error) {
	return []domain.MovieItem{{Title: "Movie for " + genre}}, nil
}

type fakeBooks struct{}

func (fakeBooks) SearchByTopic(ctx context.Context, topic string) ([]domain.BookItem, error) {
	return []domain.BookItem{{Title: "Book about " + topic, Author: "Unknown Author"}}, nil
}

func newTestServer(t *testing.T, modelReply string) http.Handler {
	t.Helper()

	users := memstore.NewUserStore()
	sessions := memstore.NewSessionStore(0)

	tokens, err := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}

	engine := sentiment.NewEngine(&fakeModel{reply: modelReply})
	aggregator := recommend.NewAggregator(fakeMovies{}, fakeBooks{})
	orchestrator := sessionapp.NewOrchestrator(engine, aggregator, sessions, users)
	accounts := account.NewService(users, tokens)

	return httpadapter.NewServer(accounts, orchestrator, auth.NewMiddleware(tokens), httpadapter.Options{})
}

func doJSON(t *testing.T, srv http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decoding response body %q: %v", w.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, "ok")

	w := doJSON(t, srv, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestSignupLoginAnalyzeRecommend(t *testing.T) {
	srv := newTestServer(t, "It is good to hear you are happy and excited!")

	// Signup
	w := doJSON(t, srv, http.MethodPost, "/signup", "", map[string]string{
		"username": "alice", "password": "correct-horse",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	// Duplicate signup conflicts
	w = doJSON(t, srv, http.MethodPost, "/signup", "", map[string]string{
		"username": "alice", "password": "correct-horse",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", w.Code)
	}

	// Login
	w = doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"username": "alice", "password": "correct-horse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &login)
	if login.Token == "" {
		t.Fatal("login: expected a token")
	}

	// Analyze sentiment
	w = doJSON(t, srv, http.MethodPost, "/analyze-sentiment", login.Token, map[string]string{
		"text": "I feel great today",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("analyze: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var analyzed struct {
		Reply   string `json:"reply_text"`
		Emotion string `json:"emotion"`
	}
	decodeBody(t, w, &analyzed)
	if analyzed.Reply == "" {
		t.Fatal("analyze: expected a reply")
	}
	if analyzed.Emotion != "positive" {
		t.Fatalf("analyze: expected positive emotion, got %q", analyzed.Emotion)
	}

	// Recommend keyed to the derived emotion
	w = doJSON(t, srv, http.MethodPost, "/recommend", login.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("recommend: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var recs struct {
		Emotion string `json:"emotion"`
		Movies  []struct {
			Title string `json:"title"`
		} `json:"movies"`
		Books []struct {
			Title string `json:"title"`
		} `json:"books"`
	}
	decodeBody(t, w, &recs)
	if recs.Emotion != "positive" {
		t.Fatalf("recommend: expected positive emotion, got %q", recs.Emotion)
	}
	if len(recs.Movies) != 1 || recs.Movies[0].Title != "Movie for happy" {
		t.Fatalf("recommend: expected movies keyed to the mapped genre, got %+v", recs.Movies)
	}
	if len(recs.Books) != 1 || recs.Books[0].Title != "Book about happiness" {
		t.Fatalf("recommend: expected books keyed to the mapped topic, got %+v", recs.Books)
	}
}

func TestRecommendWithoutPriorAnalysis(t *testing.T) {
	srv := newTestServer(t, "hello")

	doJSON(t, srv, http.MethodPost, "/signup", "", map[string]string{
		"username": "bob", "password": "hunter22",
	})
	w := doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"username": "bob", "password": "hunter22",
	})
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &login)

	w = doJSON(t, srv, http.MethodPost, "/recommend", login.Token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 before any analysis, got %d", w.Code)
	}
	var errResp struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	decodeBody(t, w, &errResp)
	if errResp.Error.Kind != "precondition_failed" {
		t.Fatalf("expected precondition_failed kind, got %q", errResp.Error.Kind)
	}
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	srv := newTestServer(t, "hello")

	for _, path := range []string{"/analyze-sentiment", "/recommend"} {
		w := doJSON(t, srv, http.MethodPost, path, "", map[string]string{"text": "hi"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without token, got %d", path, w.Code)
		}
	}

	w := doJSON(t, srv, http.MethodPost, "/analyze-sentiment", "bogus-token", map[string]string{"text": "hi"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an invalid token, got %d", w.Code)
	}
}

func TestLoginWithWrongPassword(t *testing.T) {
	srv := newTestServer(t, "hello")

	doJSON(t, srv, http.MethodPost, "/signup", "", map[string]string{
		"username": "carol", "password": "right-password",
	})

	w := doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"username": "carol", "password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}

	// Unknown user gets the same status, no enumeration signal.
	w = doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"username": "nobody", "password": "whatever",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", w.Code)
	}
}

func TestAnalyzeRejectsMissingText(t *testing.T) {
	srv := newTestServer(t, "hello")

	doJSON(t, srv, http.MethodPost, "/signup", "", map[string]string{
		"username": "dave", "password": "some-password",
	})
	w := doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"username": "dave", "password": "some-password",
	})
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &login)

	w = doJSON(t, srv, http.MethodPost, "/analyze-sentiment", login.Token, map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing text, got %d", w.Code)
	}
}

func TestAuthViaCookie(t *testing.T) {
	srv := newTestServer(t, "you sound happy")

	doJSON(t, srv, http.MethodPost, "/signup", "", map[string]string{
		"username": "erin", "password": "cookie-login",
	})
	w := doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"username": "erin", "password": "cookie-login",
	})

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("login must set the token cookie")
	}
	if !cookie.HttpOnly {
		t.Fatal("token cookie must be HttpOnly")
	}

	body := bytes.NewBufferString(`{"text":"cookies work"}`)
	req := httptest.NewRequest(http.MethodPost, "/analyze-sentiment", body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected cookie auth to work, got %d, body=%s", rec.Code, rec.Body.String())
	}
}

package httpadapter

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/emofy/emofy-api/internal/app/account"
	"github.com/emofy/emofy-api/internal/app/session"
	"github.com/emofy/emofy-api/internal/auth"
	"github.com/emofy/emofy-api/internal/domain"
)

type Server struct {
	accounts  *account.Service
	sessions  *session.Orchestrator
	authmw    *auth.Middleware
	cookieTTL time.Duration
	validate  *validator.Validate
}

// Options tunes the HTTP surface; zero values fall back to safe defaults.
type Options struct {
	CookieTTL       time.Duration
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// NewServer wires the chi router: public auth endpoints and the
// token-protected sentiment/recommendation endpoints.
func NewServer(
	accounts *account.Service,
	sessions *session.Orchestrator,
	authmw *auth.Middleware,
	opts Options,
) http.Handler {
	s := &Server{
		accounts:  accounts,
		sessions:  sessions,
		authmw:    authmw,
		cookieTTL: opts.CookieTTL,
		validate:  validator.New(),
	}
	if s.cookieTTL <= 0 {
		s.cookieTTL = time.Hour
	}
	authmw.Unauthorized = func(w http.ResponseWriter, r *http.Request, err error) {
		writeError(w, err)
	}

	loginLimit := opts.LoginRateLimit
	if loginLimit <= 0 {
		loginLimit = 5
	}
	loginWindow := opts.LoginRateWindow
	if loginWindow <= 0 {
		loginWindow = 5 * time.Minute
	}

	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(withLogging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.Get("/healthz", s.handleHealthz)
	r.Post("/signup", s.handleSignup)
	r.With(httprate.LimitByIP(loginLimit, loginWindow)).Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth)
		r.Post("/analyze-sentiment", s.handleAnalyzeSentiment)
		r.Post("/recommend", s.handleRecommend)
	})

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type sentimentRequest struct {
	Text string `json:"text" validate:"required"`
}

type sentimentResponse struct {
	Reply   string `json:"reply_text"`
	Emotion string `json:"emotion"`
}

type movieResponse struct {
	Title     string  `json:"title"`
	PosterURL *string `json:"poster_url"`
}

type bookResponse struct {
	Title    string  `json:"title"`
	CoverURL *string `json:"cover_url"`
	Author   string  `json:"author"`
}

type recommendResponse struct {
	Emotion string          `json:"emotion"`
	Movies  []movieResponse `json:"movies"`
	Books   []bookResponse  `json:"books"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	if err := s.accounts.Signup(r.Context(), req.Username, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully!"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	token, err := s.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})

	writeJSON(w, http.StatusOK, loginResponse{Message: "Login successful!", Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful!"})
}

func (s *Server) handleAnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var req sentimentRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	out, err := s.sessions.AnalyzeSentiment(r.Context(), domain.UserID(username), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sentimentResponse{
		Reply:   out.Reply,
		Emotion: string(out.Emotion),
	})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	result, err := s.sessions.Recommend(r.Context(), domain.UserID(username))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecommendResponse(result))
}

// ─────────────────────────────────────────────
// Response mapping
// ─────────────────────────────────────────────

func toRecommendResponse(result *domain.RecommendationResult) recommendResponse {
	movies := make([]movieResponse, 0, len(result.Movies))
	for _, m := range result.Movies {
		movies = append(movies, movieResponse{Title: m.Title, PosterURL: m.PosterURL})
	}

	books := make([]bookResponse, 0, len(result.Books))
	for _, b := range result.Books {
		books = append(books, bookResponse{Title: b.Title, CoverURL: b.CoverURL, Author: b.Author})
	}

	return recommendResponse{
		Emotion: string(result.Emotion),
		Movies:  movies,
		Books:   books,
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorKind(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeErrorKind(w, http.StatusBadRequest, "invalid_input", validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "invalid field: " + verrs[0].Field()
	}
	return "invalid request"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to structured responses; no hard failure
// ever yields a 200.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeErrorKind(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeErrorKind(w, http.StatusUnauthorized, "unauthorized", "invalid or missing credentials")
	case errors.Is(err, domain.ErrUserExists):
		writeErrorKind(w, http.StatusConflict, "user_exists", "username is already taken")
	case errors.Is(err, domain.ErrNoEmotion):
		writeErrorKind(w, http.StatusBadRequest, "precondition_failed", "no emotion detected yet")
	case errors.Is(err, domain.ErrModelUnavailable):
		writeErrorKind(w, http.StatusBadGateway, "model_unavailable", "sentiment analysis failed")
	default:
		writeErrorKind(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func writeErrorKind(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Kind: kind, Message: message}})
}

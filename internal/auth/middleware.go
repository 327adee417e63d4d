package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/emofy/emofy-api/internal/domain"
	"github.com/emofy/emofy-api/internal/observability"
)

type contextKey string

const usernameContextKey contextKey = "auth_username"

// CookieName is the HttpOnly cookie the login handler sets.
const CookieName = "token"

// Middleware enforces token authentication on a route group. The token is
// read from the Authorization header (Bearer scheme) or the token cookie.
type Middleware struct {
	tokens *TokenManager
	// Unauthorized renders the 401 response; the HTTP adapter injects its
	// structured error writer here.
	Unauthorized func(w http.ResponseWriter, r *http.Request, err error)
}

func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{
		tokens: tokens,
		Unauthorized: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		},
	}
}

// RequireAuth rejects requests without a valid token and stores the
// verified username in the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			m.Unauthorized(w, r, domain.ErrUnauthorized)
			return
		}

		username, err := m.tokens.VerifyToken(token)
		if err != nil {
			observability.LoggerFromContext(r.Context()).Warn("rejected token", "error", err)
			m.Unauthorized(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), usernameContextKey, username)
		ctx = observability.WithUsername(ctx, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UsernameFromContext returns the authenticated username set by RequireAuth.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameContextKey).(string)
	return username, ok && username != ""
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, found := strings.CutPrefix(h, "Bearer "); found {
			return token
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/emofy/emofy-api/internal/auth"
	"github.com/emofy/emofy-api/internal/domain"
	"github.com/emofy/emofy-api/internal/observability"
)

// Service holds the signup/login logic on top of the user store and the
// token manager.
type Service struct {
	users  domain.UserStore
	tokens *auth.TokenManager
}

func NewService(users domain.UserStore, tokens *auth.TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Signup registers a new user with a bcrypt-hashed password. New users
// start with an empty history and a neutral last emotion.
func (s *Service) Signup(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.users.CreateUser(ctx, username, hash); err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info("user registered", "username", username)
	return nil
}

// Login verifies the credentials and issues a session token. The same
// error is returned for unknown users and wrong passwords so the endpoint
// cannot be used to enumerate usernames.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetUser(ctx, username)
	if err != nil {
		return "", fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
	}

	token, err := s.tokens.IssueToken(username)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	observability.LoggerFromContext(ctx).Info("user logged in", "username", username)
	return token, nil
}

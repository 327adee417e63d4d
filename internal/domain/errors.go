package domain

import "errors"

var (
	// ErrInvalidInput marks a missing or empty required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized marks an absent, invalid or expired credential token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUserExists is returned by signup when the username is taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound is a soft failure: the orchestrator logs it and
	// proceeds without persistence rather than failing the response.
	ErrUserNotFound = errors.New("user not found")

	// ErrModelUnavailable wraps any failure of the conversational model call.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrNoEmotion is returned when a recommendation is requested before
	// any emotion has been derived for the session.
	ErrNoEmotion = errors.New("no emotion derived yet")
)

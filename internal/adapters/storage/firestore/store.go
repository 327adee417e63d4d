package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/emofy/emofy-api/internal/domain"
)

// Store implements domain.UserStore on Firestore. Users live in a single
// collection keyed by username.
type Store struct {
	client *firestore.Client
}

func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) userDoc(username string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(username)
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type userDoc struct {
	PasswordHash string           `firestore:"password_hash"`
	History      []interactionDoc `firestore:"history"`
	LastEmotion  string           `firestore:"last_emotion"`
	CreatedAt    time.Time        `firestore:"created_at"`
}

// interactionDoc stores one (input, reply) pair. Firestore forbids nested
// arrays, so pairs are maps rather than two-element arrays.
type interactionDoc struct {
	Input string `firestore:"input"`
	Reply string `firestore:"reply"`
}

// ─────────────────────────────────────────
// UserStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) error {
	doc := userDoc{
		PasswordHash: passwordHash,
		History:      []interactionDoc{},
		LastEmotion:  string(domain.EmotionNeutral),
		CreatedAt:    time.Now(),
	}

	if _, err := s.userDoc(username).Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return domain.ErrUserExists
		}
		return fmt.Errorf("firestore CreateUser: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, username string) (*domain.UserRecord, error) {
	snap, err := s.userDoc(username).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("firestore GetUser: %w", err)
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetUser decode: %w", err)
	}

	return toUserRecord(username, doc), nil
}

// RecordInteraction runs in a transaction: the read-append-write cannot
// race with a concurrent call for the same user, so no history entry is
// ever lost; last writer wins on last_emotion.
func (s *Store) RecordInteraction(ctx context.Context, username, input, reply string, emotion domain.EmotionLabel) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := s.userDoc(username)

		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return domain.ErrUserNotFound
			}
			return err
		}

		var doc userDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("decode userDoc: %w", err)
		}

		doc.History = append(doc.History, interactionDoc{Input: input, Reply: reply})

		return tx.Update(ref, []firestore.Update{
			{Path: "history", Value: doc.History},
			{Path: "last_emotion", Value: string(emotion)},
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("firestore RecordInteraction: %w", err)
	}
	return nil
}

func toUserRecord(username string, doc userDoc) *domain.UserRecord {
	history := make([]domain.Interaction, 0, len(doc.History))
	for _, pair := range doc.History {
		history = append(history, domain.Interaction{Input: pair.Input, Reply: pair.Reply})
	}

	return &domain.UserRecord{
		Username:     username,
		PasswordHash: doc.PasswordHash,
		History:      history,
		LastEmotion:  domain.EmotionLabel(doc.LastEmotion),
		CreatedAt:    doc.CreatedAt,
	}
}

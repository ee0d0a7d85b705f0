package studysession

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrSessionNotFound  = fmt.Errorf("study session %w", ErrNotFound)
	ErrGroupNotFound    = fmt.Errorf("group %w", ErrNotFound)
	ErrActivityNotFound = fmt.Errorf("study activity %w", ErrNotFound)
	ErrWordNotFound     = fmt.Errorf("word %w", ErrNotFound)

	ErrNoUpdateFields = errors.New("no valid fields to update")
)

// ValidationError reports malformed or missing caller input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go

type SessionRepository interface {
	ListSessions(ctx context.Context, page Page) ([]Session, int, error)
	CreateSession(ctx context.Context, groupID, activityID int64) (Session, error)
	GetSession(ctx context.Context, id int64) (Session, error)
	ListSessionWords(ctx context.Context, sessionID int64, page Page) ([]SessionWord, int, error)
	UpdateSession(ctx context.Context, id int64, update SessionUpdate) (Session, error)
	DeleteSession(ctx context.Context, id int64) error
	ResetHistory(ctx context.Context) error
}

type ReviewRepository interface {
	// SubmitReviews stores all reviews and rebuilds the word rollup in one
	// transaction. Nothing is stored if the session or any word is missing.
	SubmitReviews(ctx context.Context, sessionID int64, reviews []Review) (int, error)
	WordStats(ctx context.Context, wordID int64) (WordStats, error)
}

type CatalogRepository interface {
	ImportCatalog(ctx context.Context, catalog Catalog) error
}

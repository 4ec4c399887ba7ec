package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateSession(ctx context.Context, in Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	UpdateSession(ctx context.Context, in Session) error
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context, filter SessionListFilter) ([]Session, error)

	// InTx runs fn inside one transaction; fn must use the Repository it is
	// given.
	InTx(ctx context.Context, fn func(Repository) error) error

	// UpsertCompletion replaces any row for the same session and date. An
	// identical row is left alone so recorded_at keeps the first write.
	UpsertCompletion(ctx context.Context, in Completion) error
	GetCompletion(ctx context.Context, sessionID, date string) (Completion, error)
	ListCompletions(ctx context.Context, filter CompletionListFilter) ([]Completion, error)
}

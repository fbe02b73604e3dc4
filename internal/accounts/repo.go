package accounts

import (
	"context"
	"time"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "account not found" }

type Repo interface {
	GetByID(ctx context.Context, accountID string) (Account, error)
	Upsert(ctx context.Context, account Account) error
	// UpdateState overwrites the stored lifecycle snapshot unconditionally,
	// refreshing updated_at even when the state is unchanged.
	UpdateState(ctx context.Context, accountID, state, reason string, at time.Time) error
	ListIDs(ctx context.Context) ([]string, error)
}

package transitions

import "context"

type Repo interface {
	Append(ctx context.Context, record Record) error
	// ListByAccount returns history newest first.
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]Record, error)
}

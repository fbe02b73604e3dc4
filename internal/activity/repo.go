package activity

import (
	"context"
	"time"
)

type Repo interface {
	Append(ctx context.Context, entry Entry) error
	// CountInRange counts entries with created_at in [from, to].
	CountInRange(ctx context.Context, accountID string, from, to time.Time) (int, error)
}

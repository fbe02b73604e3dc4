package artifacts

import "context"

type Repo interface {
	CountsForAccount(ctx context.Context, accountID string) (Counts, error)
	Add(ctx context.Context, accountID, kind string) error
}

package activity

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Append(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	var payload any
	if len(entry.Payload) > 0 {
		raw, err := json.Marshal(entry.Payload)
		if err != nil {
			return err
		}
		payload = raw
	}
	const query = `
INSERT INTO activity_log (id, account_id, kind, payload, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, entry.ID, entry.AccountID, entry.Kind, payload, entry.CreatedAt)
	return err
}

func (r *PGRepo) CountInRange(ctx context.Context, accountID string, from, to time.Time) (int, error) {
	const query = `
SELECT count(*)
FROM activity_log
WHERE account_id = $1 AND created_at >= $2 AND created_at <= $3`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, accountID, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

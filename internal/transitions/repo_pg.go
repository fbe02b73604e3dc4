package transitions

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

func (r *PGRepo) Append(ctx context.Context, record Record) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	var meta any
	if len(record.Meta) > 0 {
		raw, err := json.Marshal(record.Meta)
		if err != nil {
			return err
		}
		meta = raw
	}
	const query = `
INSERT INTO transitions (id, account_id, previous_state, new_state, reason, meta, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		record.ID,
		record.AccountID,
		nullablePrevious(record.PreviousState),
		record.NewState,
		record.Reason,
		meta,
		record.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]Record, error) {
	const query = `
SELECT id, account_id, previous_state, new_state, reason, meta, created_at
FROM transitions
WHERE account_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Record, 0, limit)
	for rows.Next() {
		var record Record
		var previous sql.NullString
		var meta []byte
		if err := rows.Scan(
			&record.ID,
			&record.AccountID,
			&previous,
			&record.NewState,
			&record.Reason,
			&meta,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		if previous.Valid {
			value := previous.String
			record.PreviousState = &value
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &record.Meta); err != nil {
				return nil, err
			}
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func nullablePrevious(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

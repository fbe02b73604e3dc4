package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) GetByID(ctx context.Context, accountID string) (Account, error) {
	const query = `
SELECT id, email, is_verified, email_verified, verified_at, plan_status,
       payment_failed, feature_blocked, just_converted, credits, last_active_at,
       state, state_reason, state_updated_at, created_at, updated_at
FROM accounts
WHERE id = $1
LIMIT 1`
	var account Account
	var email sql.NullString
	var isVerified, emailVerified, paymentFailed, featureBlocked, justConverted sql.NullBool
	var verifiedAt, lastActiveAt, stateUpdatedAt, updatedAt sql.NullTime
	var planStatus, state, stateReason sql.NullString
	var credits sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, accountID).Scan(
		&account.ID,
		&email,
		&isVerified,
		&emailVerified,
		&verifiedAt,
		&planStatus,
		&paymentFailed,
		&featureBlocked,
		&justConverted,
		&credits,
		&lastActiveAt,
		&state,
		&stateReason,
		&stateUpdatedAt,
		&account.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	if email.Valid {
		account.Email = email.String
	}
	account.IsVerified = nullableBoolPtr(isVerified)
	account.EmailVerified = nullableBoolPtr(emailVerified)
	account.VerifiedAt = nullableTimePtr(verifiedAt)
	if planStatus.Valid {
		account.PlanStatus = planStatus.String
	}
	account.PaymentFailed = nullableBoolPtr(paymentFailed)
	account.FeatureBlocked = nullableBoolPtr(featureBlocked)
	account.JustConverted = nullableBoolPtr(justConverted)
	if credits.Valid {
		value := credits.Float64
		account.Credits = &value
	}
	account.LastActiveAt = nullableTimePtr(lastActiveAt)
	if state.Valid {
		account.State = state.String
	}
	if stateReason.Valid {
		account.StateReason = stateReason.String
	}
	account.StateUpdatedAt = nullableTimePtr(stateUpdatedAt)
	if updatedAt.Valid {
		account.UpdatedAt = updatedAt.Time
	} else {
		account.UpdatedAt = time.Now().UTC()
	}
	return account, nil
}

func (r *PGRepo) Upsert(ctx context.Context, account Account) error {
	const query = `
INSERT INTO accounts (id, email, is_verified, email_verified, verified_at, plan_status,
                      payment_failed, feature_blocked, just_converted, credits, last_active_at,
                      created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  is_verified = EXCLUDED.is_verified,
  email_verified = EXCLUDED.email_verified,
  verified_at = EXCLUDED.verified_at,
  plan_status = EXCLUDED.plan_status,
  payment_failed = EXCLUDED.payment_failed,
  feature_blocked = EXCLUDED.feature_blocked,
  just_converted = EXCLUDED.just_converted,
  credits = EXCLUDED.credits,
  last_active_at = EXCLUDED.last_active_at,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		account.ID,
		nullableString(account.Email),
		nullableBool(account.IsVerified),
		nullableBool(account.EmailVerified),
		nullableTime(account.VerifiedAt),
		nullableString(account.PlanStatus),
		nullableBool(account.PaymentFailed),
		nullableBool(account.FeatureBlocked),
		nullableBool(account.JustConverted),
		nullableFloat(account.Credits),
		nullableTime(account.LastActiveAt),
	)
	return err
}

func (r *PGRepo) UpdateState(ctx context.Context, accountID, state, reason string, at time.Time) error {
	const query = `
UPDATE accounts
SET state = $2, state_reason = $3, state_updated_at = $4, updated_at = $4
WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, accountID, state, reason, at)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ListIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM accounts ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableBool(value *bool) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableBoolPtr(value sql.NullBool) *bool {
	if !value.Valid {
		return nil
	}
	b := value.Bool
	return &b
}

func nullableTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}

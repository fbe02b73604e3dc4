package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"lifecycle-backend/internal/accounts"
	"lifecycle-backend/internal/artifacts"
	"lifecycle-backend/internal/shared/metrics"
	"lifecycle-backend/internal/shared/telemetry"
	"lifecycle-backend/internal/transitions"
)

// Notifier is the downstream trigger contract. Delivery is best effort and
// must never affect a resolution; implementations swallow their own errors.
type Notifier interface {
	Notify(ctx context.Context, accountID string, res Resolution)
}

// Service runs the normalize -> resolve -> record pipeline. Resolve is
// read-only; Record additionally appends history on change and always
// refreshes the stored snapshot.
//
// There is no locking around the read-then-conditionally-write sequence;
// concurrent calls for the same account can race. Callers needing strict
// consistency serialize per account id externally.
type Service struct {
	Accounts    accounts.Repo
	Artifacts   artifacts.Repo
	Transitions transitions.Repo
	Churn       *Evaluator
	Notifier    Notifier
	Now         func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Resolve classifies the account without writing anything.
// A missing account terminates as Guest/user_not_found, not as an error.
func (s *Service) Resolve(ctx context.Context, accountID string, overrides Overrides) (Resolution, error) {
	account, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return GuestResolution(), nil
		}
		return Resolution{}, err
	}
	res, _, err := s.evaluate(ctx, account, overrides)
	return res, err
}

// Record resolves, appends a transition iff the state changed, and
// unconditionally overwrites the stored snapshot so updatedAt stays fresh.
// Re-running with identical signals adds no history, only a fresher timestamp.
func (s *Service) Record(ctx context.Context, accountID string, overrides Overrides, meta map[string]any) (Resolution, error) {
	account, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return GuestResolution(), nil
		}
		return Resolution{}, err
	}

	res, at, err := s.evaluate(ctx, account, overrides)
	if err != nil {
		return Resolution{}, err
	}

	if string(res.State) != account.State {
		record := transitions.Record{
			ID:        uuid.NewString(),
			AccountID: account.ID,
			NewState:  string(res.State),
			Reason:    res.Reason,
			Meta:      meta,
			CreatedAt: at,
		}
		if account.State != "" {
			previous := account.State
			record.PreviousState = &previous
		}
		if err := s.Transitions.Append(ctx, record); err != nil {
			return Resolution{}, err
		}
		metrics.IncTransitionsRecorded()
		telemetry.Info("lifecycle.transition", map[string]any{
			"account_id": account.ID,
			"from":       account.State,
			"to":         res.State,
			"reason":     res.Reason,
		})
	}

	if err := s.Accounts.UpdateState(ctx, account.ID, string(res.State), res.Reason, at); err != nil {
		return Resolution{}, err
	}

	if s.Notifier != nil {
		s.Notifier.Notify(ctx, account.ID, res)
	}
	return res, nil
}

func (s *Service) evaluate(ctx context.Context, account accounts.Account, overrides Overrides) (Resolution, time.Time, error) {
	started := time.Now()
	now := s.now()
	signals := Normalize(overrides, account, now)

	counts, err := s.Artifacts.CountsForAccount(ctx, account.ID)
	if err != nil {
		return Resolution{}, now, err
	}

	churnRisk := false
	if s.Churn != nil {
		churnRisk, err = s.Churn.IsChurnRisk(ctx, account.ID, effectiveLastActive(overrides, account), now)
		if err != nil {
			return Resolution{}, now, err
		}
	}

	res := Resolve(Input{Signals: signals, Counts: counts, ChurnRisk: churnRisk})
	metrics.IncResolutions()
	metrics.ObserveResolutionDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	return res, now, nil
}

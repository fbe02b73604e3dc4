package lifecycle

import (
	"context"
	"time"

	"lifecycle-backend/internal/activity"
)

const (
	churnWindow            = 7 * 24 * time.Hour
	churnDeclineThreshold  = 60.0
	churnInactiveThreshold = 14
	dormantThreshold       = 30
)

// Evaluator flags churn risk from two independent triggers: a usage decline
// across two trailing 7-day windows, or inactivity of 14 days or more.
// It only reads; store errors propagate to the caller.
type Evaluator struct {
	Activity activity.Repo
}

func (e *Evaluator) IsChurnRisk(ctx context.Context, accountID string, lastActiveAt *time.Time, now time.Time) (bool, error) {
	if days := inactiveDays(lastActiveAt, now); days != nil && *days >= churnInactiveThreshold {
		return true, nil
	}
	if e.Activity == nil {
		return false, nil
	}
	// Window boundaries follow entry age: the recent window takes age <= 7
	// days inclusive, so an entry aged exactly 7 days belongs to it and not
	// to the baseline. The baseline is the 14-day count minus the recent one,
	// which keeps an entry aged exactly 14 days in the baseline.
	recent, err := e.Activity.CountInRange(ctx, accountID, now.Add(-churnWindow), now)
	if err != nil {
		return false, err
	}
	trailing, err := e.Activity.CountInRange(ctx, accountID, now.Add(-2*churnWindow), now)
	if err != nil {
		return false, err
	}
	baseline := trailing - recent
	// An empty baseline would make any activity look like a 100% decline.
	if baseline == 0 {
		return false, nil
	}
	decline := float64(baseline-recent) / float64(baseline) * 100
	return decline >= churnDeclineThreshold, nil
}

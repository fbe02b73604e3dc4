package notify

import (
	"context"

	"lifecycle-backend/internal/activity"
	"lifecycle-backend/internal/lifecycle"
	"lifecycle-backend/internal/shared/metrics"
	"lifecycle-backend/internal/shared/telemetry"
)

// Dispatcher performs the actual delivery. Implementations live outside
// this service (mail provider, in-app inbox); LogDispatcher is the default.
type Dispatcher interface {
	Send(ctx context.Context, accountID, key string, tpl Template) error
}

// Trigger maps a resolution's reason code to zero or more template keys and
// dispatches them best effort. A failed send never fails the resolution; it
// is logged and appended to the activity log for later decline analysis.
type Trigger struct {
	Registry   *Registry
	Dispatcher Dispatcher
	Activity   activity.Repo
}

var reasonTemplates = map[string][]string{
	lifecycle.ReasonPaymentFailed:    {"PAYMENT_FAILED"},
	lifecycle.ReasonChurnRisk:        {"CHURN_WINBACK"},
	lifecycle.ReasonNotVerified:      {"VERIFY_EMAIL"},
	lifecycle.ReasonNoResume:         {"RESUME_NUDGE"},
	lifecycle.ReasonResumeIncomplete: {"RESUME_ABANDONMENT"},
	lifecycle.ReasonCreditsExhausted: {"CREDIT_TOPUP"},
	lifecycle.ReasonPlanExpired:      {"PLAN_RENEWAL"},
	lifecycle.ReasonFeatureBlocked:   {"FEATURE_UNBLOCK"},
}

// Notify implements lifecycle.Notifier.
func (t *Trigger) Notify(ctx context.Context, accountID string, res lifecycle.Resolution) {
	if t == nil || t.Registry == nil || t.Dispatcher == nil {
		return
	}
	for _, key := range reasonTemplates[res.Reason] {
		tpl, ok := t.Registry.Lookup(key)
		if !ok {
			telemetry.Error("notify.template_missing", map[string]any{
				"account_id": accountID,
				"key":        key,
				"reason":     res.Reason,
			})
			continue
		}
		if err := t.Dispatcher.Send(ctx, accountID, key, tpl); err != nil {
			metrics.IncNotificationsFailed()
			telemetry.Error("notify.send_failed", map[string]any{
				"account_id": accountID,
				"key":        key,
				"reason":     res.Reason,
				"error":      err.Error(),
			})
			t.logActivity(ctx, accountID, activity.KindNotificationFailed, key, res, err)
			continue
		}
		metrics.IncNotificationsSent()
		t.logActivity(ctx, accountID, activity.KindNotificationSent, key, res, nil)
	}
}

func (t *Trigger) logActivity(ctx context.Context, accountID, kind, key string, res lifecycle.Resolution, sendErr error) {
	if t.Activity == nil {
		return
	}
	payload := map[string]any{
		"template": key,
		"state":    string(res.State),
		"reason":   res.Reason,
	}
	if sendErr != nil {
		payload["error"] = sendErr.Error()
	}
	if err := t.Activity.Append(ctx, activity.Entry{AccountID: accountID, Kind: kind, Payload: payload}); err != nil {
		telemetry.Error("notify.activity_append_failed", map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		})
	}
}

// LogDispatcher writes deliveries to the log instead of sending anything.
type LogDispatcher struct{}

func (LogDispatcher) Send(ctx context.Context, accountID, key string, tpl Template) error {
	_ = ctx
	telemetry.Info("notify.dispatch", map[string]any{
		"account_id": accountID,
		"template":   key,
		"channel":    tpl.Channel,
		"subject":    tpl.Subject,
	})
	return nil
}

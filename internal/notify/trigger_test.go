package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"lifecycle-backend/internal/activity"
	"lifecycle-backend/internal/lifecycle"
)

type recordingDispatcher struct {
	sent []string
	err  error
}

func (d *recordingDispatcher) Send(ctx context.Context, accountID, key string, tpl Template) error {
	d.sent = append(d.sent, key)
	return d.err
}

type capturingActivityRepo struct {
	entries []activity.Entry
}

func (r *capturingActivityRepo) Append(ctx context.Context, entry activity.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *capturingActivityRepo) CountInRange(ctx context.Context, accountID string, from, to time.Time) (int, error) {
	return 0, nil
}

func TestNotifySendsTemplateForReason(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	log := &capturingActivityRepo{}
	trigger := &Trigger{Registry: NewRegistry(), Dispatcher: dispatcher, Activity: log}

	trigger.Notify(context.Background(), "acct-1", lifecycle.Resolution{
		State:  lifecycle.StatePaymentFailed,
		Reason: lifecycle.ReasonPaymentFailed,
	})

	if len(dispatcher.sent) != 1 || dispatcher.sent[0] != "PAYMENT_FAILED" {
		t.Fatalf("expected PAYMENT_FAILED dispatch, got %v", dispatcher.sent)
	}
	if len(log.entries) != 1 {
		t.Fatalf("expected 1 activity entry, got %d", len(log.entries))
	}
	entry := log.entries[0]
	if entry.Kind != activity.KindNotificationSent {
		t.Fatalf("expected %s, got %s", activity.KindNotificationSent, entry.Kind)
	}
	if entry.Payload["template"] != "PAYMENT_FAILED" {
		t.Fatalf("unexpected payload %+v", entry.Payload)
	}
}

func TestNotifyFailureIsLoggedNotFatal(t *testing.T) {
	dispatcher := &recordingDispatcher{err: errors.New("smtp down")}
	log := &capturingActivityRepo{}
	trigger := &Trigger{Registry: NewRegistry(), Dispatcher: dispatcher, Activity: log}

	trigger.Notify(context.Background(), "acct-1", lifecycle.Resolution{
		State:  lifecycle.StateChurnRisk,
		Reason: lifecycle.ReasonChurnRisk,
	})

	if len(log.entries) != 1 {
		t.Fatalf("expected 1 activity entry, got %d", len(log.entries))
	}
	entry := log.entries[0]
	if entry.Kind != activity.KindNotificationFailed {
		t.Fatalf("expected %s, got %s", activity.KindNotificationFailed, entry.Kind)
	}
	if entry.Payload["error"] != "smtp down" {
		t.Fatalf("expected send error in payload, got %+v", entry.Payload)
	}
}

func TestNotifyUnknownReasonIsNoop(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	trigger := &Trigger{Registry: NewRegistry(), Dispatcher: dispatcher}

	trigger.Notify(context.Background(), "acct-1", lifecycle.Resolution{
		State:  lifecycle.StateFirstResume,
		Reason: lifecycle.ReasonDefaultFree,
	})

	if len(dispatcher.sent) != 0 {
		t.Fatalf("default_free should not dispatch, got %v", dispatcher.sent)
	}
}

func TestNotifyMissingTemplateSkipsDispatch(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	trigger := &Trigger{Registry: &Registry{templates: map[string]Template{}}, Dispatcher: dispatcher}

	trigger.Notify(context.Background(), "acct-1", lifecycle.Resolution{
		State:  lifecycle.StatePaymentFailed,
		Reason: lifecycle.ReasonPaymentFailed,
	})

	if len(dispatcher.sent) != 0 {
		t.Fatalf("missing template must not dispatch, got %v", dispatcher.sent)
	}
}

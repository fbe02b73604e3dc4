package activity

import "time"

// Well-known event kinds appended by collaborators around the classifier.
const (
	KindLogin              = "login"
	KindNotificationSent   = "notification_sent"
	KindNotificationFailed = "notification_failed"
)

// Entry is one append-only activity log record. The classifier only ever
// counts entries inside trailing windows; payloads are opaque to it.
type Entry struct {
	ID        string         `json:"id"`
	AccountID string         `json:"accountId"`
	Kind      string         `json:"kind"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

package transitions

import "time"

// Record is one lifecycle state change. A record exists iff the newly
// resolved state differed from the stored state when it was recorded.
type Record struct {
	ID            string         `json:"id"`
	AccountID     string         `json:"accountId"`
	PreviousState *string        `json:"previousState"`
	NewState      string         `json:"newState"`
	Reason        string         `json:"reason"`
	Meta          map[string]any `json:"meta,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

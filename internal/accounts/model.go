package accounts

import "time"

// Plan status values stored on an account. Anything else normalizes to unknown.
const (
	PlanFree    = "free"
	PlanPaid    = "paid"
	PlanExpired = "expired"
	PlanFailed  = "failed"
	PlanBlocked = "blocked"
	PlanNone    = "none"
)

// Account is the stored snapshot of a user being classified. Pointer fields
// distinguish "absent" from an explicit false/zero; the normalizer treats
// absent fields as unknown rather than defaulting them.
type Account struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	IsVerified     *bool      `json:"isVerified,omitempty"`
	EmailVerified  *bool      `json:"emailVerified,omitempty"`
	VerifiedAt     *time.Time `json:"verifiedAt,omitempty"`
	PlanStatus     string     `json:"planStatus,omitempty"`
	PaymentFailed  *bool      `json:"paymentFailed,omitempty"`
	FeatureBlocked *bool      `json:"featureBlocked,omitempty"`
	JustConverted  *bool      `json:"justConverted,omitempty"`
	Credits        *float64   `json:"credits,omitempty"`
	LastActiveAt   *time.Time `json:"lastActiveAt,omitempty"`
	State          string     `json:"state,omitempty"`
	StateReason    string     `json:"stateReason,omitempty"`
	StateUpdatedAt *time.Time `json:"stateUpdatedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

package lifecycle

// State is one label from the closed set of lifecycle classifications.
type State string

const (
	StateGuest            State = "Guest"
	StatePaymentFailed    State = "Payment Failed"
	StateChurnRisk        State = "Churn-risk User"
	StateDormant          State = "Dormant User"
	StateNotVerified      State = "Registered – Not Verified"
	StateNoResume         State = "Registered – No Resume"
	StateResumeIncomplete State = "Started Resume – Incomplete"
	StateJustConverted    State = "Paid – Just Converted"
	StateCreditExhausted  State = "Paid – Credit Exhausted"
	StatePowerUser        State = "Paid – Power User"
	StatePaidActive       State = "Paid – Active"
	StatePlanExpired      State = "Paid – Expired Plan"
	StateFeatureBlocked   State = "Free – Feature Blocked"
	StateFirstResume      State = "Free – First Resume Completed"
	StateFreeActivated    State = "Free – Activated (Exploring)"
)

// Stable machine-readable reason codes. The dormant reason is dynamic
// (inactive_<N>_days) and built in the rule table.
const (
	ReasonUserNotFound     = "user_not_found"
	ReasonPaymentFailed    = "payment_failed"
	ReasonChurnRisk        = "churn_risk"
	ReasonNotVerified      = "not_verified"
	ReasonNoResume         = "no_resume"
	ReasonResumeIncomplete = "resume_incomplete"
	ReasonJustConverted    = "just_converted"
	ReasonCreditsExhausted = "credits_exhausted"
	ReasonPowerUser        = "power_user"
	ReasonPaidActive       = "paid_active"
	ReasonPlanExpired      = "plan_expired"
	ReasonFeatureBlocked   = "feature_blocked"
	ReasonFirstResume      = "first_resume"
	ReasonFreeActivated    = "free_activated"
	ReasonDefaultFree      = "default_free"
)

// Resolution is the immutable result of one evaluation.
type Resolution struct {
	State  State  `json:"state"`
	Reason string `json:"reason"`
}

// GuestResolution is returned when the account is missing from the store.
func GuestResolution() Resolution {
	return Resolution{State: StateGuest, Reason: ReasonUserNotFound}
}

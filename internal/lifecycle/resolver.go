package lifecycle

import (
	"fmt"

	"lifecycle-backend/internal/accounts"
	"lifecycle-backend/internal/artifacts"
)

// Input is everything the rule chain reads for one evaluation.
type Input struct {
	Signals   Signals
	Counts    artifacts.Counts
	ChurnRisk bool
}

type rule struct {
	state  State
	when   func(Input) bool
	reason func(Input) string
}

func staticReason(code string) func(Input) string {
	return func(Input) string { return code }
}

// rules is evaluated in order; the first match wins and evaluation stops.
// The ordering is part of the contract:
//   - churn risk is checked before dormancy, so any account inactive long
//     enough to be Dormant (>= 30 days) already tripped the churn inactivity
//     trigger (>= 14 days). The dormant rule is kept as specified and is live
//     only if the churn thresholds ever diverge.
//   - the exactly-one-resume rule precedes the one-resume-plus-advanced-usage
//     rule, shadowing it; kept in this order deliberately.
var rules = []rule{
	{
		state:  StatePaymentFailed,
		when:   func(in Input) bool { return boolIs(in.Signals.PaymentFailed, true) || planIs(in.Signals, accounts.PlanFailed) },
		reason: staticReason(ReasonPaymentFailed),
	},
	{
		state:  StateChurnRisk,
		when:   func(in Input) bool { return in.ChurnRisk },
		reason: staticReason(ReasonChurnRisk),
	},
	{
		state: StateDormant,
		when: func(in Input) bool {
			return in.Signals.InactiveDays != nil && *in.Signals.InactiveDays >= dormantThreshold
		},
		reason: func(in Input) string { return fmt.Sprintf("inactive_%d_days", *in.Signals.InactiveDays) },
	},
	{
		state:  StateNotVerified,
		when:   func(in Input) bool { return boolIs(in.Signals.IsVerified, false) },
		reason: staticReason(ReasonNotVerified),
	},
	{
		state:  StateNoResume,
		when:   func(in Input) bool { return !in.Counts.HasAnyResumeWork() },
		reason: staticReason(ReasonNoResume),
	},
	{
		state:  StateResumeIncomplete,
		when:   func(in Input) bool { return in.Counts.InProgressOnly() },
		reason: staticReason(ReasonResumeIncomplete),
	},
	{
		state: StateJustConverted,
		when: func(in Input) bool {
			return planIs(in.Signals, accounts.PlanPaid) && boolIs(in.Signals.JustConverted, true)
		},
		reason: staticReason(ReasonJustConverted),
	},
	{
		state: StateCreditExhausted,
		when: func(in Input) bool {
			return planIs(in.Signals, accounts.PlanPaid) && in.Signals.Credits != nil && *in.Signals.Credits <= 0
		},
		reason: staticReason(ReasonCreditsExhausted),
	},
	{
		state: StatePowerUser,
		when: func(in Input) bool {
			return planIs(in.Signals, accounts.PlanPaid) && in.Counts.AdvancedUsage()
		},
		reason: staticReason(ReasonPowerUser),
	},
	{
		state:  StatePaidActive,
		when:   func(in Input) bool { return planIs(in.Signals, accounts.PlanPaid) },
		reason: staticReason(ReasonPaidActive),
	},
	{
		state:  StatePlanExpired,
		when:   func(in Input) bool { return planIs(in.Signals, accounts.PlanExpired) },
		reason: staticReason(ReasonPlanExpired),
	},
	{
		state: StateFeatureBlocked,
		when: func(in Input) bool {
			return boolIs(in.Signals.FeatureBlocked, true) || planIs(in.Signals, accounts.PlanBlocked)
		},
		reason: staticReason(ReasonFeatureBlocked),
	},
	{
		state:  StateFirstResume,
		when:   func(in Input) bool { return in.Counts.CompletedResumes == 1 },
		reason: staticReason(ReasonFirstResume),
	},
	{
		state: StateFreeActivated,
		when: func(in Input) bool {
			return in.Counts.CompletedResumes == 1 && in.Counts.AdvancedUsage()
		},
		reason: staticReason(ReasonFreeActivated),
	},
	{
		state:  StateFirstResume,
		when:   func(Input) bool { return true },
		reason: staticReason(ReasonDefaultFree),
	},
}

// Resolve runs the rule chain against one normalized snapshot. It never
// fails: unknown signals simply do not match their predicates.
func Resolve(in Input) Resolution {
	for _, r := range rules {
		if r.when(in) {
			return Resolution{State: r.state, Reason: r.reason(in)}
		}
	}
	// unreachable: the last rule always matches
	return Resolution{State: StateFirstResume, Reason: ReasonDefaultFree}
}

func boolIs(value *bool, want bool) bool {
	return value != nil && *value == want
}

func planIs(signals Signals, want string) bool {
	return signals.PlanStatus != nil && *signals.PlanStatus == want
}

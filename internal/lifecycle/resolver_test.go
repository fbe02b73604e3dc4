package lifecycle

import (
	"testing"

	"lifecycle-backend/internal/accounts"
	"lifecycle-backend/internal/artifacts"
)

func intPtr(v int) *int { return &v }

func planPtr(v string) *string { return &v }

func TestResolvePriorityChain(t *testing.T) {
	cases := []struct {
		name       string
		in         Input
		wantState  State
		wantReason string
	}{
		{
			name:       "payment failed flag beats everything",
			in:         Input{Signals: Signals{PaymentFailed: boolPtr(true), IsVerified: boolPtr(false), InactiveDays: intPtr(45)}, ChurnRisk: true},
			wantState:  StatePaymentFailed,
			wantReason: ReasonPaymentFailed,
		},
		{
			name:       "failed plan status also matches payment failed",
			in:         Input{Signals: Signals{PlanStatus: planPtr(accounts.PlanFailed)}},
			wantState:  StatePaymentFailed,
			wantReason: ReasonPaymentFailed,
		},
		{
			name:       "churn risk beats dormancy",
			in:         Input{Signals: Signals{InactiveDays: intPtr(31)}, ChurnRisk: true},
			wantState:  StateChurnRisk,
			wantReason: ReasonChurnRisk,
		},
		{
			name:       "churn risk beats not verified",
			in:         Input{Signals: Signals{IsVerified: boolPtr(false), InactiveDays: intPtr(31)}, ChurnRisk: true},
			wantState:  StateChurnRisk,
			wantReason: ReasonChurnRisk,
		},
		{
			name:       "dormant carries inactivity age in its reason",
			in:         Input{Signals: Signals{InactiveDays: intPtr(45)}},
			wantState:  StateDormant,
			wantReason: "inactive_45_days",
		},
		{
			name:       "not verified",
			in:         Input{Signals: Signals{IsVerified: boolPtr(false)}},
			wantState:  StateNotVerified,
			wantReason: ReasonNotVerified,
		},
		{
			name:       "unknown verification falls through to resume chain",
			in:         Input{Signals: Signals{}},
			wantState:  StateNoResume,
			wantReason: ReasonNoResume,
		},
		{
			name:       "no resume work at all",
			in:         Input{Signals: Signals{IsVerified: boolPtr(true)}},
			wantState:  StateNoResume,
			wantReason: ReasonNoResume,
		},
		{
			name:       "draft without completed resume",
			in:         Input{Signals: Signals{IsVerified: boolPtr(true)}, Counts: artifacts.Counts{Drafts: 1}},
			wantState:  StateResumeIncomplete,
			wantReason: ReasonResumeIncomplete,
		},
		{
			name:       "wizard session without completed resume",
			in:         Input{Signals: Signals{IsVerified: boolPtr(true)}, Counts: artifacts.Counts{WizardSessions: 2}},
			wantState:  StateResumeIncomplete,
			wantReason: ReasonResumeIncomplete,
		},
		{
			name:       "paid just converted",
			in:         Input{Signals: Signals{PlanStatus: planPtr(accounts.PlanPaid), JustConverted: boolPtr(true)}, Counts: artifacts.Counts{CompletedResumes: 1}},
			wantState:  StateJustConverted,
			wantReason: ReasonJustConverted,
		},
		{
			name:       "paid credits exhausted",
			in:         Input{Signals: Signals{PlanStatus: planPtr(accounts.PlanPaid), Credits: floatPtr(0)}, Counts: artifacts.Counts{CompletedResumes: 1}},
			wantState:  StateCreditExhausted,
			wantReason: ReasonCreditsExhausted,
		},
		{
			name:       "paid power user via interview sessions",
			in:         Input{Signals: Signals{PlanStatus: planPtr(accounts.PlanPaid), Credits: floatPtr(50)}, Counts: artifacts.Counts{CompletedResumes: 1, InterviewSessions: 2}},
			wantState:  StatePowerUser,
			wantReason: ReasonPowerUser,
		},
		{
			name:       "paid power user via multiple resumes",
			in:         Input{Signals: Signals{PlanStatus: planPtr(accounts.PlanPaid), Credits: floatPtr(50)}, Counts: artifacts.Counts{CompletedResumes: 3}},
			wantState:  StatePowerUser,
			wantReason: ReasonPowerUser,
		},
		{
			name:       "paid active with credits and no advanced usage",
			in:         Input{Signals: Signals{PlanStatus: planPtr(accounts.PlanPaid), Credits: floatPtr(100)}, Counts: artifacts.Counts{CompletedResumes: 1}},
			wantState:  StatePaidActive,
			wantReason: ReasonPaidActive,
		},
		{
			name:       "paid with unknown credits is active",
			in:         Input{Signals: Signals{PlanStatus: planPtr(accounts.PlanPaid)}, Counts: artifacts.Counts{CompletedResumes: 1}},
			wantState:  StatePaidActive,
			wantReason: ReasonPaidActive,
		},
		{
			name:       "expired plan",
			in:         Input{Signals: Signals{PlanStatus: planPtr(accounts.PlanExpired)}, Counts: artifacts.Counts{CompletedResumes: 1}},
			wantState:  StatePlanExpired,
			wantReason: ReasonPlanExpired,
		},
		{
			name:       "feature blocked free account",
			in:         Input{Signals: Signals{FeatureBlocked: boolPtr(true), PlanStatus: planPtr(accounts.PlanFree)}, Counts: artifacts.Counts{CompletedResumes: 2}},
			wantState:  StateFeatureBlocked,
			wantReason: ReasonFeatureBlocked,
		},
		{
			name:       "blocked plan status",
			in:         Input{Signals: Signals{PlanStatus: planPtr(accounts.PlanBlocked)}, Counts: artifacts.Counts{CompletedResumes: 1}},
			wantState:  StateFeatureBlocked,
			wantReason: ReasonFeatureBlocked,
		},
		{
			name:       "exactly one completed resume",
			in:         Input{Signals: Signals{IsVerified: boolPtr(true), PlanStatus: planPtr(accounts.PlanFree)}, Counts: artifacts.Counts{CompletedResumes: 1}},
			wantState:  StateFirstResume,
			wantReason: ReasonFirstResume,
		},
		{
			name:       "one resume with advanced usage still classifies first resume",
			in:         Input{Signals: Signals{PlanStatus: planPtr(accounts.PlanFree)}, Counts: artifacts.Counts{CompletedResumes: 1, CoverLetters: 2}},
			wantState:  StateFirstResume,
			wantReason: ReasonFirstResume,
		},
		{
			name:       "free account with many resumes hits the catch-all",
			in:         Input{Signals: Signals{PlanStatus: planPtr(accounts.PlanFree)}, Counts: artifacts.Counts{CompletedResumes: 3}},
			wantState:  StateFirstResume,
			wantReason: ReasonDefaultFree,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.in)
			if got.State != tc.wantState || got.Reason != tc.wantReason {
				t.Fatalf("Resolve = %q/%q, want %q/%q", got.State, got.Reason, tc.wantState, tc.wantReason)
			}
		})
	}
}

func TestResolveNeverPanicsOnAllUnknownSignals(t *testing.T) {
	got := Resolve(Input{})
	if got.State == "" || got.Reason == "" {
		t.Fatalf("expected a terminal classification, got %+v", got)
	}
}

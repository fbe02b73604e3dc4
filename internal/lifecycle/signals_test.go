package lifecycle

import (
	"testing"
	"time"

	"lifecycle-backend/internal/accounts"
)

func boolPtr(v bool) *bool          { return &v }
func floatPtr(v float64) *float64   { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestNormalizeBooleanCoercion(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		value any
		want  *bool
	}{
		{"true passes through", true, boolPtr(true)},
		{"false passes through", false, boolPtr(false)},
		{"nil stays unknown", nil, nil},
		{"string one", "1", boolPtr(true)},
		{"string yes upper", "YES", boolPtr(true)},
		{"string y padded", "  y ", boolPtr(true)},
		{"string zero", "0", boolPtr(false)},
		{"string no", "no", boolPtr(false)},
		{"string n", "N", boolPtr(false)},
		{"garbage string", "definitely", nil},
		{"number is unknown", 1.0, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			signals := Normalize(Overrides{PaymentFailed: tc.value}, accounts.Account{}, now)
			got := signals.PaymentFailed
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("paymentFailed: got %v, want %v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("paymentFailed: got %v, want %v", *got, *tc.want)
			}
		})
	}
}

func TestNormalizeNumericCoercion(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		value any
		want  *float64
	}{
		{"float", 12.5, floatPtr(12.5)},
		{"int", 3, floatPtr(3)},
		{"numeric string", " 42 ", floatPtr(42)},
		{"garbage string", "many", nil},
		{"nil", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			signals := Normalize(Overrides{Credits: tc.value}, accounts.Account{}, now)
			got := signals.Credits
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("credits: got %v, want %v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("credits: got %v, want %v", *got, *tc.want)
			}
		})
	}
}

func TestNormalizeExplicitOverrideWinsOverStored(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	account := accounts.Account{
		IsVerified: boolPtr(true),
		PlanStatus: accounts.PlanFree,
		Credits:    floatPtr(100),
	}

	signals := Normalize(Overrides{IsVerified: "no", PlanStatus: "paid", Credits: "0"}, account, now)
	if signals.IsVerified == nil || *signals.IsVerified {
		t.Fatalf("expected override isVerified=false, got %v", signals.IsVerified)
	}
	if signals.PlanStatus == nil || *signals.PlanStatus != accounts.PlanPaid {
		t.Fatalf("expected override plan paid, got %v", signals.PlanStatus)
	}
	if signals.Credits == nil || *signals.Credits != 0 {
		t.Fatalf("expected override credits 0, got %v", signals.Credits)
	}
}

func TestNormalizeVerifiedFallbackChain(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	primary := Normalize(Overrides{}, accounts.Account{IsVerified: boolPtr(false), EmailVerified: boolPtr(true)}, now)
	if primary.IsVerified == nil || *primary.IsVerified {
		t.Fatalf("is_verified should win over email_verified, got %v", primary.IsVerified)
	}

	alternate := Normalize(Overrides{}, accounts.Account{EmailVerified: boolPtr(true)}, now)
	if alternate.IsVerified == nil || !*alternate.IsVerified {
		t.Fatalf("email_verified fallback should apply, got %v", alternate.IsVerified)
	}

	timestamp := Normalize(Overrides{}, accounts.Account{VerifiedAt: timePtr(now.Add(-time.Hour))}, now)
	if timestamp.IsVerified == nil || !*timestamp.IsVerified {
		t.Fatalf("verified_at presence should imply verified, got %v", timestamp.IsVerified)
	}

	unknown := Normalize(Overrides{}, accounts.Account{}, now)
	if unknown.IsVerified != nil {
		t.Fatalf("no verification data should stay unknown, got %v", *unknown.IsVerified)
	}
}

func TestNormalizeInactiveDays(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	past := Normalize(Overrides{}, accounts.Account{LastActiveAt: timePtr(now.Add(-31*24*time.Hour - time.Hour))}, now)
	if past.InactiveDays == nil || *past.InactiveDays != 31 {
		t.Fatalf("expected 31 inactive days, got %v", past.InactiveDays)
	}

	future := Normalize(Overrides{}, accounts.Account{LastActiveAt: timePtr(now.Add(48 * time.Hour))}, now)
	if future.InactiveDays == nil || *future.InactiveDays != 0 {
		t.Fatalf("future last-active should clamp to 0, got %v", future.InactiveDays)
	}

	missing := Normalize(Overrides{}, accounts.Account{}, now)
	if missing.InactiveDays != nil {
		t.Fatalf("missing last-active should stay unknown, got %v", *missing.InactiveDays)
	}

	overridden := Normalize(Overrides{LastActiveAt: now.Add(-3 * 24 * time.Hour).Format(time.RFC3339)}, accounts.Account{}, now)
	if overridden.InactiveDays == nil || *overridden.InactiveDays != 3 {
		t.Fatalf("expected 3 inactive days from ISO override, got %v", overridden.InactiveDays)
	}

	invalid := Normalize(Overrides{LastActiveAt: "not-a-date"}, accounts.Account{}, now)
	if invalid.InactiveDays != nil {
		t.Fatalf("invalid timestamp should stay unknown, got %v", *invalid.InactiveDays)
	}
}

func TestNormalizeUnknownPlanStatus(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	signals := Normalize(Overrides{PlanStatus: "platinum"}, accounts.Account{PlanStatus: "  PAID "}, now)
	// garbage override coerces to unknown and falls back to the stored value
	if signals.PlanStatus == nil || *signals.PlanStatus != accounts.PlanPaid {
		t.Fatalf("expected stored plan paid, got %v", signals.PlanStatus)
	}
}

func TestNormalizeRoundTripFromStoredAccount(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	account := accounts.Account{
		IsVerified:     boolPtr(true),
		PlanStatus:     accounts.PlanPaid,
		PaymentFailed:  boolPtr(false),
		FeatureBlocked: boolPtr(false),
		JustConverted:  boolPtr(true),
		Credits:        floatPtr(25),
		LastActiveAt:   timePtr(now.Add(-2 * 24 * time.Hour)),
	}

	signals := Normalize(Overrides{}, account, now)
	if *signals.IsVerified != *account.IsVerified ||
		*signals.PlanStatus != account.PlanStatus ||
		*signals.PaymentFailed != *account.PaymentFailed ||
		*signals.FeatureBlocked != *account.FeatureBlocked ||
		*signals.JustConverted != *account.JustConverted ||
		*signals.Credits != *account.Credits {
		t.Fatalf("signals should mirror stored fields with no overrides: %+v", signals)
	}
	if signals.InactiveDays == nil || *signals.InactiveDays != 2 {
		t.Fatalf("expected 2 inactive days, got %v", signals.InactiveDays)
	}
}

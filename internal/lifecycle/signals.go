package lifecycle

import (
	"math"
	"strconv"
	"strings"
	"time"

	"lifecycle-backend/internal/accounts"
)

// Signals is the normalized, typed view of an account the resolver reads.
// Nil means unknown; unknown signals fail their predicates and fall through.
type Signals struct {
	IsVerified     *bool    `json:"isVerified"`
	PlanStatus     *string  `json:"planStatus"`
	Credits        *float64 `json:"credits"`
	FeatureBlocked *bool    `json:"featureBlocked"`
	JustConverted  *bool    `json:"justConverted"`
	PaymentFailed  *bool    `json:"paymentFailed"`
	InactiveDays   *int     `json:"inactiveDays"`
}

// Overrides carries caller-supplied raw values, typically query-string or
// JSON shaped. Each field coerces independently; garbage coerces to unknown,
// never to an error.
type Overrides struct {
	IsVerified     any `json:"isVerified"`
	PlanStatus     any `json:"planStatus"`
	Credits        any `json:"credits"`
	FeatureBlocked any `json:"featureBlocked"`
	JustConverted  any `json:"justConverted"`
	PaymentFailed  any `json:"paymentFailed"`
	LastActiveAt   any `json:"lastActiveAt"`
}

// Normalize coerces overrides and stored account fields into Signals.
// Per field, an explicit override wins; otherwise the stored value is used;
// if both are absent the signal stays unknown.
func Normalize(overrides Overrides, account accounts.Account, now time.Time) Signals {
	signals := Signals{
		PlanStatus:     parsePlan(overrides.PlanStatus),
		Credits:        parseNumber(overrides.Credits),
		FeatureBlocked: parseBool(overrides.FeatureBlocked),
		JustConverted:  parseBool(overrides.JustConverted),
		PaymentFailed:  parseBool(overrides.PaymentFailed),
	}
	signals.IsVerified = parseBool(overrides.IsVerified)
	if signals.IsVerified == nil {
		signals.IsVerified = verifiedFromAccount(account)
	}
	if signals.PlanStatus == nil {
		signals.PlanStatus = parsePlan(account.PlanStatus)
	}
	if signals.Credits == nil {
		signals.Credits = account.Credits
	}
	if signals.FeatureBlocked == nil {
		signals.FeatureBlocked = account.FeatureBlocked
	}
	if signals.JustConverted == nil {
		signals.JustConverted = account.JustConverted
	}
	if signals.PaymentFailed == nil {
		signals.PaymentFailed = account.PaymentFailed
	}
	signals.InactiveDays = inactiveDays(effectiveLastActive(overrides, account), now)
	return signals
}

// verifiedFromAccount walks the stored fallback chain:
// is_verified, then email_verified, then "verified_at is present".
func verifiedFromAccount(account accounts.Account) *bool {
	if account.IsVerified != nil {
		return account.IsVerified
	}
	if account.EmailVerified != nil {
		return account.EmailVerified
	}
	if account.VerifiedAt != nil {
		verified := true
		return &verified
	}
	return nil
}

func effectiveLastActive(overrides Overrides, account accounts.Account) *time.Time {
	if t := parseTime(overrides.LastActiveAt); t != nil {
		return t
	}
	return account.LastActiveAt
}

// inactiveDays is floor((now - lastActive) / 24h) clamped to >= 0,
// or nil when lastActive is unknown.
func inactiveDays(lastActive *time.Time, now time.Time) *int {
	if lastActive == nil {
		return nil
	}
	days := int(now.Sub(*lastActive).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

func parseBool(value any) *bool {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		b := v
		return &b
	case *bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y":
			b := true
			return &b
		case "0", "false", "no", "n":
			b := false
			return &b
		}
		return nil
	default:
		return nil
	}
}

func parseNumber(value any) *float64 {
	var parsed float64
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		parsed = v
	case float32:
		parsed = float64(v)
	case int:
		parsed = float64(v)
	case int64:
		parsed = float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		parsed = f
	default:
		return nil
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}
	return &parsed
}

func parsePlan(value any) *string {
	raw, ok := value.(string)
	if !ok {
		return nil
	}
	plan := strings.ToLower(strings.TrimSpace(raw))
	switch plan {
	case accounts.PlanFree, accounts.PlanPaid, accounts.PlanExpired, accounts.PlanFailed, accounts.PlanBlocked, accounts.PlanNone:
		return &plan
	default:
		return nil
	}
}

func parseTime(value any) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		if v.IsZero() {
			return nil
		}
		t := v
		return &t
	case *time.Time:
		return v
	case string:
		raw := strings.TrimSpace(v)
		if raw == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil
		}
		return &t
	default:
		return nil
	}
}

package notify

import "sync"

// Channel is where a template is delivered.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelInApp Channel = "in-app"
	ChannelBoth  Channel = "both"
)

// Template is the subject/body/channel tuple a caller dispatches.
type Template struct {
	Subject string  `json:"subject"`
	Body    string  `json:"body"`
	Channel Channel `json:"channel"`
}

// Registry maps template keys to templates.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewRegistry returns a registry seeded with the default lifecycle templates.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template)}
	for key, tpl := range defaultTemplates {
		r.templates[key] = tpl
	}
	return r
}

func (r *Registry) Register(key string, tpl Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[key] = tpl
}

func (r *Registry) Lookup(key string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[key]
	return tpl, ok
}

var defaultTemplates = map[string]Template{
	"PAYMENT_FAILED": {
		Subject: "We couldn't process your payment",
		Body:    "Your last payment didn't go through. Update your payment method to keep your plan active.",
		Channel: ChannelEmail,
	},
	"CHURN_WINBACK": {
		Subject: "Your resume is waiting for you",
		Body:    "It's been a while. Pick up where you left off and keep your job search moving.",
		Channel: ChannelBoth,
	},
	"VERIFY_EMAIL": {
		Subject: "Verify your email address",
		Body:    "Confirm your email to unlock resume downloads and sharing.",
		Channel: ChannelEmail,
	},
	"RESUME_NUDGE": {
		Subject: "Create your first resume",
		Body:    "You're registered but haven't started a resume yet. It takes about ten minutes.",
		Channel: ChannelInApp,
	},
	"RESUME_ABANDONMENT": {
		Subject: "Your resume is almost done",
		Body:    "You have an unfinished resume draft. Finish it now before the details go stale.",
		Channel: ChannelBoth,
	},
	"CREDIT_TOPUP": {
		Subject: "You're out of credits",
		Body:    "You've used all your plan credits. Top up to keep generating content.",
		Channel: ChannelEmail,
	},
	"PLAN_RENEWAL": {
		Subject: "Your plan has expired",
		Body:    "Renew your plan to keep access to premium resume tools.",
		Channel: ChannelEmail,
	},
	"FEATURE_UNBLOCK": {
		Subject: "Some features are currently limited",
		Body:    "Part of your account is feature-limited. See what you can do to restore access.",
		Channel: ChannelInApp,
	},
}

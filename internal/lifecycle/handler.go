package lifecycle

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lifecycle-backend/internal/accounts"
	"lifecycle-backend/internal/activity"
	"lifecycle-backend/internal/artifacts"
	"lifecycle-backend/internal/shared/server/respond"
	"lifecycle-backend/internal/transitions"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Handler exposes lifecycle endpoints.
type Handler struct {
	Svc         *Service
	Transitions transitions.Repo
	Accounts    accounts.Repo
	Artifacts   artifacts.Repo
	Activity    activity.Repo
}

// RegisterRoutes attaches lifecycle routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/accounts/:id/lifecycle", h.getLifecycle)
	rg.POST("/accounts/:id/lifecycle/evaluate", h.evaluate)
	rg.GET("/accounts/:id/transitions", h.listTransitions)
}

// RegisterDevRoutes attaches dev-only seeding routes.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.PUT("/accounts/:id", h.upsertAccount)
	rg.POST("/accounts/:id/activity", h.appendActivity)
	rg.POST("/accounts/:id/artifacts", h.addArtifact)
}

// getLifecycle resolves without recording. Query params act as explicit
// signal overrides and go through the same coercion as stored fields.
func (h *Handler) getLifecycle(c *gin.Context) {
	overrides := Overrides{
		IsVerified:     queryValue(c, "isVerified"),
		PlanStatus:     queryValue(c, "planStatus"),
		Credits:        queryValue(c, "credits"),
		FeatureBlocked: queryValue(c, "featureBlocked"),
		JustConverted:  queryValue(c, "justConverted"),
		PaymentFailed:  queryValue(c, "paymentFailed"),
		LastActiveAt:   queryValue(c, "lastActiveAt"),
	}

	res, err := h.Svc.Resolve(c.Request.Context(), c.Param("id"), overrides)
	if err != nil {
		writeResolveError(c, err)
		return
	}
	setResolved(c, res)
	respond.OK(c, res)
}

type evaluateRequest struct {
	Signals Overrides      `json:"signals"`
	Meta    map[string]any `json:"meta"`
}

func (h *Handler) evaluate(c *gin.Context) {
	var req evaluateRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must be JSON", nil)
			return
		}
	}

	res, err := h.Svc.Record(c.Request.Context(), c.Param("id"), req.Signals, req.Meta)
	if err != nil {
		writeResolveError(c, err)
		return
	}
	setResolved(c, res)
	respond.OK(c, res)
}

func (h *Handler) listTransitions(c *gin.Context) {
	limit := parsePositiveInt(c.Query("limit"), defaultHistoryLimit)
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	offset := parsePositiveInt(c.Query("offset"), 0)

	records, err := h.Transitions.ListByAccount(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		writeResolveError(c, err)
		return
	}
	respond.OK(c, gin.H{"transitions": records})
}

type upsertAccountRequest struct {
	Email          string     `json:"email"`
	IsVerified     *bool      `json:"isVerified"`
	EmailVerified  *bool      `json:"emailVerified"`
	VerifiedAt     *time.Time `json:"verifiedAt"`
	PlanStatus     string     `json:"planStatus"`
	PaymentFailed  *bool      `json:"paymentFailed"`
	FeatureBlocked *bool      `json:"featureBlocked"`
	JustConverted  *bool      `json:"justConverted"`
	Credits        *float64   `json:"credits"`
	LastActiveAt   *time.Time `json:"lastActiveAt"`
}

func (h *Handler) upsertAccount(c *gin.Context) {
	var req upsertAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must be JSON", nil)
		return
	}
	account := accounts.Account{
		ID:             c.Param("id"),
		Email:          req.Email,
		IsVerified:     req.IsVerified,
		EmailVerified:  req.EmailVerified,
		VerifiedAt:     req.VerifiedAt,
		PlanStatus:     req.PlanStatus,
		PaymentFailed:  req.PaymentFailed,
		FeatureBlocked: req.FeatureBlocked,
		JustConverted:  req.JustConverted,
		Credits:        req.Credits,
		LastActiveAt:   req.LastActiveAt,
	}
	if err := h.Accounts.Upsert(c.Request.Context(), account); err != nil {
		writeResolveError(c, err)
		return
	}
	respond.OK(c, gin.H{"ok": true})
}

type appendActivityRequest struct {
	Kind      string         `json:"kind"`
	Payload   map[string]any `json:"payload"`
	CreatedAt *time.Time     `json:"createdAt"`
}

func (h *Handler) appendActivity(c *gin.Context) {
	var req appendActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Kind == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "kind is required", nil)
		return
	}
	entry := activity.Entry{
		AccountID: c.Param("id"),
		Kind:      req.Kind,
		Payload:   req.Payload,
	}
	if req.CreatedAt != nil {
		entry.CreatedAt = *req.CreatedAt
	}
	if err := h.Activity.Append(c.Request.Context(), entry); err != nil {
		writeResolveError(c, err)
		return
	}
	respond.OK(c, gin.H{"ok": true})
}

type addArtifactRequest struct {
	Kind string `json:"kind"`
}

func (h *Handler) addArtifact(c *gin.Context) {
	var req addArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil || !artifacts.ValidKind(req.Kind) {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "kind must be a known artifact kind", nil)
		return
	}
	if err := h.Artifacts.Add(c.Request.Context(), c.Param("id"), req.Kind); err != nil {
		writeResolveError(c, err)
		return
	}
	respond.OK(c, gin.H{"ok": true})
}

func setResolved(c *gin.Context, res Resolution) {
	c.Set("resolvedState", string(res.State))
	c.Set("resolvedReason", res.Reason)
}

func writeResolveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "lifecycle evaluation failed", nil)
	}
}

// queryValue returns nil for absent params so absent never coerces to false.
func queryValue(c *gin.Context, key string) any {
	if value, ok := c.GetQuery(key); ok {
		return value
	}
	return nil
}

func parsePositiveInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return def
	}
	if value == 0 {
		return def
	}
	return value
}

package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
)

// LeadService defines the lead operations used by the handler.
type LeadService interface {
	Submit(ctx context.Context, lead *entities.Lead) error
	Get(ctx context.Context, id string) (*entities.Lead, error)
	UpdateStatus(ctx context.Context, id string, status entities.LeadStatus) (*entities.Lead, error)
}

// LeadHandler handles website lead forms and back-office lead updates.
type LeadHandler struct {
	service LeadService
	guard   *SubmissionGuard
	metrics *observability.Metrics
}

// NewLeadHandler creates a new lead handler.
func NewLeadHandler(service LeadService, guard *SubmissionGuard, metrics *observability.Metrics) *LeadHandler {
	return &LeadHandler{
		service: service,
		guard:   guard,
		metrics: metrics,
	}
}

type leadRequest struct {
	Kind          string                  `json:"kind"`
	Name          string                  `json:"name"`
	Email         string                  `json:"email"`
	Phone         string                  `json:"phone"`
	Address       string                  `json:"address"`
	Message       string                  `json:"message"`
	Selection     entities.QuoteSelection `json:"selection"`
	PreferredDate string                  `json:"preferred_date"`
	PreferredTime string                  `json:"preferred_time"`
	Source        string                  `json:"source"`
}

// SubmitLead handles POST /api/leads
func (h *LeadHandler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	var payload leadRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	lead := &entities.Lead{
		Kind:          entities.LeadKind(strings.ToLower(strings.TrimSpace(payload.Kind))),
		Name:          payload.Name,
		Email:         payload.Email,
		Phone:         payload.Phone,
		Address:       payload.Address,
		Message:       payload.Message,
		Selection:     payload.Selection,
		PreferredTime: payload.PreferredTime,
		Source:        strings.TrimSpace(payload.Source),
		UserAgent:     r.UserAgent(),
	}
	if date := strings.TrimSpace(payload.PreferredDate); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "preferred_date must be formatted YYYY-MM-DD")
			return
		}
		lead.PreferredDate = &parsed
	}

	ip := clientIP(r)
	if allowed, retryAfter := h.guard.Allow(r.Context(), "lead:rate:"+ip); !allowed {
		observability.RecordRateLimited(r.Context(), h.metrics, "/api/leads")
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(retryAfter)))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	dupKey := "lead:dup:" + fingerprint(
		string(lead.Kind),
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Message,
		lead.Selection.Summary(),
		payload.PreferredDate,
		ip,
	)
	if !h.guard.Claim(r.Context(), dupKey) {
		respondWithJSON(w, http.StatusAccepted, map[string]string{
			"status": "duplicate_ignored",
		})
		return
	}

	if err := h.service.Submit(r.Context(), lead); err != nil {
		h.guard.Release(r.Context(), dupKey)
		respondWithAppError(r.Context(), w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"status":       "received",
		"id":           lead.ID,
		"quoted_price": lead.QuotedPrice,
	})
}

// GetLead handles GET /api/leads/{id}
func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, lead)
}

type leadStatusRequest struct {
	Status string `json:"status"`
}

// UpdateLeadStatus handles PATCH /api/leads/{id}/status
func (h *LeadHandler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	var payload leadStatusRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	status := entities.LeadStatus(strings.ToLower(strings.TrimSpace(payload.Status)))
	lead, err := h.service.UpdateStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, lead)
}

func retryAfterSeconds(d time.Duration) int {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}

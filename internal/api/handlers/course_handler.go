package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Bukassi600104/ultraclean/backend/internal/application/services"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
)

// RegistrationService defines the course operations used by the handler.
type RegistrationService interface {
	ListCourses(ctx context.Context) ([]*entities.Course, error)
	Register(ctx context.Context, courseID string, req services.RegisterRequest) (*entities.CourseRegistration, error)
	CompleteCheckout(ctx context.Context, sessionID string) (*entities.CourseRegistration, error)
}

// CourseHandler handles course listing and paid registration
type CourseHandler struct {
	service RegistrationService
	guard   *SubmissionGuard
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(service RegistrationService, guard *SubmissionGuard) *CourseHandler {
	return &CourseHandler{service: service, guard: guard}
}

// ListCourses handles GET /api/courses
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"courses": courses,
		"count":   len(courses),
	})
}

// Register handles POST /api/courses/{id}/register
func (h *CourseHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload services.RegisterRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if allowed, retryAfter := h.guard.Allow(r.Context(), "course:rate:"+clientIP(r)); !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(retryAfter)))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	registration, err := h.service.Register(r.Context(), r.PathValue("id"), payload)
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"registration_id": registration.ID,
		"status":          string(registration.Status),
		"checkout_url":    registration.CheckoutURL,
	})
}

type checkoutCompleteRequest struct {
	SessionID string `json:"session_id"`
}

// CompleteCheckout handles POST /api/courses/checkout/complete
func (h *CourseHandler) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	var payload checkoutCompleteRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	registration, err := h.service.CompleteCheckout(r.Context(), payload.SessionID)
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"registration_id": registration.ID,
		"status":          string(registration.Status),
	})
}

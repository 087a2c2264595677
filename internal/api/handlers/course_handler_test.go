package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bukassi600104/ultraclean/backend/internal/api/handlers"
	"github.com/Bukassi600104/ultraclean/backend/internal/application/services"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	apperrors "github.com/Bukassi600104/ultraclean/backend/pkg/errors"
)

type stubRegistrationService struct {
	courses     []*entities.Course
	registerErr error
	lastCourse  string
	lastRequest services.RegisterRequest
	sessions    map[string]*entities.CourseRegistration
}

func (s *stubRegistrationService) ListCourses(ctx context.Context) ([]*entities.Course, error) {
	return s.courses, nil
}

func (s *stubRegistrationService) Register(ctx context.Context, courseID string, req services.RegisterRequest) (*entities.CourseRegistration, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.lastCourse = courseID
	s.lastRequest = req
	return &entities.CourseRegistration{
		ID:          "reg-1",
		CourseID:    courseID,
		Status:      entities.RegistrationStatusPending,
		CheckoutURL: "https://checkout.example/cs_1",
	}, nil
}

func (s *stubRegistrationService) CompleteCheckout(ctx context.Context, sessionID string) (*entities.CourseRegistration, error) {
	if sessionID == "" {
		return nil, apperrors.NewValidationError("session_id is required")
	}
	registration, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("no registration for checkout session " + sessionID)
	}
	return registration, nil
}

func TestCourseHandler_ListCourses(t *testing.T) {
	service := &stubRegistrationService{courses: []*entities.Course{
		{ID: "course-1", Title: "Basics", StartsAt: time.Now().Add(48 * time.Hour), Active: true},
	}}
	handler := handlers.NewCourseHandler(service, handlers.NewSubmissionGuard(nil, testRateLimit))

	w := httptest.NewRecorder()
	handler.ListCourses(w, httptest.NewRequest("GET", "/api/courses", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Courses []entities.Course `json:"courses"`
		Count   int               `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, "Basics", response.Courses[0].Title)
}

func TestCourseHandler_Register(t *testing.T) {
	service := &stubRegistrationService{}
	handler := handlers.NewCourseHandler(service, handlers.NewSubmissionGuard(nil, testRateLimit))

	req := httptest.NewRequest("POST", "/api/courses/course-1/register", strings.NewReader(`{"name":"Sam","email":"sam@example.com"}`))
	req.SetPathValue("id", "course-1")
	w := httptest.NewRecorder()
	handler.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "course-1", service.lastCourse)
	assert.Equal(t, "Sam", service.lastRequest.Name)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "https://checkout.example/cs_1", response["checkout_url"])
	assert.Equal(t, "pending", response["status"])
}

func TestCourseHandler_Register_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"full course", apperrors.NewConflictError("course is full"), http.StatusConflict},
		{"unknown course", apperrors.NewNotFoundError("course with id x not found"), http.StatusNotFound},
		{"checkout outage", apperrors.NewExternalError("failed to start checkout", errors.New("timeout")), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubRegistrationService{registerErr: tt.err}
			handler := handlers.NewCourseHandler(service, handlers.NewSubmissionGuard(nil, testRateLimit))

			req := httptest.NewRequest("POST", "/api/courses/x/register", strings.NewReader(`{"name":"Sam","email":"sam@example.com"}`))
			req.SetPathValue("id", "x")
			w := httptest.NewRecorder()
			handler.Register(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestCourseHandler_CompleteCheckout(t *testing.T) {
	service := &stubRegistrationService{sessions: map[string]*entities.CourseRegistration{
		"cs_1": {ID: "reg-1", Status: entities.RegistrationStatusPaid},
	}}
	handler := handlers.NewCourseHandler(service, handlers.NewSubmissionGuard(nil, testRateLimit))

	w := httptest.NewRecorder()
	handler.CompleteCheckout(w, httptest.NewRequest("POST", "/api/courses/checkout/complete", strings.NewReader(`{"session_id":"cs_1"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"paid"`)

	w = httptest.NewRecorder()
	handler.CompleteCheckout(w, httptest.NewRequest("POST", "/api/courses/checkout/complete", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

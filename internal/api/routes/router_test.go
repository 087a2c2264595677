package routes_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Bukassi600104/ultraclean/backend/internal/api/handlers"
	"github.com/Bukassi600104/ultraclean/backend/internal/api/routes"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/pkg/config"
	apperrors "github.com/Bukassi600104/ultraclean/backend/pkg/errors"
)

type memoryLeadService struct {
	leads map[string]*entities.Lead
}

func (s *memoryLeadService) Submit(ctx context.Context, lead *entities.Lead) error {
	lead.ID = "lead-1"
	s.leads[lead.ID] = lead
	return nil
}

func (s *memoryLeadService) Get(ctx context.Context, id string) (*entities.Lead, error) {
	if lead, ok := s.leads[id]; ok {
		return lead, nil
	}
	return nil, apperrors.NewNotFoundError("lead not found")
}

func (s *memoryLeadService) UpdateStatus(ctx context.Context, id string, status entities.LeadStatus) (*entities.Lead, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	lead.Status = status
	return lead, nil
}

func newTestServer(adminToken string) http.Handler {
	guard := handlers.NewSubmissionGuard(nil, config.RateLimitConfig{LeadSubmissions: 5, Window: time.Hour, DedupWindow: time.Minute})
	leadHandler := handlers.NewLeadHandler(&memoryLeadService{leads: map[string]*entities.Lead{}}, guard, nil)

	router := routes.NewRouter(
		handlers.NewQuoteHandler(nil),
		leadHandler,
		nil,
		routes.Options{AllowedOrigins: []string{"https://ultraclean.example"}, AdminToken: adminToken},
	)
	return router.SetupRoutes()
}

func TestRouter_PublicRoutes(t *testing.T) {
	server := newTestServer("secret")

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("POST", "/api/quotes", strings.NewReader(`{"category":"airbnb","size_bracket":"2 BR"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price":200`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("GET", "/api/courses", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	server := newTestServer("secret")

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("POST", "/api/leads", strings.NewReader(`{"name":"Dana","email":"d@example.com"}`)))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("GET", "/api/leads/lead-1", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest("GET", "/api/leads/lead-1", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("PATCH", "/api/leads/lead-1/status", strings.NewReader(`{"status":"won"}`))
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"won"`)
}

func TestRouter_AdminRoutesDisabledWithoutToken(t *testing.T) {
	server := newTestServer("")

	req := httptest.NewRequest("GET", "/api/leads/lead-1", nil)
	req.Header.Set("Authorization", "Bearer ")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	server := newTestServer("secret")

	req := httptest.NewRequest("OPTIONS", "/api/leads", nil)
	req.Header.Set("Origin", "https://ultraclean.example")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://ultraclean.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("OPTIONS", "/api/leads", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Ready(t *testing.T) {
	guard := handlers.NewSubmissionGuard(nil, config.RateLimitConfig{LeadSubmissions: 5, Window: time.Hour})
	leadHandler := handlers.NewLeadHandler(&memoryLeadService{leads: map[string]*entities.Lead{}}, guard, nil)

	var dbErr error
	server := routes.NewRouter(handlers.NewQuoteHandler(nil), leadHandler, nil, routes.Options{
		ReadyCheck: func(ctx context.Context) error { return dbErr },
	}).SetupRoutes()

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("GET", "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	dbErr = errors.New("connection refused")
	w = httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("GET", "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/Bukassi600104/ultraclean/backend/internal/api/handlers"
	"github.com/Bukassi600104/ultraclean/backend/internal/api/middleware"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	quoteHandler  *handlers.QuoteHandler
	leadHandler   *handlers.LeadHandler
	courseHandler *handlers.CourseHandler

	allowedOrigins []string
	adminToken     string
	metrics        *observability.Metrics
	readyCheck     func(context.Context) error
}

// Options carries router-wide settings
type Options struct {
	AllowedOrigins []string
	AdminToken     string
	Metrics        *observability.Metrics
	// ReadyCheck reports whether backing stores are reachable; nil means always ready.
	ReadyCheck func(context.Context) error
}

// NewRouter creates a new router. courseHandler may be nil when courses are disabled.
func NewRouter(
	quoteHandler *handlers.QuoteHandler,
	leadHandler *handlers.LeadHandler,
	courseHandler *handlers.CourseHandler,
	opts Options,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		quoteHandler:   quoteHandler,
		leadHandler:    leadHandler,
		courseHandler:  courseHandler,
		allowedOrigins: opts.AllowedOrigins,
		adminToken:     opts.AdminToken,
		metrics:        opts.Metrics,
		readyCheck:     opts.ReadyCheck,
	}
}

func (r *Router) handle(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, middleware.Instrument(pattern, r.metrics, h))
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.HandleFunc("GET /ready", r.ready)

	// Instant quote
	r.handle("POST /api/quotes", r.quoteHandler.CalculateQuote)
	r.handle("GET /api/quotes/options", r.quoteHandler.GetOptions)

	// Website lead forms
	r.handle("POST /api/leads", r.leadHandler.SubmitLead)

	// Back-office lead follow-up
	admin := middleware.RequireToken(r.adminToken)
	r.mux.Handle("GET /api/leads/{id}",
		admin(middleware.Instrument("GET /api/leads/{id}", r.metrics, http.HandlerFunc(r.leadHandler.GetLead))))
	r.mux.Handle("PATCH /api/leads/{id}/status",
		admin(middleware.Instrument("PATCH /api/leads/{id}/status", r.metrics, http.HandlerFunc(r.leadHandler.UpdateLeadStatus))))

	// Courses
	if r.courseHandler != nil {
		r.handle("GET /api/courses", r.courseHandler.ListCourses)
		r.handle("POST /api/courses/{id}/register", r.courseHandler.Register)
		r.handle("POST /api/courses/checkout/complete", r.courseHandler.CompleteCheckout)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// CORS wraps everything so preflight requests skip logging noise
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}

func (r *Router) ready(w http.ResponseWriter, req *http.Request) {
	if r.readyCheck != nil {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := r.readyCheck(ctx); err != nil {
			http.Error(w, "NOT READY", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
}

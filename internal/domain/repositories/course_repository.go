package repositories

import (
	"context"
	"time"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
)

// CourseRepository defines read access to the course catalog
type CourseRepository interface {
	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id string) (*entities.Course, error)

	// ListActive lists active courses starting after the given time, soonest first
	ListActive(ctx context.Context, after time.Time) ([]*entities.Course, error)
}

// RegistrationRepository defines the interface for course registration operations
type RegistrationRepository interface {
	// Create stores a new registration
	Create(ctx context.Context, registration *entities.CourseRegistration) error

	// Update persists status and checkout fields
	Update(ctx context.Context, registration *entities.CourseRegistration) error

	// GetByCheckoutSession finds the registration opened with a checkout session
	GetByCheckoutSession(ctx context.Context, sessionID string) (*entities.CourseRegistration, error)

	// CountActive counts pending and paid registrations for a course
	CountActive(ctx context.Context, courseID string) (int, error)
}

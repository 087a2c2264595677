package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/providers"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/repositories"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
	apperrors "github.com/Bukassi600104/ultraclean/backend/pkg/errors"
)

// RegisterRequest is a seat request for a course
type RegisterRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Email string `json:"email" validate:"required,email,max=254"`
	Phone string `json:"phone" validate:"omitempty,min=7,max=32"`
}

// RegistrationService handles paid course registrations
type RegistrationService struct {
	courses       repositories.CourseRepository
	registrations repositories.RegistrationRepository
	checkout      providers.CheckoutProvider
	validate      *validator.Validate
	now           func() time.Time
}

// NewRegistrationService creates a new registration service.
// checkout may be nil when payments are not configured.
func NewRegistrationService(
	courses repositories.CourseRepository,
	registrations repositories.RegistrationRepository,
	checkout providers.CheckoutProvider,
) *RegistrationService {
	return &RegistrationService{
		courses:       courses,
		registrations: registrations,
		checkout:      checkout,
		validate:      newValidator(),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ListCourses returns courses still open for registration
func (s *RegistrationService) ListCourses(ctx context.Context) ([]*entities.Course, error) {
	return s.courses.ListActive(ctx, s.now())
}

// Register reserves a seat and opens a checkout session for it
func (s *RegistrationService) Register(ctx context.Context, courseID string, req RegisterRequest) (*entities.CourseRegistration, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if s.checkout == nil {
		return nil, apperrors.NewExternalError("online checkout is not available", nil)
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !course.Active {
		return nil, apperrors.NewConflictError("course is not open for registration")
	}
	if !course.StartsAt.After(now) {
		return nil, apperrors.NewConflictError("course has already started")
	}

	if course.Capacity > 0 {
		taken, err := s.registrations.CountActive(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		if taken >= course.Capacity {
			return nil, apperrors.NewConflictError("course is full")
		}
	}

	registration := &entities.CourseRegistration{
		ID:          uuid.New().String(),
		CourseID:    course.ID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Status:      entities.RegistrationStatusPending,
		AmountCents: course.PriceCents,
		Currency:    course.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.registrations.Create(ctx, registration); err != nil {
		return nil, err
	}

	session, err := s.checkout.CreateSession(ctx, entities.CheckoutRequest{
		RegistrationID: registration.ID,
		CustomerEmail:  registration.Email,
		ProductName:    course.Title,
		AmountCents:    course.PriceCents,
		Currency:       course.Currency,
	})
	if err != nil {
		registration.Status = entities.RegistrationStatusCancelled
		registration.UpdatedAt = s.now()
		if uerr := s.registrations.Update(ctx, registration); uerr != nil {
			observability.LoggerFromContext(ctx).Error().
				Err(uerr).
				Str("registration_id", registration.ID).
				Msg("failed to cancel registration after checkout error")
		}
		return nil, apperrors.NewExternalError("failed to start checkout", err)
	}

	registration.CheckoutSessionID = session.ID
	registration.CheckoutURL = session.URL
	registration.UpdatedAt = s.now()
	if err := s.registrations.Update(ctx, registration); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("registration_id", registration.ID).
		Str("course_id", course.ID).
		Str("checkout_session_id", session.ID).
		Msg("course registration opened")

	return registration, nil
}

// CompleteCheckout re-reads a checkout session from the provider and marks
// the registration paid once payment has settled. Unsettled sessions leave
// the registration unchanged.
func (s *RegistrationService) CompleteCheckout(ctx context.Context, sessionID string) (*entities.CourseRegistration, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, apperrors.NewValidationError("session_id is required")
	}
	if s.checkout == nil {
		return nil, apperrors.NewExternalError("online checkout is not available", nil)
	}

	session, err := s.checkout.GetSession(ctx, sessionID)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to fetch checkout session", err)
	}

	if session.PaymentStatus != entities.CheckoutPaid {
		return s.registrations.GetByCheckoutSession(ctx, sessionID)
	}
	return s.MarkPaid(ctx, sessionID)
}

// MarkPaid transitions a pending registration to paid. Already-paid
// registrations are returned unchanged.
func (s *RegistrationService) MarkPaid(ctx context.Context, sessionID string) (*entities.CourseRegistration, error) {
	registration, err := s.registrations.GetByCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch registration.Status {
	case entities.RegistrationStatusPaid:
		return registration, nil
	case entities.RegistrationStatusCancelled:
		return nil, apperrors.NewConflictError(fmt.Sprintf("registration %s was cancelled", registration.ID))
	}

	now := s.now()
	registration.Status = entities.RegistrationStatusPaid
	registration.PaidAt = &now
	registration.UpdatedAt = now
	if err := s.registrations.Update(ctx, registration); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("registration_id", registration.ID).
		Msg("course registration paid")

	return registration, nil
}

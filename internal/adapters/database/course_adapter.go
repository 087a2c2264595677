package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/repositories"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/Bukassi600104/ultraclean/backend/pkg/errors"
)

const (
	coursesTable       = "courses"
	registrationsTable = "course_registrations"
)

var courseColumns = []interface{}{
	"id", "title", "description", "price_cents", "currency",
	"capacity", "starts_at", "active", "created_at", "updated_at",
}

// CourseAdapter implements the CourseRepository interface
type CourseAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCourseAdapter creates a new course adapter
func NewCourseAdapter(client *postgres.Client) repositories.CourseRepository {
	return &CourseAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a course by ID
func (a *CourseAdapter) GetByID(ctx context.Context, id string) (*entities.Course, error) {
	query, args, err := a.db.Select(courseColumns...).
		From(coursesTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	var course entities.Course
	err = a.client.DBX().GetContext(ctx, &course, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("course with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get course", err)
	}

	return &course, nil
}

// ListActive lists active courses starting after the given time
func (a *CourseAdapter) ListActive(ctx context.Context, after time.Time) ([]*entities.Course, error) {
	query, args, err := a.db.Select(courseColumns...).
		From(coursesTable).
		Where(
			goqu.C("active").IsTrue(),
			goqu.C("starts_at").Gt(after),
		).
		Order(goqu.C("starts_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	courses := make([]*entities.Course, 0)
	if err := a.client.DBX().SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list courses", err)
	}

	return courses, nil
}

// RegistrationAdapter implements the RegistrationRepository interface
type RegistrationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRegistrationAdapter creates a new registration adapter
func NewRegistrationAdapter(client *postgres.Client) repositories.RegistrationRepository {
	return &RegistrationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a new registration
func (a *RegistrationAdapter) Create(ctx context.Context, registration *entities.CourseRegistration) error {
	record := goqu.Record{
		"id":                  registration.ID,
		"course_id":           registration.CourseID,
		"name":                registration.Name,
		"email":               registration.Email,
		"phone":               registration.Phone,
		"status":              registration.Status,
		"checkout_session_id": nullString(registration.CheckoutSessionID),
		"checkout_url":        nullString(registration.CheckoutURL),
		"amount_cents":        registration.AmountCents,
		"currency":            registration.Currency,
		"paid_at":             nullTime(registration.PaidAt),
		"created_at":          registration.CreatedAt,
		"updated_at":          registration.UpdatedAt,
	}

	query, args, err := a.db.Insert(registrationsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build registration insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create registration", err)
	}

	return nil
}

// Update persists status and checkout fields
func (a *RegistrationAdapter) Update(ctx context.Context, registration *entities.CourseRegistration) error {
	query, args, err := a.db.Update(registrationsTable).
		Set(goqu.Record{
			"status":              registration.Status,
			"checkout_session_id": nullString(registration.CheckoutSessionID),
			"checkout_url":        nullString(registration.CheckoutURL),
			"paid_at":             nullTime(registration.PaidAt),
			"updated_at":          registration.UpdatedAt,
		}).
		Where(goqu.Ex{"id": registration.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update registration", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("registration with id %s not found", registration.ID))
	}

	return nil
}

// GetByCheckoutSession finds the registration opened with a checkout session
func (a *RegistrationAdapter) GetByCheckoutSession(ctx context.Context, sessionID string) (*entities.CourseRegistration, error) {
	query, args, err := a.db.Select(
		"id", "course_id", "name", "email",
		goqu.COALESCE(goqu.C("phone"), "").As("phone"),
		"status",
		goqu.COALESCE(goqu.C("checkout_session_id"), "").As("checkout_session_id"),
		goqu.COALESCE(goqu.C("checkout_url"), "").As("checkout_url"),
		"amount_cents", "currency", "paid_at", "created_at", "updated_at",
	).
		From(registrationsTable).
		Where(goqu.Ex{"checkout_session_id": sessionID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	var registration entities.CourseRegistration
	err = a.client.DBX().GetContext(ctx, &registration, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no registration for checkout session %s", sessionID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get registration", err)
	}

	return &registration, nil
}

// CountActive counts pending and paid registrations for a course
func (a *RegistrationAdapter) CountActive(ctx context.Context, courseID string) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From(registrationsTable).
		Where(
			goqu.C("course_id").Eq(courseID),
			goqu.C("status").In(
				string(entities.RegistrationStatusPending),
				string(entities.RegistrationStatusPaid),
			),
		).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count registrations", err)
	}

	return count, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

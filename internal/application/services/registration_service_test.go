package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Bukassi600104/ultraclean/backend/internal/application/services"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	apperrors "github.com/Bukassi600104/ultraclean/backend/pkg/errors"
)

func upcomingCourse() *entities.Course {
	return &entities.Course{
		ID:         "course-1",
		Title:      "Professional Cleaning 101",
		PriceCents: 24900,
		Currency:   "usd",
		Capacity:   10,
		StartsAt:   time.Now().Add(7 * 24 * time.Hour),
		Active:     true,
	}
}

var validRegistration = services.RegisterRequest{Name: "Sam", Email: "Sam@Example.com"}

func TestRegistrationService_Register(t *testing.T) {
	t.Run("opens checkout for a free seat", func(t *testing.T) {
		courses := new(MockCourseRepository)
		registrations := new(MockRegistrationRepository)
		checkout := new(MockCheckoutProvider)
		service := services.NewRegistrationService(courses, registrations, checkout)

		courses.On("GetByID", mock.Anything, "course-1").Return(upcomingCourse(), nil)
		registrations.On("CountActive", mock.Anything, "course-1").Return(3, nil)
		registrations.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.CourseRegistration) bool {
			return r.Status == entities.RegistrationStatusPending && r.AmountCents == 24900 && r.Email == "sam@example.com"
		})).Return(nil)
		checkout.On("CreateSession", mock.Anything, mock.MatchedBy(func(req entities.CheckoutRequest) bool {
			return req.ProductName == "Professional Cleaning 101" && req.AmountCents == 24900 && req.RegistrationID != ""
		})).Return(&entities.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"}, nil)
		registrations.On("Update", mock.Anything, mock.MatchedBy(func(r *entities.CourseRegistration) bool {
			return r.CheckoutSessionID == "cs_1"
		})).Return(nil)

		registration, err := service.Register(context.Background(), "course-1", validRegistration)
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.example/cs_1", registration.CheckoutURL)
		assert.Equal(t, entities.RegistrationStatusPending, registration.Status)
		checkout.AssertExpectations(t)
		registrations.AssertExpectations(t)
	})

	t.Run("rejects a full course", func(t *testing.T) {
		courses := new(MockCourseRepository)
		registrations := new(MockRegistrationRepository)
		service := services.NewRegistrationService(courses, registrations, new(MockCheckoutProvider))

		courses.On("GetByID", mock.Anything, "course-1").Return(upcomingCourse(), nil)
		registrations.On("CountActive", mock.Anything, "course-1").Return(10, nil)

		_, err := service.Register(context.Background(), "course-1", validRegistration)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
		registrations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a started course", func(t *testing.T) {
		courses := new(MockCourseRepository)
		service := services.NewRegistrationService(courses, new(MockRegistrationRepository), new(MockCheckoutProvider))

		course := upcomingCourse()
		course.StartsAt = time.Now().Add(-time.Hour)
		courses.On("GetByID", mock.Anything, "course-1").Return(course, nil)

		_, err := service.Register(context.Background(), "course-1", validRegistration)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
	})

	t.Run("cancels the seat when checkout fails", func(t *testing.T) {
		courses := new(MockCourseRepository)
		registrations := new(MockRegistrationRepository)
		checkout := new(MockCheckoutProvider)
		service := services.NewRegistrationService(courses, registrations, checkout)

		courses.On("GetByID", mock.Anything, "course-1").Return(upcomingCourse(), nil)
		registrations.On("CountActive", mock.Anything, "course-1").Return(0, nil)
		registrations.On("Create", mock.Anything, mock.Anything).Return(nil)
		checkout.On("CreateSession", mock.Anything, mock.Anything).Return(nil, errors.New("stripe unavailable"))
		registrations.On("Update", mock.Anything, mock.MatchedBy(func(r *entities.CourseRegistration) bool {
			return r.Status == entities.RegistrationStatusCancelled
		})).Return(nil)

		_, err := service.Register(context.Background(), "course-1", validRegistration)
		assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))
		registrations.AssertExpectations(t)
	})

	t.Run("validates the request", func(t *testing.T) {
		service := services.NewRegistrationService(new(MockCourseRepository), new(MockRegistrationRepository), new(MockCheckoutProvider))

		_, err := service.Register(context.Background(), "course-1", services.RegisterRequest{Name: "Sam", Email: "nope"})
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
	})

	t.Run("requires a checkout provider", func(t *testing.T) {
		service := services.NewRegistrationService(new(MockCourseRepository), new(MockRegistrationRepository), nil)

		_, err := service.Register(context.Background(), "course-1", validRegistration)
		assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))
	})
}

func TestRegistrationService_CompleteCheckout(t *testing.T) {
	t.Run("marks paid sessions", func(t *testing.T) {
		registrations := new(MockRegistrationRepository)
		checkout := new(MockCheckoutProvider)
		service := services.NewRegistrationService(new(MockCourseRepository), registrations, checkout)

		checkout.On("GetSession", mock.Anything, "cs_1").Return(&entities.CheckoutSession{ID: "cs_1", PaymentStatus: "paid"}, nil)
		registrations.On("GetByCheckoutSession", mock.Anything, "cs_1").Return(&entities.CourseRegistration{
			ID: "reg-1", Status: entities.RegistrationStatusPending, CheckoutSessionID: "cs_1",
		}, nil)
		registrations.On("Update", mock.Anything, mock.MatchedBy(func(r *entities.CourseRegistration) bool {
			return r.Status == entities.RegistrationStatusPaid && r.PaidAt != nil
		})).Return(nil)

		registration, err := service.CompleteCheckout(context.Background(), "cs_1")
		require.NoError(t, err)
		assert.Equal(t, entities.RegistrationStatusPaid, registration.Status)
	})

	t.Run("leaves unpaid sessions pending", func(t *testing.T) {
		registrations := new(MockRegistrationRepository)
		checkout := new(MockCheckoutProvider)
		service := services.NewRegistrationService(new(MockCourseRepository), registrations, checkout)

		checkout.On("GetSession", mock.Anything, "cs_1").Return(&entities.CheckoutSession{ID: "cs_1", PaymentStatus: "unpaid"}, nil)
		registrations.On("GetByCheckoutSession", mock.Anything, "cs_1").Return(&entities.CourseRegistration{
			ID: "reg-1", Status: entities.RegistrationStatusPending,
		}, nil)

		registration, err := service.CompleteCheckout(context.Background(), "cs_1")
		require.NoError(t, err)
		assert.Equal(t, entities.RegistrationStatusPending, registration.Status)
		registrations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("reports provider failures", func(t *testing.T) {
		checkout := new(MockCheckoutProvider)
		service := services.NewRegistrationService(new(MockCourseRepository), new(MockRegistrationRepository), checkout)

		checkout.On("GetSession", mock.Anything, "cs_1").Return(nil, errors.New("timeout"))

		_, err := service.CompleteCheckout(context.Background(), "cs_1")
		assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))
	})
}

func TestRegistrationService_MarkPaid(t *testing.T) {
	t.Run("is idempotent", func(t *testing.T) {
		registrations := new(MockRegistrationRepository)
		service := services.NewRegistrationService(new(MockCourseRepository), registrations, nil)

		paidAt := time.Now()
		registrations.On("GetByCheckoutSession", mock.Anything, "cs_1").Return(&entities.CourseRegistration{
			ID: "reg-1", Status: entities.RegistrationStatusPaid, PaidAt: &paidAt,
		}, nil)

		registration, err := service.MarkPaid(context.Background(), "cs_1")
		require.NoError(t, err)
		assert.Equal(t, &paidAt, registration.PaidAt)
		registrations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("refuses cancelled registrations", func(t *testing.T) {
		registrations := new(MockRegistrationRepository)
		service := services.NewRegistrationService(new(MockCourseRepository), registrations, nil)

		registrations.On("GetByCheckoutSession", mock.Anything, "cs_1").Return(&entities.CourseRegistration{
			ID: "reg-1", Status: entities.RegistrationStatusCancelled,
		}, nil)

		_, err := service.MarkPaid(context.Background(), "cs_1")
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
	})
}

func TestRegistrationService_ListCourses(t *testing.T) {
	courses := new(MockCourseRepository)
	service := services.NewRegistrationService(courses, new(MockRegistrationRepository), nil)

	courses.On("ListActive", mock.Anything, mock.AnythingOfType("time.Time")).Return([]*entities.Course{upcomingCourse()}, nil)

	list, err := service.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entities.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id string) (*entities.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entities.LeadStatus, updatedAt time.Time) error {
	args := m.Called(ctx, id, status, updatedAt)
	return args.Error(0)
}

type MockLeadNotifier struct {
	mock.Mock
}

func (m *MockLeadNotifier) NotifyLeadCreated(ctx context.Context, lead *entities.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, msg entities.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entities.LeadNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, notification *entities.LeadNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) GetByID(ctx context.Context, id string) (*entities.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Course), args.Error(1)
}

func (m *MockCourseRepository) ListActive(ctx context.Context, after time.Time) ([]*entities.Course, error) {
	args := m.Called(ctx, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Course), args.Error(1)
}

type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, registration *entities.CourseRegistration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Update(ctx context.Context, registration *entities.CourseRegistration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *MockRegistrationRepository) GetByCheckoutSession(ctx context.Context, sessionID string) (*entities.CourseRegistration, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CourseRegistration), args.Error(1)
}

func (m *MockRegistrationRepository) CountActive(ctx context.Context, courseID string) (int, error) {
	args := m.Called(ctx, courseID)
	return args.Int(0), args.Error(1)
}

type MockCheckoutProvider struct {
	mock.Mock
}

func (m *MockCheckoutProvider) CreateSession(ctx context.Context, req entities.CheckoutRequest) (*entities.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutProvider) GetSession(ctx context.Context, sessionID string) (*entities.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CheckoutSession), args.Error(1)
}

package entities

import "time"

// Course is a paid training session offered by the business
type Course struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	PriceCents  int64     `json:"price_cents" db:"price_cents"`
	Currency    string    `json:"currency" db:"currency"`
	Capacity    int       `json:"capacity" db:"capacity"`
	StartsAt    time.Time `json:"starts_at" db:"starts_at"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// RegistrationStatus represents the payment state of a registration
type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusPaid      RegistrationStatus = "paid"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

// CourseRegistration is one seat in a course, paid through hosted checkout
type CourseRegistration struct {
	ID                string             `json:"id" db:"id"`
	CourseID          string             `json:"course_id" db:"course_id"`
	Name              string             `json:"name" db:"name"`
	Email             string             `json:"email" db:"email"`
	Phone             string             `json:"phone" db:"phone"`
	Status            RegistrationStatus `json:"status" db:"status"`
	CheckoutSessionID string             `json:"checkout_session_id,omitempty" db:"checkout_session_id"`
	CheckoutURL       string             `json:"checkout_url,omitempty" db:"checkout_url"`
	AmountCents       int64              `json:"amount_cents" db:"amount_cents"`
	Currency          string             `json:"currency" db:"currency"`
	PaidAt            *time.Time         `json:"paid_at,omitempty" db:"paid_at"`
	CreatedAt         time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" db:"updated_at"`
}

// CheckoutRequest describes a hosted checkout session to open
type CheckoutRequest struct {
	RegistrationID string
	CustomerEmail  string
	ProductName    string
	AmountCents    int64
	Currency       string
}

// CheckoutSession is the provider's view of a checkout
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	ClientRef     string
}

// CheckoutPaid is the payment status reported for a completed payment
const CheckoutPaid = "paid"

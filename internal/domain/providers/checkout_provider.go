package providers

import (
	"context"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
)

// CheckoutProvider defines the interface for hosted payment checkout (Stripe, etc.)
type CheckoutProvider interface {
	// CreateSession opens a checkout session and returns its id and redirect URL
	CreateSession(ctx context.Context, req entities.CheckoutRequest) (*entities.CheckoutSession, error)

	// GetSession fetches the current state of a checkout session
	GetSession(ctx context.Context, sessionID string) (*entities.CheckoutSession, error)
}

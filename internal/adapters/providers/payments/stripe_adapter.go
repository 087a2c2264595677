package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/providers"
)

// SessionClient is the subset of the Stripe checkout session API in use
type SessionClient interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeAdapter implements CheckoutProvider with Stripe Checkout
type StripeAdapter struct {
	sessions   SessionClient
	successURL string
	cancelURL  string
}

// NewStripeAdapter creates a Stripe checkout adapter with its own API client
func NewStripeAdapter(secretKey, successURL, cancelURL string) providers.CheckoutProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return NewStripeAdapterWithClient(sc.CheckoutSessions, successURL, cancelURL)
}

// NewStripeAdapterWithClient creates an adapter around an existing session client
func NewStripeAdapterWithClient(sessions SessionClient, successURL, cancelURL string) *StripeAdapter {
	return &StripeAdapter{
		sessions:   sessions,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// CreateSession opens a one-item payment session for a registration
func (a *StripeAdapter) CreateSession(ctx context.Context, req entities.CheckoutRequest) (*entities.CheckoutSession, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("checkout amount must be positive")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(a.successURL),
		CancelURL:         stripe.String(a.cancelURL),
		ClientReferenceID: stripe.String(req.RegistrationID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(req.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
					UnitAmount: stripe.Int64(req.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.AddMetadata("registration_id", req.RegistrationID)
	params.Context = ctx

	s, err := a.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}
	return toCheckoutSession(s), nil
}

// GetSession fetches a checkout session by ID
func (a *StripeAdapter) GetSession(ctx context.Context, sessionID string) (*entities.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := a.sessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: get checkout session: %w", err)
	}
	return toCheckoutSession(s), nil
}

func toCheckoutSession(s *stripe.CheckoutSession) *entities.CheckoutSession {
	return &entities.CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		ClientRef:     s.ClientReferenceID,
	}
}

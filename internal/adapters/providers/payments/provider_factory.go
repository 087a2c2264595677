package payments

import (
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/providers"
	"github.com/Bukassi600104/ultraclean/backend/pkg/config"
)

// NewCheckoutProvider picks Stripe when a key is configured. Without a key it
// returns the mock provider when allowMock is set, otherwise nil.
func NewCheckoutProvider(cfg config.StripeConfig, allowMock bool) providers.CheckoutProvider {
	if cfg.CheckoutEnabled() {
		return NewStripeAdapter(cfg.SecretKey, cfg.SuccessURL, cfg.CancelURL)
	}
	if allowMock {
		return NewMockAdapter(cfg.SuccessURL)
	}
	return nil
}

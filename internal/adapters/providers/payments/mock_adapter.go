package payments

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/providers"
)

// MockAdapter settles every checkout immediately, for local development.
type MockAdapter struct {
	successURL string
	mu         sync.RWMutex
	sessions   map[string]*entities.CheckoutSession
}

// NewMockAdapter creates a mock checkout provider.
func NewMockAdapter(successURL string) providers.CheckoutProvider {
	return &MockAdapter{
		successURL: successURL,
		sessions:   make(map[string]*entities.CheckoutSession),
	}
}

// CreateSession returns a paid session whose URL is the success page.
func (m *MockAdapter) CreateSession(ctx context.Context, req entities.CheckoutRequest) (*entities.CheckoutSession, error) {
	id := "mock_cs_" + uuid.New().String()
	session := &entities.CheckoutSession{
		ID:            id,
		URL:           strings.ReplaceAll(m.successURL, "{CHECKOUT_SESSION_ID}", id),
		PaymentStatus: entities.CheckoutPaid,
		ClientRef:     req.RegistrationID,
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	copied := *session
	return &copied, nil
}

// GetSession returns a session created by this adapter.
func (m *MockAdapter) GetSession(ctx context.Context, sessionID string) (*entities.CheckoutSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("mock checkout session %s not found", sessionID)
	}
	copied := *session
	return &copied, nil
}

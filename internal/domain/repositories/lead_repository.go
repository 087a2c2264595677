package repositories

import (
	"context"
	"time"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
)

// LeadRepository defines the interface for lead data operations
type LeadRepository interface {
	// Create stores a new lead
	Create(ctx context.Context, lead *entities.Lead) error

	// GetByID retrieves a lead by ID
	GetByID(ctx context.Context, id string) (*entities.Lead, error)

	// UpdateStatus moves a lead to another pipeline stage
	UpdateStatus(ctx context.Context, id string, status entities.LeadStatus, updatedAt time.Time) error
}

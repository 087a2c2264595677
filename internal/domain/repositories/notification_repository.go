package repositories

import (
	"context"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
)

// NotificationRepository records notification delivery attempts
type NotificationRepository interface {
	Create(ctx context.Context, notification *entities.LeadNotification) error
	Update(ctx context.Context, notification *entities.LeadNotification) error
}

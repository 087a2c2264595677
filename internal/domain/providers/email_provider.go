package providers

import (
	"context"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
)

// EmailSender defines the interface for transactional email delivery
type EmailSender interface {
	Send(ctx context.Context, msg entities.EmailMessage) error
}

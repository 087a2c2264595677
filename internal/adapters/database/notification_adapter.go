package database

import (
	"context"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/repositories"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/Bukassi600104/ultraclean/backend/pkg/errors"
)

// NotificationAdapter records lead notification attempts using sqlx named queries
type NotificationAdapter struct {
	client *postgres.Client
}

// NewNotificationAdapter creates a new notification adapter
func NewNotificationAdapter(client *postgres.Client) repositories.NotificationRepository {
	return &NotificationAdapter{client: client}
}

const insertLeadNotification = `
	INSERT INTO lead_notifications
	(id, lead_id, notification_type, channel, recipient, status,
	 sent_at, failed_at, error_message, created_at, updated_at)
	VALUES (:id, :lead_id, :notification_type, :channel, :recipient, :status,
	 :sent_at, :failed_at, :error_message, :created_at, :updated_at)
`

const updateLeadNotification = `
	UPDATE lead_notifications
	SET status = :status, sent_at = :sent_at, failed_at = :failed_at,
	    error_message = :error_message, updated_at = :updated_at
	WHERE id = :id
`

// Create stores a pending notification record
func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.LeadNotification) error {
	if _, err := a.client.DBX().NamedExecContext(ctx, insertLeadNotification, notification); err != nil {
		return apperrors.NewInternalError("failed to create notification record", err)
	}
	return nil
}

// Update stores the delivery outcome
func (a *NotificationAdapter) Update(ctx context.Context, notification *entities.LeadNotification) error {
	if _, err := a.client.DBX().NamedExecContext(ctx, updateLeadNotification, notification); err != nil {
		return apperrors.NewInternalError("failed to update notification record", err)
	}
	return nil
}

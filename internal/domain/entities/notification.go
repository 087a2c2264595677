package entities

import "time"

// NotificationChannel represents the delivery channel
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
)

// NotificationType represents the notification purpose
type NotificationType string

const (
	NotificationLeadAlert        NotificationType = "lead_alert"
	NotificationLeadConfirmation NotificationType = "lead_confirmation"
)

// NotificationStatus represents the delivery status
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// LeadNotification records one delivery attempt for a lead
type LeadNotification struct {
	ID               string              `json:"id" db:"id"`
	LeadID           string              `json:"lead_id" db:"lead_id"`
	NotificationType NotificationType    `json:"notification_type" db:"notification_type"`
	Channel          NotificationChannel `json:"channel" db:"channel"`
	Recipient        string              `json:"recipient" db:"recipient"`
	Status           NotificationStatus  `json:"status" db:"status"`
	SentAt           *time.Time          `json:"sent_at,omitempty" db:"sent_at"`
	FailedAt         *time.Time          `json:"failed_at,omitempty" db:"failed_at"`
	ErrorMessage     *string             `json:"error_message,omitempty" db:"error_message"`
	CreatedAt        time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at" db:"updated_at"`
}

// EmailMessage is a rendered email ready for delivery
type EmailMessage struct {
	To       string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Bukassi600104/ultraclean/backend/internal/application/services"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
)

func sampleLead() *entities.Lead {
	preferred := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	return &entities.Lead{
		ID:            "lead-1",
		Kind:          entities.LeadKindBooking,
		Name:          "Dana <Lee>",
		Email:         "dana@example.com",
		Phone:         "555-0100",
		QuotedPrice:   "$251",
		PreferredDate: &preferred,
		PreferredTime: "morning",
		Notes:         "Service: residential | Size: 3 BR | Estimated price: $251",
	}
}

func TestNotificationService_NotifyLeadCreated(t *testing.T) {
	sender := new(MockEmailSender)
	repo := new(MockNotificationRepository)
	service := services.NewNotificationService(sender, repo, services.NotificationConfig{
		BusinessInbox: "office@ultraclean.example",
		Brand:         "UltraClean",
	}, nil)

	var sent []entities.EmailMessage
	sender.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = append(sent, args.Get(1).(entities.EmailMessage))
	}).Return(nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.LeadNotification) bool {
		return n.LeadID == "lead-1" && n.Channel == entities.ChannelEmail
	})).Return(nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.LeadNotification) bool {
		return n.Status == entities.NotificationStatusSent && n.SentAt != nil
	})).Return(nil)

	err := service.NotifyLeadCreated(context.Background(), sampleLead())
	require.NoError(t, err)
	require.Len(t, sent, 2)

	alert := sent[0]
	assert.Equal(t, "office@ultraclean.example", alert.To)
	assert.Equal(t, "dana@example.com", alert.ReplyTo)
	assert.Equal(t, "New booking request: Dana <Lee>", alert.Subject)
	assert.Contains(t, alert.HTMLBody, "Dana &lt;Lee&gt;")
	assert.Contains(t, alert.HTMLBody, "Monday, Mar 9, 2026 morning")
	assert.Contains(t, alert.TextBody, "Quoted price: $251")

	confirmation := sent[1]
	assert.Equal(t, "dana@example.com", confirmation.To)
	assert.Equal(t, "We received your booking request", confirmation.Subject)
	assert.Contains(t, confirmation.TextBody, "Your estimate: $251")

	repo.AssertNumberOfCalls(t, "Create", 2)
	repo.AssertNumberOfCalls(t, "Update", 2)
}

func TestNotificationService_OneFailureDoesNotBlockOther(t *testing.T) {
	sender := new(MockEmailSender)
	repo := new(MockNotificationRepository)
	service := services.NewNotificationService(sender, repo, services.NotificationConfig{
		BusinessInbox: "office@ultraclean.example",
	}, nil)

	sender.On("Send", mock.Anything, mock.MatchedBy(func(m entities.EmailMessage) bool {
		return m.To == "office@ultraclean.example"
	})).Return(errors.New("mailbox unavailable"))
	sender.On("Send", mock.Anything, mock.MatchedBy(func(m entities.EmailMessage) bool {
		return m.To == "dana@example.com"
	})).Return(nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.LeadNotification) bool {
		return n.NotificationType == entities.NotificationLeadAlert &&
			n.Status == entities.NotificationStatusFailed &&
			n.ErrorMessage != nil && *n.ErrorMessage == "mailbox unavailable"
	})).Return(nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.LeadNotification) bool {
		return n.NotificationType == entities.NotificationLeadConfirmation &&
			n.Status == entities.NotificationStatusSent
	})).Return(nil).Once()

	err := service.NotifyLeadCreated(context.Background(), sampleLead())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lead alert: mailbox unavailable")

	sender.AssertNumberOfCalls(t, "Send", 2)
	repo.AssertExpectations(t)
}

func TestNotificationService_SkipsMissingRecipients(t *testing.T) {
	sender := new(MockEmailSender)
	repo := new(MockNotificationRepository)
	service := services.NewNotificationService(sender, repo, services.NotificationConfig{}, nil)

	lead := sampleLead()
	lead.Email = ""

	err := service.NotifyLeadCreated(context.Background(), lead)
	require.NoError(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNotificationService_RecordFailureStillSends(t *testing.T) {
	sender := new(MockEmailSender)
	repo := new(MockNotificationRepository)
	service := services.NewNotificationService(sender, repo, services.NotificationConfig{}, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	err := service.NotifyLeadCreated(context.Background(), sampleLead())
	require.NoError(t, err)
	sender.AssertNumberOfCalls(t, "Send", 1)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	texttemplate "text/template"
	"time"

	"github.com/google/uuid"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/providers"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/repositories"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
)

const leadAlertHTML = `<h2>New {{.KindLabel}} from {{.Lead.Name}}</h2>
<table>
  <tr><td>Email</td><td>{{.Lead.Email}}</td></tr>
  {{if .Lead.Phone}}<tr><td>Phone</td><td>{{.Lead.Phone}}</td></tr>{{end}}
  {{if .Lead.Address}}<tr><td>Address</td><td>{{.Lead.Address}}</td></tr>{{end}}
  {{if .PreferredDate}}<tr><td>Preferred date</td><td>{{.PreferredDate}} {{.Lead.PreferredTime}}</td></tr>{{end}}
  {{if .Lead.QuotedPrice}}<tr><td>Quoted price</td><td>{{.Lead.QuotedPrice}}</td></tr>{{end}}
</table>
{{if .Lead.Notes}}<p>{{.Lead.Notes}}</p>{{end}}
{{if .Lead.Message}}<blockquote>{{.Lead.Message}}</blockquote>{{end}}`

const leadAlertText = `New {{.KindLabel}} from {{.Lead.Name}}
Email: {{.Lead.Email}}
{{if .Lead.Phone}}Phone: {{.Lead.Phone}}
{{end}}{{if .PreferredDate}}Preferred date: {{.PreferredDate}} {{.Lead.PreferredTime}}
{{end}}{{if .Lead.QuotedPrice}}Quoted price: {{.Lead.QuotedPrice}}
{{end}}{{if .Lead.Notes}}{{.Lead.Notes}}
{{end}}{{if .Lead.Message}}
{{.Lead.Message}}
{{end}}`

const leadConfirmationHTML = `<p>Hi {{.Lead.Name}},</p>
<p>Thanks for reaching out to {{.Brand}}. We received your {{.KindLabel}} and will get back to you within one business day.</p>
{{if .Lead.QuotedPrice}}<p>Your estimate: <strong>{{.Lead.QuotedPrice}}</strong></p>{{end}}
<p>{{.Brand}}</p>`

const leadConfirmationText = `Hi {{.Lead.Name}},

Thanks for reaching out to {{.Brand}}. We received your {{.KindLabel}} and will get back to you within one business day.
{{if .Lead.QuotedPrice}}
Your estimate: {{.Lead.QuotedPrice}}
{{end}}
{{.Brand}}
`

// NotificationConfig names the recipients and branding of lead emails
type NotificationConfig struct {
	BusinessInbox string
	Brand         string
}

// NotificationService sends lead emails and records every attempt
type NotificationService struct {
	sender  providers.EmailSender
	repo    repositories.NotificationRepository
	cfg     NotificationConfig
	metrics *observability.Metrics

	alertHTML        *template.Template
	alertText        *texttemplate.Template
	confirmationHTML *template.Template
	confirmationText *texttemplate.Template
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	sender providers.EmailSender,
	repo repositories.NotificationRepository,
	cfg NotificationConfig,
	metrics *observability.Metrics,
) *NotificationService {
	if cfg.Brand == "" {
		cfg.Brand = "UltraClean"
	}
	return &NotificationService{
		sender:           sender,
		repo:             repo,
		cfg:              cfg,
		metrics:          metrics,
		alertHTML:        template.Must(template.New("lead_alert").Parse(leadAlertHTML)),
		alertText:        texttemplate.Must(texttemplate.New("lead_alert").Parse(leadAlertText)),
		confirmationHTML: template.Must(template.New("lead_confirmation").Parse(leadConfirmationHTML)),
		confirmationText: texttemplate.Must(texttemplate.New("lead_confirmation").Parse(leadConfirmationText)),
	}
}

// leadEmailContext holds values available to the lead templates
type leadEmailContext struct {
	Lead          *entities.Lead
	Brand         string
	KindLabel     string
	PreferredDate string
}

// NotifyLeadCreated alerts the business inbox and confirms receipt to the
// customer. Both sends are attempted; the returned error joins any failures.
func (n *NotificationService) NotifyLeadCreated(ctx context.Context, lead *entities.Lead) error {
	data := n.emailContext(lead)
	var errs []error

	if n.cfg.BusinessInbox == "" {
		observability.LoggerFromContext(ctx).Warn().
			Str("lead_id", lead.ID).
			Msg("business inbox not configured, skipping lead alert")
	} else {
		msg, err := n.render(n.alertHTML, n.alertText, data)
		if err == nil {
			msg.To = n.cfg.BusinessInbox
			msg.ReplyTo = lead.Email
			msg.Subject = fmt.Sprintf("New %s: %s", data.KindLabel, lead.Name)
			err = n.deliver(ctx, lead.ID, entities.NotificationLeadAlert, msg)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("lead alert: %w", err))
		}
	}

	if lead.Email != "" {
		msg, err := n.render(n.confirmationHTML, n.confirmationText, data)
		if err == nil {
			msg.To = lead.Email
			msg.ReplyTo = n.cfg.BusinessInbox
			msg.Subject = fmt.Sprintf("We received your %s", data.KindLabel)
			err = n.deliver(ctx, lead.ID, entities.NotificationLeadConfirmation, msg)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("lead confirmation: %w", err))
		}
	}

	return errors.Join(errs...)
}

// deliver sends one message and records the outcome
func (n *NotificationService) deliver(ctx context.Context, leadID string, notifType entities.NotificationType, msg entities.EmailMessage) error {
	logger := observability.LoggerFromContext(ctx)
	now := time.Now().UTC()
	notification := &entities.LeadNotification{
		ID:               uuid.New().String(),
		LeadID:           leadID,
		NotificationType: notifType,
		Channel:          entities.ChannelEmail,
		Recipient:        msg.To,
		Status:           entities.NotificationStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	recorded := true
	if err := n.repo.Create(ctx, notification); err != nil {
		recorded = false
		logger.Error().Err(err).Str("lead_id", leadID).Msg("failed to record notification")
	}

	sendErr := n.sender.Send(ctx, msg)

	now = time.Now().UTC()
	notification.UpdatedAt = now
	if sendErr != nil {
		errMsg := sendErr.Error()
		notification.Status = entities.NotificationStatusFailed
		notification.FailedAt = &now
		notification.ErrorMessage = &errMsg
	} else {
		notification.Status = entities.NotificationStatusSent
		notification.SentAt = &now
	}
	observability.RecordNotification(ctx, n.metrics, string(notifType), string(notification.Status))

	if recorded {
		if err := n.repo.Update(ctx, notification); err != nil {
			logger.Error().Err(err).Str("notification_id", notification.ID).Msg("failed to update notification")
		}
	}

	return sendErr
}

func (n *NotificationService) render(htmlTmpl *template.Template, textTmpl *texttemplate.Template, data leadEmailContext) (entities.EmailMessage, error) {
	var html, text bytes.Buffer
	if err := htmlTmpl.Execute(&html, data); err != nil {
		return entities.EmailMessage{}, fmt.Errorf("failed to render %s: %w", htmlTmpl.Name(), err)
	}
	if err := textTmpl.Execute(&text, data); err != nil {
		return entities.EmailMessage{}, fmt.Errorf("failed to render %s: %w", textTmpl.Name(), err)
	}
	return entities.EmailMessage{HTMLBody: html.String(), TextBody: text.String()}, nil
}

func (n *NotificationService) emailContext(lead *entities.Lead) leadEmailContext {
	data := leadEmailContext{
		Lead:      lead,
		Brand:     n.cfg.Brand,
		KindLabel: kindLabel(lead.Kind),
	}
	if lead.PreferredDate != nil {
		data.PreferredDate = lead.PreferredDate.Format("Monday, Jan 2, 2006")
	}
	return data
}

func kindLabel(kind entities.LeadKind) string {
	switch kind {
	case entities.LeadKindBooking:
		return "booking request"
	case entities.LeadKindContact:
		return "message"
	default:
		return "quote request"
	}
}

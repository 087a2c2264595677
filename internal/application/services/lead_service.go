package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/repositories"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
	apperrors "github.com/Bukassi600104/ultraclean/backend/pkg/errors"
)

// LeadNotifier is told about every stored lead
type LeadNotifier interface {
	NotifyLeadCreated(ctx context.Context, lead *entities.Lead) error
}

// leadInput carries the validated subset of a submitted lead
type leadInput struct {
	Kind    string `json:"kind" validate:"omitempty,oneof=quote booking contact"`
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"omitempty,min=7,max=32"`
	Address string `json:"address" validate:"max=300"`
	Message string `json:"message" validate:"max=2000"`
}

// LeadService handles website lead intake
type LeadService struct {
	repo     repositories.LeadRepository
	notifier LeadNotifier
	validate *validator.Validate
	metrics  *observability.Metrics
	now      func() time.Time
	pending  sync.WaitGroup
}

// NewLeadService creates a new lead service. notifier may be nil.
func NewLeadService(repo repositories.LeadRepository, notifier LeadNotifier, metrics *observability.Metrics) *LeadService {
	return &LeadService{
		repo:     repo,
		notifier: notifier,
		validate: newValidator(),
		metrics:  metrics,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates, prices and stores a lead, then notifies in the background
func (s *LeadService) Submit(ctx context.Context, lead *entities.Lead) error {
	if lead == nil {
		return apperrors.NewValidationError("lead is required")
	}

	normalizeLead(lead)
	if lead.Kind == "" {
		if lead.Selection.Category != "" {
			lead.Kind = entities.LeadKindQuote
		} else {
			lead.Kind = entities.LeadKindContact
		}
	}

	if err := s.validate.Struct(leadInput{
		Kind:    string(lead.Kind),
		Name:    lead.Name,
		Email:   lead.Email,
		Phone:   lead.Phone,
		Address: lead.Address,
		Message: lead.Message,
	}); err != nil {
		return validationError(err)
	}

	now := s.now()
	if lead.Kind == entities.LeadKindBooking {
		if lead.PreferredDate == nil {
			return apperrors.NewValidationError("preferred_date is required for bookings")
		}
		today := now.Truncate(24 * time.Hour)
		if lead.PreferredDate.UTC().Truncate(24 * time.Hour).Before(today) {
			return apperrors.NewValidationError("preferred_date cannot be in the past")
		}
	}

	if lead.Selection.Category != "" {
		result := CalculateQuote(lead.Selection)
		lead.QuotedPrice = result.Display()
		lead.Notes = joinNotes(lead.Notes, FormatQuoteNote(lead.Selection, result))
		RecordQuoteOutcome(ctx, s.metrics, lead.Selection, result)
	}

	lead.ID = uuid.New().String()
	lead.Status = entities.LeadStatusNew
	lead.CreatedAt = now
	lead.UpdatedAt = now

	if err := s.repo.Create(ctx, lead); err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("lead_id", lead.ID).
		Str("kind", string(lead.Kind)).
		Str("quoted_price", lead.QuotedPrice).
		Msg("lead stored")

	if s.notifier != nil {
		s.notifyAsync(ctx, lead)
	}

	return nil
}

func (s *LeadService) notifyAsync(ctx context.Context, lead *entities.Lead) {
	notifyCtx := context.WithoutCancel(ctx)
	snapshot := *lead

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.notifier.NotifyLeadCreated(notifyCtx, &snapshot); err != nil {
			observability.LoggerFromContext(notifyCtx).Error().
				Err(err).
				Str("lead_id", snapshot.ID).
				Msg("lead notification failed")
		}
	}()
}

// Wait blocks until in-flight notifications finish or ctx ends
func (s *LeadService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get retrieves a lead by ID
func (s *LeadService) Get(ctx context.Context, id string) (*entities.Lead, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("lead id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus moves a lead to another pipeline stage
func (s *LeadService) UpdateStatus(ctx context.Context, id string, status entities.LeadStatus) (*entities.Lead, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("lead id is required")
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status must be one of: new contacted scheduled won lost")
	}

	if err := s.repo.UpdateStatus(ctx, id, status, s.now()); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func normalizeLead(lead *entities.Lead) {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.ToLower(strings.TrimSpace(lead.Email))
	lead.Phone = strings.TrimSpace(lead.Phone)
	lead.Address = strings.TrimSpace(lead.Address)
	lead.Message = strings.TrimSpace(lead.Message)
	lead.PreferredTime = strings.TrimSpace(lead.PreferredTime)
}

// joinNotes appends a line to existing free-text notes
func joinNotes(existing, line string) string {
	existing = strings.TrimSpace(existing)
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}

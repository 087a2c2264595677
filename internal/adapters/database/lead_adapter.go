package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/repositories"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/Bukassi600104/ultraclean/backend/pkg/errors"
)

const leadsTable = "leads"

var leadColumns = []interface{}{
	"id", "kind", "name", "email", "phone", "address", "message",
	"selection", "quoted_price", "preferred_date", "preferred_time",
	"status", "notes", "source", "user_agent", "created_at", "updated_at",
}

// LeadAdapter implements the LeadRepository interface
type LeadAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLeadAdapter creates a new lead adapter
func NewLeadAdapter(client *postgres.Client) repositories.LeadRepository {
	return &LeadAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a lead record
func (a *LeadAdapter) Create(ctx context.Context, lead *entities.Lead) error {
	if lead == nil {
		return apperrors.NewInternalError("lead is nil", fmt.Errorf("lead is nil"))
	}

	selection, err := json.Marshal(lead.Selection)
	if err != nil {
		return apperrors.NewInternalError("failed to encode quote selection", err)
	}

	record := goqu.Record{
		"id":             lead.ID,
		"kind":           lead.Kind,
		"name":           lead.Name,
		"email":          lead.Email,
		"phone":          nullString(lead.Phone),
		"address":        nullString(lead.Address),
		"message":        nullString(lead.Message),
		"selection":      string(selection),
		"quoted_price":   nullString(lead.QuotedPrice),
		"preferred_date": nullTime(lead.PreferredDate),
		"preferred_time": nullString(lead.PreferredTime),
		"status":         lead.Status,
		"notes":          nullString(lead.Notes),
		"source":         nullString(lead.Source),
		"user_agent":     nullString(lead.UserAgent),
		"created_at":     lead.CreatedAt,
		"updated_at":     lead.UpdatedAt,
	}

	query, args, err := a.db.Insert(leadsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build lead insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create lead", err)
	}

	return nil
}

// GetByID retrieves a lead by ID
func (a *LeadAdapter) GetByID(ctx context.Context, id string) (*entities.Lead, error) {
	query, args, err := a.db.Select(leadColumns...).
		From(leadsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	lead := &entities.Lead{}
	var (
		phone, address, message, quotedPrice sql.NullString
		preferredTime, notes, source, agent  sql.NullString
		preferredDate                        sql.NullTime
		selection                            []byte
	)

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&lead.ID,
		&lead.Kind,
		&lead.Name,
		&lead.Email,
		&phone,
		&address,
		&message,
		&selection,
		&quotedPrice,
		&preferredDate,
		&preferredTime,
		&lead.Status,
		&notes,
		&source,
		&agent,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("lead with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get lead", err)
	}

	if len(selection) > 0 {
		if err := json.Unmarshal(selection, &lead.Selection); err != nil {
			return nil, apperrors.NewInternalError("failed to decode quote selection", err)
		}
	}
	if preferredDate.Valid {
		d := preferredDate.Time
		lead.PreferredDate = &d
	}
	lead.Phone = phone.String
	lead.Address = address.String
	lead.Message = message.String
	lead.QuotedPrice = quotedPrice.String
	lead.PreferredTime = preferredTime.String
	lead.Notes = notes.String
	lead.Source = source.String
	lead.UserAgent = agent.String

	return lead, nil
}

// UpdateStatus moves a lead to another pipeline stage
func (a *LeadAdapter) UpdateStatus(ctx context.Context, id string, status entities.LeadStatus, updatedAt time.Time) error {
	query, args, err := a.db.Update(leadsTable).
		Set(goqu.Record{"status": status, "updated_at": updatedAt}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update lead status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("lead with id %s not found", id))
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

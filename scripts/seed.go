package main

import (
	"context"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/clients/postgres"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
	"github.com/Bukassi600104/ultraclean/backend/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS leads (
	id             UUID PRIMARY KEY,
	kind           TEXT NOT NULL,
	name           TEXT NOT NULL,
	email          TEXT NOT NULL,
	phone          TEXT,
	address        TEXT,
	message        TEXT,
	selection      JSONB NOT NULL DEFAULT '{}',
	quoted_price   TEXT,
	preferred_date DATE,
	preferred_time TEXT,
	status         TEXT NOT NULL DEFAULT 'new',
	notes          TEXT,
	source         TEXT,
	user_agent     TEXT,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_leads_status_created ON leads (status, created_at DESC);

CREATE TABLE IF NOT EXISTS lead_notifications (
	id                UUID PRIMARY KEY,
	lead_id           UUID NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
	notification_type TEXT NOT NULL,
	channel           TEXT NOT NULL,
	recipient         TEXT NOT NULL,
	status            TEXT NOT NULL,
	sent_at           TIMESTAMPTZ,
	failed_at         TIMESTAMPTZ,
	error_message     TEXT,
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS courses (
	id          UUID PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price_cents BIGINT NOT NULL,
	currency    TEXT NOT NULL DEFAULT 'usd',
	capacity    INTEGER NOT NULL DEFAULT 0,
	starts_at   TIMESTAMPTZ NOT NULL,
	active      BOOLEAN NOT NULL DEFAULT TRUE,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS course_registrations (
	id                  UUID PRIMARY KEY,
	course_id           UUID NOT NULL REFERENCES courses(id),
	name                TEXT NOT NULL,
	email               TEXT NOT NULL,
	phone               TEXT,
	status              TEXT NOT NULL,
	checkout_session_id TEXT UNIQUE,
	checkout_url        TEXT,
	amount_cents        BIGINT NOT NULL,
	currency            TEXT NOT NULL,
	paid_at             TIMESTAMPTZ,
	created_at          TIMESTAMPTZ NOT NULL,
	updated_at          TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_registrations_course_status ON course_registrations (course_id, status);
`

// courseID keeps seeded rows stable across runs so re-seeding is a no-op
func courseID(slug string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("ultraclean:course:"+slug)).String()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	observability.InitLogger("ultraclean-seed", cfg.Log.Env, cfg.Log.Level)

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	tx, err := pgClient.BeginTx(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		if _, err := tx.ExecContext(ctx, `
			TRUNCATE TABLE
				lead_notifications,
				leads,
				course_registrations,
				courses
		`); err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	now := time.Now().UTC()
	nextMonday := now.AddDate(0, 0, (8-int(now.Weekday()))%7+7).Truncate(24 * time.Hour).Add(9 * time.Hour)

	courses := []entities.Course{
		{
			ID:          courseID("residential-fundamentals"),
			Title:       "Residential Cleaning Fundamentals",
			Description: "Room-by-room workflow, product safety and time management for home cleaning.",
			PriceCents:  14900,
			Capacity:    12,
			StartsAt:    nextMonday,
		},
		{
			ID:          courseID("deep-clean-move-out"),
			Title:       "Deep Clean and Move-Out Mastery",
			Description: "Kitchens, bathrooms, appliances and the inspection checklist landlords use.",
			PriceCents:  19900,
			Capacity:    10,
			StartsAt:    nextMonday.AddDate(0, 0, 14),
		},
		{
			ID:          courseID("start-your-business"),
			Title:       "Start Your Own Cleaning Business",
			Description: "Pricing, insurance, client intake and scheduling for new owner-operators.",
			PriceCents:  29900,
			Capacity:    0,
			StartsAt:    nextMonday.AddDate(0, 1, 0),
		},
	}

	rows := make([]interface{}, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, goqu.Record{
			"id":          c.ID,
			"title":       c.Title,
			"description": c.Description,
			"price_cents": c.PriceCents,
			"currency":    cfg.Stripe.Currency,
			"capacity":    c.Capacity,
			"starts_at":   c.StartsAt,
			"active":      true,
			"created_at":  now,
			"updated_at":  now,
		})
	}

	query, args, err := goqu.Dialect("postgres").
		Insert("courses").
		Rows(rows...).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build course insert")
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed courses")
	}
	inserted, _ := result.RowsAffected()

	if err := tx.Commit(); err != nil {
		log.Fatal().Err(err).Msg("Failed to commit seed")
	}

	log.Info().Int64("courses_inserted", inserted).Msg("Seeding completed successfully")
}

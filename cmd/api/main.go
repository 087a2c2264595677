package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Bukassi600104/ultraclean/backend/internal/adapters/cache"
	"github.com/Bukassi600104/ultraclean/backend/internal/adapters/database"
	"github.com/Bukassi600104/ultraclean/backend/internal/adapters/providers/payments"
	"github.com/Bukassi600104/ultraclean/backend/internal/api/handlers"
	"github.com/Bukassi600104/ultraclean/backend/internal/api/routes"
	"github.com/Bukassi600104/ultraclean/backend/internal/application/services"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/providers"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/clients/postgres"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/clients/redis"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/notifications"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
	"github.com/Bukassi600104/ultraclean/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Log.Env, cfg.Log.Level)

	ctx := context.Background()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to setup OpenTelemetry")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	// Redis backs rate limiting, duplicate suppression and the course cache.
	// The submission guard falls back to in-process state without it.
	var cacheProvider providers.CacheProvider
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis, using in-memory submission guard")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient.Client(), "ultraclean:")
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Connected to Redis")
		}
	}

	var notifier services.LeadNotifier
	sender, err := notifications.NewSMTPSender(cfg.SMTP)
	if err != nil {
		log.Warn().Err(err).Msg("Email notifications disabled")
	} else {
		notifier = services.NewNotificationService(
			sender,
			database.NewNotificationAdapter(pgClient),
			services.NotificationConfig{
				BusinessInbox: cfg.SMTP.BusinessInbox,
				Brand:         cfg.SMTP.FromName,
			},
			metrics,
		)
	}

	leadService := services.NewLeadService(database.NewLeadAdapter(pgClient), notifier, metrics)

	checkout := payments.NewCheckoutProvider(cfg.Stripe, cfg.Log.Env == "development")
	if checkout == nil {
		log.Warn().Msg("STRIPE_SECRET_KEY not set, course checkout disabled")
	}
	courseRepo := database.NewCourseAdapter(pgClient)
	if cacheProvider != nil {
		courseRepo = database.NewCachedCourseAdapter(courseRepo, cacheProvider)
	}
	registrationService := services.NewRegistrationService(
		courseRepo,
		database.NewRegistrationAdapter(pgClient),
		checkout,
	)

	guard := handlers.NewSubmissionGuard(cacheProvider, cfg.RateLimit)

	router := routes.NewRouter(
		handlers.NewQuoteHandler(metrics),
		handlers.NewLeadHandler(leadService, guard, metrics),
		handlers.NewCourseHandler(registrationService, guard),
		routes.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AdminToken:     cfg.Server.AdminToken,
			Metrics:        metrics,
			ReadyCheck:     pgClient.Ping,
		},
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Let in-flight lead notifications finish before the clients close.
	if err := leadService.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Pending notifications abandoned")
	}

	log.Info().Msg("Server exited")
}

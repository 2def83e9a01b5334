package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/bookingapi"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/config"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/email"
	adminHandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/admin"
	appointmentHandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/appointment"
	auditHandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/audit"
	authHandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/auth"
	catalogHandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/catalog"
	clientHandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/client"
	healthHandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/health"
	reservationHandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/reservation"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/middleware"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/repository/postgres"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/router"
	adminService "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/admin"
	appointmentService "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/appointment"
	auditService "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/audit"
	authService "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/auth"
	clientService "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/client"
	reservationService "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/reservation"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/session"
	pkgauth "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/auth"
	pkglogger "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/logger"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/metrics"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := pkglogger.New(pkglogger.Config{
		Level:   cfg.Server.LogLevel,
		Service: "booking-admin",
	})

	// Audit trail database. Optional: the panel runs without it.
	var db *sqlx.DB
	if cfg.Database.Host != "" {
		db, err = postgres.NewDB(cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
	}

	// Session store: redis when configured, in-process otherwise.
	var sessionStore session.Store
	if cfg.Session.RedisURL != "" {
		redisStore, err := session.NewRedisStore(cfg.Session.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisStore.Close()
		sessionStore = redisStore
	} else {
		logger.Warn().Msg("no redis URL configured, sessions are in-process only")
		sessionStore = session.NewMemoryStore(cfg.Session.TTL)
	}

	m := metrics.NewMetrics("bookmy", "admin")

	apiClient := bookingapi.NewClient(bookingapi.Config{
		BaseURL:  cfg.BookingAPI.BaseURL,
		Timeout:  cfg.BookingAPI.Timeout,
		CacheTTL: cfg.BookingAPI.CacheTTL,
	}, logger, m)

	var mailer email.Service
	if cfg.SMTP.Host != "" {
		mailer = email.NewSMTPService(cfg.SMTP)
	} else {
		mailer = email.NewNoopService(logger)
	}

	var auditor *auditService.Service
	if db != nil {
		auditor = auditService.NewService(postgres.NewAuditRepository(db), logger)
		go auditRetentionLoop(auditor, cfg.Database.AuditRetention, logger)
	} else {
		auditor = auditService.NewService(nil, logger)
	}

	jwtSvc := pkgauth.NewJWTService(cfg.Session.Secret, cfg.Session.TTL)
	hasher := security.NewBcryptHasher(0)

	authSvc := authService.NewService(apiClient, sessionStore, jwtSvc, hasher, auditor, m, logger, cfg.Session.TTL)
	apiClient.OnUnauthorized(authSvc.PurgeSession)

	clientSvc := clientService.NewService(apiClient, auditor, logger)
	appointmentSvc := appointmentService.NewService(apiClient, auditor, logger)
	reservationSvc := reservationService.NewService(apiClient, mailer, auditor, m, logger)
	adminSvc := adminService.NewService(apiClient, mailer, auditor, logger)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, authSvc)

	r := router.NewRouter(
		logger,
		authMiddleware,
		authHandler.NewHandler(authSvc),
		clientHandler.NewHandler(clientSvc),
		catalogHandler.NewHandler(apiClient),
		appointmentHandler.NewHandler(appointmentSvc),
		reservationHandler.NewHandler(reservationSvc, apiClient),
		adminHandler.NewHandler(adminSvc),
		auditHandler.NewHandler(auditor),
		healthHandler.NewHandler(db),
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			LoginRate:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			LoginBurst:       cfg.RateLimit.Burst,
			CORS:             corsConfig(cfg),
			RequestTimeout:   cfg.Server.RequestTimeout,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited properly")
}

// auditRetentionLoop trims the trail once a day so the table does not grow
// forever.
func auditRetentionLoop(auditor *auditService.Service, retention time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		dropped, err := auditor.Cleanup(ctx, retention)
		cancel()
		if err != nil {
			logger.Error().Err(err).Msg("audit retention cleanup failed")
			continue
		}
		if dropped > 0 {
			logger.Info().Int64("dropped", dropped).Msg("trimmed audit trail")
		}
	}
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Security.AllowedOrigins
	}
	return corsCfg
}

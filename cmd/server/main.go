package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"linkhub/internal/api"
	"linkhub/internal/api/handlers"
	"linkhub/internal/api/middleware"
	"linkhub/internal/engine/analytics"
	"linkhub/internal/engine/appearance"
	"linkhub/internal/engine/links"
	"linkhub/internal/engine/profile"
	"linkhub/internal/engine/social"
	"linkhub/internal/engine/tracking"
	"linkhub/internal/pkg/geoip"
	"linkhub/internal/pkg/logger"
	"linkhub/internal/platform/auth"
	"linkhub/internal/platform/cache"
	"linkhub/internal/platform/config"
	"linkhub/internal/platform/database"
	"linkhub/internal/platform/events"
	"linkhub/internal/platform/repositories"
	"linkhub/migrations"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, migrations.FS); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	// Redis backs the cache and the rate limiter when either asks for it
	var rdb *redis.Client
	if cfg.Cache.Driver == "redis" || cfg.RateLimit.Driver == "redis" {
		rdb, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to redis")
		}
		defer rdb.Close()
	}

	var limiter middleware.Limiter
	if cfg.RateLimit.Driver == "redis" {
		limiter = middleware.NewRedisLimiter(rdb, "ratelimit")
	} else {
		memLimiter := middleware.NewMemoryLimiter()
		defer memLimiter.Close()
		limiter = memLimiter
	}

	// Repositories and services
	userRepo := repositories.NewUserRepository(db)
	tokenSvc := auth.NewTokenService(cfg.JWT)

	linkService := links.NewService(links.NewRepository(db))
	appearanceService := appearance.NewService(appearance.NewRepository(db))
	socialService := social.NewService(social.NewRepository(db))
	analyticsService := analytics.NewService(analytics.NewRepository(db))
	profileService := profile.NewService(
		userRepo,
		linkService,
		appearanceService,
		socialService,
		cache.New(cfg.Cache, rdb),
		cfg.Cache.ProfileTTL,
	)

	trackingStore := tracking.NewStore(db)
	var recorder tracking.Recorder
	var nc *nats.Conn
	if cfg.Events.Driver == "nats" {
		var js nats.JetStreamContext
		nc, js, err = events.Connect(cfg.Events)
		if err != nil {
			log.Fatal().Err(err).Str("url", cfg.Events.NATSURL).Msg("Failed to connect to NATS")
		}
		defer nc.Drain()

		if err := events.EnsureStream(js, cfg.Events); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure event stream")
		}
		recorder = tracking.NewPublisher(js, cfg.Events)
	}
	trackingService := tracking.NewService(trackingStore, recorder, profileService)

	var metricsHandler *handlers.MetricsHandler
	if cfg.Metrics.Enabled {
		metricsHandler = handlers.NewMetricsHandler()
	}

	deps := &api.Dependencies{
		AuthHandler:       handlers.NewAuthHandler(userRepo, tokenSvc, cfg.JWT),
		LinkHandler:       handlers.NewLinkHandler(linkService, profileService),
		AnalyticsHandler:  handlers.NewAnalyticsHandler(analyticsService),
		AppearanceHandler: handlers.NewAppearanceHandler(appearanceService, profileService),
		SocialHandler:     handlers.NewSocialHandler(socialService, profileService),
		ProfileHandler: handlers.NewProfileHandler(profileService, profile.NewAvatarStore(
			cfg.Uploads.Dir, cfg.Uploads.AvatarSize, cfg.Uploads.MaxAvatarBytes,
		)),
		PublicHandler:   handlers.NewPublicHandler(profileService, cfg.Server.PublicURL),
		TrackingHandler: handlers.NewTrackingHandler(trackingService, geoip.NewHeaderResolver()),
		HealthHandler:   handlers.NewHealthHandler(db, rdb, nc),
		MetricsHandler:  metricsHandler,
		AuthMiddleware:  middleware.NewAuthMiddleware(tokenSvc, cfg.JWT.CookieName),
		Limiter:         limiter,
		RateLimit:       cfg.RateLimit,
		UploadsDir:      cfg.Uploads.Dir,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("events", cfg.Events.Driver).Msg("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

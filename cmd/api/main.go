package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/access"
	"server/internal/adapter/repo"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/infra/google"
	"server/internal/middleware"
	"server/internal/pdf"
	"server/internal/storage"
)

func main() {
	// Muat .env (opsional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)
	profiles := repo.NewProfileRepository(runner)
	usage := repo.NewUsageRepository(runner)

	fileStore, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, country resolution disabled")
	} else if resolver != nil {
		lookup = resolver.CountryCode
	}

	provider := access.NewProvider(profiles, cfg.ProfileCacheTTL, logger)
	outbox := access.NewOutbox(cfg.OutboxSize, logger)
	defer outbox.Close()
	gate := access.NewGate(provider, usage, outbox, cfg.OverlaySettleDelay, logger)

	app := &handlers.App{
		SQL:            runner,
		Logger:         logger,
		JWTSecret:      cfg.JWTSecret,
		GoogleVerifier: google.NewVerifier(cfg.GoogleIssuer, cfg.GoogleClientID),
		Provider:       provider,
		Gate:           gate,
		Tools:          pdf.NewService(logger),
		Profiles:       profiles,
		Usage:          usage,
		Store:          fileStore,
	}

	router := httpapi.NewRouter(app, cfg, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != os.ErrClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "heatshield/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"heatshield/internal/auth"
	"heatshield/internal/cache"
	"heatshield/internal/config"
	"heatshield/internal/db"
	"heatshield/internal/handler"
	"heatshield/internal/logging"
	"heatshield/internal/repository"
	"heatshield/internal/router"
	"heatshield/internal/service"
)

// @title HeatShield API
// @version 1.0
// @description Heat exposure tracking API with JWT authentication, user profiles and crowd-sourced heatmap samples.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.MustLoad()
	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// run serves until SIGINT/SIGTERM or a listener failure. Deferred cleanup
// runs in both cases.
func run(cfg *config.Config, log zerolog.Logger) error {
	if cfg.JWT.Secret == config.DefaultJWTSecret {
		log.Warn().Msg("JWT_SECRET is not set, using the development default")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, logout will fail until it is reachable")
	}
	cancelPing()

	userRepo := repository.NewUserRepository(gormDB)
	heatmapRepo := repository.NewHeatmapRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)
	revocations := auth.NewRevocationStore(cacheClient)

	authService := service.NewAuthService(userRepo, jwtService, revocations)
	profileService := service.NewProfileService(userRepo)
	heatmapService := service.NewHeatmapService(heatmapRepo, cfg.HeatmapMaxLimit)

	e := echo.New()
	router.Register(e, router.Deps{
		Config:         cfg,
		Logger:         log,
		JWTService:     jwtService,
		Revocations:    revocations,
		AuthHandler:    handler.NewAuthHandler(authService),
		ProfileHandler: handler.NewProfileHandler(profileService),
		HeatmapHandler: handler.NewHeatmapHandler(heatmapService),
	})

	log.Info().Str("url", swaggerURL(cfg)).Msg("swagger documentation available")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server start: %w", err)
	case <-ctx.Done():
		shutdown(e, cfg.ShutdownTimeout, log)
		return nil
	}
}

func shutdown(e *echo.Echo, timeout time.Duration, log zerolog.Logger) {
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}

// swaggerURL builds the public URL of the swagger UI. SwaggerHost may already
// carry a scheme.
func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimSuffix(host, "/") + "/swagger/index.html"
}

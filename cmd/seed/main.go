package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"heatshield/internal/config"
	"heatshield/internal/db"
	apperrors "heatshield/internal/errors"
	"heatshield/internal/logging"
	"heatshield/internal/model"
	"heatshield/internal/repository"
	"heatshield/internal/service"
)

func main() {
	file := flag.String("file", "", "JSON file with zones to load instead of the built-in set")
	name := flag.String("name", "Demo User", "demo user name")
	email := flag.String("email", "demo@heatshield.local", "demo user email")
	password := flag.String("password", "demo1234", "demo user password")
	flag.Parse()

	cfg := config.MustLoad()
	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	zones, err := loadZones(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("load zones")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := db.Migrate(gormDB, false); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	userRepo := repository.NewUserRepository(gormDB)
	s := seeder{
		users:   userRepo,
		auth:    service.NewAuthService(userRepo, nil, nil),
		heatmap: service.NewHeatmapService(repository.NewHeatmapRepository(gormDB), cfg.HeatmapMaxLimit),
		log:     log,
	}

	n, err := s.run(context.Background(), *name, *email, *password, zones)
	if err != nil {
		log.Error().Err(err).Int("saved", n).Msg("seed failed")
		os.Exit(1)
	}
	log.Info().Int("samples", n).Str("email", *email).Msg("seed completed")
}

type seeder struct {
	users   repository.UserRepository
	auth    service.AuthService
	heatmap service.HeatmapService
	log     zerolog.Logger
}

// run makes sure the demo user exists and saves one sample per zone under
// that user. It returns the number of samples written.
func (s seeder) run(ctx context.Context, name, email, password string, zones []Zone) (int, error) {
	userID, err := s.demoUser(ctx, name, email, password)
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, z := range zones {
		lat, lon := z.Latitude, z.Longitude
		if _, err := s.heatmap.SaveLocation(ctx, userID, service.Sample{
			Latitude:    &lat,
			Longitude:   &lon,
			Temperature: z.Temperature,
		}); err != nil {
			return saved, fmt.Errorf("zone %q: %w", z.Name, err)
		}
		s.log.Debug().Str("zone", z.Name).Msg("sample saved")
		saved++
	}
	return saved, nil
}

func (s seeder) demoUser(ctx context.Context, name, email, password string) (model.UserID, error) {
	user, err := s.auth.Register(ctx, name, email, password)
	switch {
	case err == nil:
		s.log.Info().Uint("user_id", uint(user.ID)).Msg("demo user created")
		return user.ID, nil
	case errors.Is(err, apperrors.ErrEmailTaken):
		existing, err := s.users.FindByEmail(ctx, service.NormalizeEmail(email))
		if err != nil {
			return 0, fmt.Errorf("find demo user: %w", err)
		}
		s.log.Info().Uint("user_id", uint(existing.ID)).Msg("demo user exists")
		return existing.ID, nil
	default:
		return 0, fmt.Errorf("register demo user: %w", err)
	}
}

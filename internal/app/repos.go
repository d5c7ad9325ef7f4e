package app

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/patchbridge-backend/internal/data/db"
	"github.com/yungbote/patchbridge-backend/internal/data/repos"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

func wireDatabase(ctx context.Context, log *logger.Logger, cfg Config) (*db.Service, error) {
	log.Info("Wiring database...")
	svc, err := db.NewService(log, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	if err := seedDatabase(ctx, svc, log, cfg); err != nil {
		_ = svc.Close()
		return nil, err
	}
	return svc, nil
}

func seedDatabase(ctx context.Context, svc *db.Service, log *logger.Logger, cfg Config) error {
	var fixtures *db.Fixtures
	switch {
	case strings.TrimSpace(cfg.SeedFile) != "":
		f, err := db.LoadFixtures(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("load seed file: %w", err)
		}
		fixtures = f
	case cfg.seedsDemoData(svc.Driver()):
		fixtures = db.DemoFixtures()
	default:
		return nil
	}
	return db.Seed(ctx, svc.DB(), log, fixtures)
}

func wireRepos(database *gorm.DB, log *logger.Logger) repos.Set {
	log.Info("Wiring repos...")
	return repos.NewSet(database, log)
}

package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver string

	SQLitePath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresName     string
	PostgresSSLMode  string

	MaxOpenConns int
}

// DSN renders the driver specific connection string.
func (c Config) DSN() string {
	switch c.driver() {
	case DriverPostgres:
		sslMode := c.PostgresSSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s",
			c.PostgresUser,
			c.PostgresPassword,
			c.PostgresHost,
			c.PostgresPort,
			c.PostgresName,
			sslMode,
		)
	default:
		path := c.SQLitePath
		if path == "" {
			path = "file::memory:?cache=shared"
		}
		if !strings.Contains(path, "_fk=") && !strings.Contains(path, "_foreign_keys=") {
			sep := "?"
			if strings.Contains(path, "?") {
				sep = "&"
			}
			path += sep + "_fk=1"
		}
		return path
	}
}

func (c Config) driver() string {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case DriverPostgres, "pg", "postgresql":
		return DriverPostgres
	default:
		return DriverSQLite
	}
}

type Service struct {
	db     *gorm.DB
	log    *logger.Logger
	driver string
}

// NewService opens the configured database with a gorm logger routed through log.
func NewService(logg *logger.Logger, cfg Config) (*Service, error) {
	if logg == nil {
		logg = logger.NewNop()
	}
	serviceLog := logg.With("service", "DatabaseService", "driver", cfg.driver())

	var dialector gorm.Dialector
	switch cfg.driver() {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	default:
		dialector = sqlite.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(serviceLog),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.driver(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if cfg.driver() == DriverSQLite {
		// one writer at a time; in-memory databases also vanish when the last connection closes
		maxOpen = 1
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	serviceLog.Info("Database connected")
	return &Service{db: db, log: serviceLog, driver: cfg.driver()}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Driver() string { return s.driver }

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Running auto migrations")
	return AutoMigrateAll(s.db)
}

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewGormLogger routes gorm's warnings and slow queries to the zap logger.
func NewGormLogger(log *logger.Logger) gormLogger.Interface {
	return gormLogger.New(gormWriter{log: log}, gormLogger.Config{
		SlowThreshold:             1 * time.Second,
		LogLevel:                  gormLogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	if w.log == nil {
		return
	}
	w.log.Warn("gorm", "message", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

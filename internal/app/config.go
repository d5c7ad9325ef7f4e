package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/patchbridge-backend/internal/data/db"
	"github.com/yungbote/patchbridge-backend/internal/platform/envutil"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

type Config struct {
	Port            string
	LogMode         string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	DB       db.Config
	SeedFile string

	RedisAddr     string
	RedisPassword string
	RedisChannel  string

	MetricsEnabled bool

	OtelEnabled     bool
	OtelEndpoint    string
	OtelInsecure    bool
	OtelHeaders     string
	OtelSampleRatio float64
	ServiceName     string
	Version         string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:            envutil.String("PORT", "8080", log),
		LogMode:         envutil.String("LOG_MODE", "development", log),
		ShutdownTimeout: time.Duration(envutil.Int("SHUTDOWN_TIMEOUT_SECONDS", 15, log)) * time.Second,
		CORSOrigins:     envutil.List("CORS_ALLOWED_ORIGINS", nil, log),

		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", db.DriverSQLite, log),
			SQLitePath:       envutil.String("SQLITE_PATH", "file::memory:?cache=shared", log),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost", log),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432", log),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres", log),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", "", log),
			PostgresName:     envutil.String("POSTGRES_NAME", "patchbridge", log),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable", log),
			MaxOpenConns:     envutil.Int("DB_MAX_OPEN_CONNS", 10, log),
		},
		SeedFile: envutil.String("SEED_FILE", "", log),

		RedisAddr:     envutil.String("REDIS_ADDR", "", log),
		RedisPassword: envutil.String("REDIS_PASSWORD", "", log),
		RedisChannel:  envutil.String("REDIS_CHANNEL", "patch-events", log),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", true, log),

		OtelEnabled:     envutil.Bool("OTEL_ENABLED", false, log),
		OtelEndpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
		OtelInsecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", true, log),
		OtelHeaders:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log),
		OtelSampleRatio: parseRatio(envutil.String("OTEL_SAMPLER_RATIO", "", log), 1),
		ServiceName:     envutil.String("OTEL_SERVICE_NAME", "patchbridge", log),
		Version:         envutil.String("SERVICE_VERSION", "dev", log),
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 15 * time.Second
	}
	return cfg
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// seedsDemoData reports whether the embedded demo fixtures should be loaded
// for the resolved driver.
func (c Config) seedsDemoData(driver string) bool {
	return strings.TrimSpace(c.SeedFile) == "" && driver == db.DriverSQLite
}

func parseRatio(raw string, def float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f > 1 {
		return def
	}
	return f
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Database DatabaseConfig
	Remote   RemoteConfig
	Engine   EngineConfig
}

// ServerConfig holds HTTP server runtime parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string
}

// RemoteConfig describes the externally hosted walks-and-events platform.
type RemoteConfig struct {
	BaseURL string
	APIKey  string
	// GroupCode scopes listing queries to this club's walks.
	GroupCode string
	// PublicHost and ManagementHost are the two host values used when
	// rewriting a walk's public URL into its management-platform form for
	// deletion requests.
	PublicHost     string
	ManagementHost string
}

// EngineConfig holds reconciliation and export engine settings.
type EngineConfig struct {
	// DryRun performs a full reconciliation pass but logs intended
	// persistence writes instead of executing them.
	DryRun bool
	// CompareGridRefs enables grid-reference comparison in the
	// publish-status evaluator. Off by default.
	CompareGridRefs bool
	// DefaultAverageSpeedMph is used to estimate finish times for walks
	// without an explicit average-speed hint.
	DefaultAverageSpeedMph float64
	ReconcileInterval      time.Duration
}

const (
	defaultPort            = "8080"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	defaultLogFormat = "json"

	defaultAverageSpeedMph   = 2.5
	defaultReconcileInterval = 1 * time.Hour
)

// Load reads configuration from environment variables, applying defaults when
// values are not provided or invalid.
func Load() (Config, error) {
	// Cloud Run sets PORT, but allow SERVER_PORT override for local dev
	port := getEnv("PORT", "")
	if port == "" {
		port = getEnv("SERVER_PORT", defaultPort)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
		Database: DatabaseConfig{
			// Empty means no database: the server falls back to the
			// in-memory walk store.
			URL: os.Getenv("DATABASE_URL"),
		},
		Remote: RemoteConfig{
			BaseURL:        getEnv("WALKS_PLATFORM_URL", "https://walks-manager.example.org/api"),
			APIKey:         os.Getenv("WALKS_PLATFORM_API_KEY"),
			GroupCode:      os.Getenv("WALKS_PLATFORM_GROUP_CODE"),
			PublicHost:     getEnv("WALKS_PLATFORM_PUBLIC_HOST", "www.walksplatform.example.org"),
			ManagementHost: getEnv("WALKS_PLATFORM_MANAGEMENT_HOST", "walks-manager.example.org"),
		},
		Engine: EngineConfig{
			DefaultAverageSpeedMph: defaultAverageSpeedMph,
			ReconcileInterval:      defaultReconcileInterval,
		},
	}

	if v := os.Getenv("SERVER_READ_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_READ_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ReadTimeout = d
	}

	if v := os.Getenv("SERVER_WRITE_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.WriteTimeout = d
	}

	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	if v := os.Getenv("RECONCILE_DRY_RUN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RECONCILE_DRY_RUN: %w", err)
		}
		cfg.Engine.DryRun = b
	}

	if v := os.Getenv("COMPARE_GRID_REFS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid COMPARE_GRID_REFS: %w", err)
		}
		cfg.Engine.CompareGridRefs = b
	}

	if v := os.Getenv("DEFAULT_AVERAGE_SPEED_MPH"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("invalid DEFAULT_AVERAGE_SPEED_MPH: must be a positive number")
		}
		cfg.Engine.DefaultAverageSpeedMph = f
	}

	if v := os.Getenv("RECONCILE_INTERVAL_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RECONCILE_INTERVAL_SECONDS: %w", err)
		}
		cfg.Engine.ReconcileInterval = d
	}

	return cfg, nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("must be a non-negative integer")
	}
	return time.Duration(seconds) * time.Second, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-floor/geometry"
	"github.com/yeremiapane/restaurant-floor/services"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver string
	DBDSN    string

	SchedulerInterval time.Duration
	PingInterval      time.Duration
	BookingHorizon    time.Duration

	JWTSecret     string
	TokenTTL      time.Duration
	AdminPassword string
	LoginRate     int
	LoginBurst    int

	NATSURL    string
	SetupSQL   string
	CORSOrigin string

	TableDefaults services.TableDefaults
}

// Load reads the configuration from the environment. Call godotenv first so
// values from .env are visible.
func Load() (Config, error) {
	cfg := Config{
		Port:     readString("PORT", "8080"),
		GinMode:  os.Getenv("GIN_MODE"),
		LogLevel: readString("LOG_LEVEL", "info"),

		DBDriver: strings.ToLower(readString("DB_DRIVER", "sqlite")),
		DBDSN:    readString("DB_DSN", "floor.db"),

		SchedulerInterval: readDuration("SCHEDULER_INTERVAL", services.DefaultEngineConfig.SchedulerInterval),
		PingInterval:      readDuration("PING_INTERVAL", services.DefaultEngineConfig.PingInterval),
		BookingHorizon:    readDuration("BOOKING_HORIZON", services.DefaultHorizon),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      readDuration("TOKEN_TTL", 12*time.Hour),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		LoginRate:     readInt("LOGIN_RATE_PER_SECOND", 1),
		LoginBurst:    readInt("LOGIN_RATE_BURST", 5),

		NATSURL:    os.Getenv("NATS_URL"),
		SetupSQL:   os.Getenv("SETUP_SQL"),
		CORSOrigin: readString("CORS_ORIGIN", "*"),
	}

	defaults := services.DefaultTable
	defaults.Width = readFloat("DEFAULT_TABLE_WIDTH", defaults.Width)
	defaults.Height = readFloat("DEFAULT_TABLE_HEIGHT", defaults.Height)
	defaults.Capacity = readInt("DEFAULT_TABLE_CAPACITY", defaults.Capacity)
	if raw := os.Getenv("DEFAULT_TABLE_SHAPE"); raw != "" {
		shape, err := geometry.ParseShape(raw)
		if err != nil {
			return Config{}, fmt.Errorf("DEFAULT_TABLE_SHAPE: %w", err)
		}
		defaults.Shape = shape
	}
	cfg.TableDefaults = defaults

	switch cfg.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if defaults.Width <= 0 || defaults.Height <= 0 {
		return Config{}, fmt.Errorf("default table size must be positive, got %gx%g", defaults.Width, defaults.Height)
	}
	return cfg, nil
}

// Engine is the engine configuration derived from the environment.
func (c Config) Engine() services.EngineConfig {
	return services.EngineConfig{
		SchedulerInterval: c.SchedulerInterval,
		PingInterval:      c.PingInterval,
		Horizon:           c.BookingHorizon,
	}
}

// InitDB opens the floor database with the configured driver.
func InitDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gormConfig := &gorm.Config{}
	if cfg.GinMode == "release" {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}

func readString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// readDuration accepts Go durations ("10s", "500ms") or a bare number of seconds.
func readDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if value, err := time.ParseDuration(raw); err == nil && value > 0 {
		return value
	}
	if seconds, err := strconv.ParseFloat(raw, 64); err == nil && seconds > 0 {
		return time.Duration(seconds * float64(time.Second))
	}
	return fallback
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

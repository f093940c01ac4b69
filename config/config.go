package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"resort-backend/utils"
)

// Config is everything main needs to wire the service. It is read once at
// startup; nothing reads the environment after Load returns.
type Config struct {
	Port string

	// DatabaseURL is a mysql:// or postgres:// URL, or a raw MySQL DSN.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string

	RedisURL string
	CacheTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigins    []string
	RequestTimeout time.Duration

	ServiceDayStart time.Duration
	ServiceDayEnd   time.Duration
	SlotLength      time.Duration

	LogLevel string
	SeedData bool

	DefaultAdminUsername string
	DefaultAdminPassword string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env not found, using process environment")
	}

	cfg := &Config{
		Port:        utils.EnvOrDefault("PORT", "8080"),
		DatabaseURL: utils.StringOrDefault(utils.EnvOrDefault("DATABASE_URL", ""), utils.EnvOrDefault("MYSQL_URL", "")),
		DBUser:      utils.EnvOrDefault("DB_USER", "root"),
		DBPass:      utils.EnvOrDefault("DB_PASS", ""),
		DBHost:      utils.EnvOrDefault("DB_HOST", "127.0.0.1"),
		DBPort:      utils.EnvOrDefault("DB_PORT", "3306"),
		DBName:      utils.EnvOrDefault("DB_NAME", "resort_db"),

		RedisURL: utils.EnvOrDefault("REDIS_URL", ""),
		CacheTTL: utils.EnvDuration("CACHE_TTL", 5*time.Minute),

		KafkaBrokers: utils.EnvList("KAFKA_BROKERS"),
		KafkaTopic:   utils.EnvOrDefault("KAFKA_TOPIC", "booking-events"),

		JWTSecret: utils.EnvOrDefault("JWT_SECRET", ""),
		TokenTTL:  utils.EnvDuration("TOKEN_TTL", 12*time.Hour),

		CORSOrigins:    utils.EnvList("CORS_ORIGINS"),
		RequestTimeout: utils.EnvDuration("REQUEST_TIMEOUT", 10*time.Second),

		SlotLength: time.Duration(utils.EnvInt("SLOT_MINUTES", 60)) * time.Minute,

		LogLevel: strings.ToLower(utils.EnvOrDefault("LOG_LEVEL", "warn")),
		SeedData: utils.EnvBool("SEED_DATA", true),

		DefaultAdminUsername: utils.EnvOrDefault("DEFAULT_ADMIN_USERNAME", ""),
		DefaultAdminPassword: utils.EnvOrDefault("DEFAULT_ADMIN_PASSWORD", ""),
	}

	var err error
	if cfg.ServiceDayStart, err = utils.ParseClock(utils.EnvOrDefault("SERVICE_DAY_START", "09:00")); err != nil {
		return nil, fmt.Errorf("invalid SERVICE_DAY_START: %w", err)
	}
	if cfg.ServiceDayEnd, err = utils.ParseClock(utils.EnvOrDefault("SERVICE_DAY_END", "21:00")); err != nil {
		return nil, fmt.Errorf("invalid SERVICE_DAY_END: %w", err)
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.SlotLength <= 0 {
		errs = append(errs, errors.New("SLOT_MINUTES must be positive"))
	}
	if c.ServiceDayEnd <= c.ServiceDayStart {
		errs = append(errs, errors.New("SERVICE_DAY_END must be after SERVICE_DAY_START"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if (c.DefaultAdminUsername == "") != (c.DefaultAdminPassword == "") {
		errs = append(errs, errors.New("DEFAULT_ADMIN_USERNAME and DEFAULT_ADMIN_PASSWORD must be set together"))
	}
	switch c.LogLevel {
	case "silent", "error", "warn", "info":
	default:
		errs = append(errs, fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// AllowCredentials is false when any origin is the wildcard.
func (c *Config) AllowCredentials() bool {
	for _, o := range c.CORSOrigins {
		if o == "*" {
			return false
		}
	}
	return true
}

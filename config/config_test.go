package config

import (
	"strings"
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm/logger"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:       "secret",
		TokenTTL:        time.Hour,
		RequestTimeout:  time.Second,
		ServiceDayStart: 9 * time.Hour,
		ServiceDayEnd:   21 * time.Hour,
		SlotLength:      time.Hour,
		LogLevel:        "warn",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"ok", func(c *Config) {}, ""},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"zero slot", func(c *Config) { c.SlotLength = 0 }, "SLOT_MINUTES"},
		{"empty window", func(c *Config) { c.ServiceDayEnd = c.ServiceDayStart }, "SERVICE_DAY_END"},
		{"half admin", func(c *Config) { c.DefaultAdminUsername = "root" }, "DEFAULT_ADMIN"},
		{"bad level", func(c *Config) { c.LogLevel = "debug" }, "LOG_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SERVICE_DAY_START", "08:30")
	t.Setenv("SERVICE_DAY_END", "20:00")
	t.Setenv("SLOT_MINUTES", "30")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.ServiceDayStart != 8*time.Hour+30*time.Minute || cfg.ServiceDayEnd != 20*time.Hour {
		t.Errorf("window = %v-%v", cfg.ServiceDayStart, cfg.ServiceDayEnd)
	}
	if cfg.SlotLength != 30*time.Minute || cfg.CacheTTL != 90*time.Second {
		t.Errorf("slot = %v, ttl = %v", cfg.SlotLength, cfg.CacheTTL)
	}
	if cfg.KafkaTopic != "booking-events" {
		t.Errorf("KafkaTopic = %q", cfg.KafkaTopic)
	}
	if cfg.AllowCredentials() {
		t.Error("wildcard origin must not allow credentials")
	}
}

func TestLoadRejectsBadClock(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SERVICE_DAY_START", "9am")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed SERVICE_DAY_START")
	}
}

func TestMySQLDSNFromURL(t *testing.T) {
	dsn, err := mysqlDSNFromURL("mysql://app:pw@db.local/resort?loc=Local&timeout=5s")
	if err != nil {
		t.Fatalf("mysqlDSNFromURL: %v", err)
	}
	c, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN(%q): %v", dsn, err)
	}
	if c.User != "app" || c.Passwd != "pw" || c.Addr != "db.local:3306" || c.DBName != "resort" {
		t.Errorf("parsed config = %+v", c)
	}
	if !c.ParseTime || c.Loc != time.UTC {
		t.Errorf("times must be parsed as UTC, got parseTime=%v loc=%v", c.ParseTime, c.Loc)
	}
	if c.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", c.Timeout)
	}

	if _, err := mysqlDSNFromURL("mysql://app:pw@db.local/"); err == nil {
		t.Error("expected error for missing database name")
	}
}

func TestNormalizeMySQLDSN(t *testing.T) {
	dsn, err := normalizeMySQLDSN("app:pw@tcp(127.0.0.1:3307)/resort")
	if err != nil {
		t.Fatalf("normalizeMySQLDSN: %v", err)
	}
	c, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN: %v", err)
	}
	if !c.ParseTime || c.Loc != time.UTC || c.Addr != "127.0.0.1:3307" {
		t.Errorf("parsed config = %+v", c)
	}
}

func TestGormLogLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"silent": logger.Silent,
		"error":  logger.Error,
		"warn":   logger.Warn,
		"info":   logger.Info,
		"":       logger.Warn,
	}
	for in, want := range cases {
		if got := gormLogLevel(in); got != want {
			t.Errorf("gormLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

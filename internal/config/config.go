package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cron     CronConfig
	Policy   Policy
	LogLevel string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver     string // memory, postgres or sqlite
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

// CronConfig holds settings for the sweep entry points
type CronConfig struct {
	Secret        string
	SweepInterval time.Duration
}

// Policy holds the auction settlement rules
type Policy struct {
	SoftCloseWindow    time.Duration
	SoftCloseExtension time.Duration
	MaxExtensions      int // 0 = unlimited
	PaymentWindow      time.Duration
	DecisionWindow     time.Duration
	RelistDuration     time.Duration
	PenaltyPoints      int
	ReputationBase     int
	CommissionRate     decimal.Decimal
	CommissionCap      decimal.Decimal
}

// DefaultPolicy returns the marketplace defaults
func DefaultPolicy() Policy {
	return Policy{
		SoftCloseWindow:    5 * time.Minute,
		SoftCloseExtension: 5 * time.Minute,
		MaxExtensions:      0,
		PaymentWindow:      7 * 24 * time.Hour,
		DecisionWindow:     48 * time.Hour,
		RelistDuration:     7 * 24 * time.Hour,
		PenaltyPoints:      10,
		ReputationBase:     100,
		CommissionRate:     decimal.RequireFromString("0.05"),
		CommissionCap:      decimal.NewFromInt(500),
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	p := parser{}
	def := DefaultPolicy()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "memory"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			DBName:     getEnv("DB_NAME", "auctions"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "auctions.db"),
		},
		Cron: CronConfig{
			Secret:        getEnv("CRON_SECRET", ""),
			SweepInterval: p.duration("SWEEP_INTERVAL", 0),
		},
		Policy: Policy{
			SoftCloseWindow:    p.duration("SOFT_CLOSE_WINDOW", def.SoftCloseWindow),
			SoftCloseExtension: p.duration("SOFT_CLOSE_EXTENSION", def.SoftCloseExtension),
			MaxExtensions:      p.integer("SOFT_CLOSE_MAX_EXTENSIONS", def.MaxExtensions),
			PaymentWindow:      p.duration("PAYMENT_WINDOW", def.PaymentWindow),
			DecisionWindow:     p.duration("DECISION_WINDOW", def.DecisionWindow),
			RelistDuration:     p.duration("RELIST_DURATION", def.RelistDuration),
			PenaltyPoints:      p.integer("PENALTY_POINTS", def.PenaltyPoints),
			ReputationBase:     p.integer("REPUTATION_BASE", def.ReputationBase),
			CommissionRate:     p.decimal("COMMISSION_RATE", def.CommissionRate),
			CommissionCap:      p.decimal("COMMISSION_CAP", def.CommissionCap),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field rules
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "memory", "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be memory, postgres or sqlite, got %q", c.Database.Driver)
	}
	return c.Policy.Validate()
}

// Validate checks that the settlement rules are usable
func (p Policy) Validate() error {
	if p.SoftCloseWindow < 0 || p.SoftCloseExtension < 0 {
		return fmt.Errorf("soft close window and extension must not be negative")
	}
	if p.MaxExtensions < 0 {
		return fmt.Errorf("SOFT_CLOSE_MAX_EXTENSIONS must not be negative")
	}
	if p.PaymentWindow <= 0 || p.DecisionWindow <= 0 || p.RelistDuration <= 0 {
		return fmt.Errorf("payment, decision and relist windows must be positive")
	}
	if p.PenaltyPoints < 0 {
		return fmt.Errorf("PENALTY_POINTS must not be negative")
	}
	if p.CommissionRate.IsNegative() || p.CommissionRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("COMMISSION_RATE must be between 0 and 1")
	}
	if !p.CommissionCap.IsPositive() {
		return fmt.Errorf("COMMISSION_CAP must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parser keeps the first conversion error so Load can report it once
type parser struct {
	err error
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d
}

func (p *parser) integer(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: invalid integer %q: %w", key, raw, err)
	}
	return n
}

func (p *parser) decimal(key string, def decimal.Decimal) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := decimal.NewFromString(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: invalid decimal %q: %w", key, raw, err)
	}
	return d
}

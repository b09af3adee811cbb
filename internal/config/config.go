package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Email     EmailConfig     `yaml:"email"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Booking   BookingConfig   `yaml:"booking"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode)
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// AuthConfig contains JWT verification settings
type AuthConfig struct {
	Secret string `yaml:"secret"`
	// AdminUserIDs are the arbitrators allowed to resolve disputes.
	AdminUserIDs []string `yaml:"admin_user_ids"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// PricingConfig contains marketplace pricing settings
type PricingConfig struct {
	// PlatformFeeBps is the marketplace fee in basis points of the subtotal.
	PlatformFeeBps int64 `yaml:"platform_fee_bps"`
	// ShowFeeToRenter controls whether the fee appears as a line item in
	// renter-facing quotes. The fee is charged either way.
	ShowFeeToRenter bool `yaml:"show_fee_to_renter"`
}

// BookingConfig contains booking-flow settings
type BookingConfig struct {
	// PickupHourUTC is the hour of day date-only booking inputs are
	// normalized to.
	PickupHourUTC int `yaml:"pickup_hour_utc"`
	// PendingExpiryHours is how long a request may sit unapproved before
	// the expiry job cancels it and frees the dates. Zero disables expiry.
	PendingExpiryHours int `yaml:"pending_expiry_hours"`
}

// SchedulerConfig contains cron job settings
type SchedulerConfig struct {
	Enabled              bool   `yaml:"enabled"`
	ExpirySchedule       string `yaml:"expiry_schedule"`
	ReminderSchedule     string `yaml:"reminder_schedule"`
	StatsRefreshSchedule string `yaml:"stats_refresh_schedule"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}

	// Auth
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.Secret = val
	}
	if val := os.Getenv("ADMIN_USER_IDS"); val != "" {
		c.Auth.AdminUserIDs = c.Auth.AdminUserIDs[:0]
		for _, id := range strings.Split(val, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.Auth.AdminUserIDs = append(c.Auth.AdminUserIDs, id)
			}
		}
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Pricing
	if val := os.Getenv("PLATFORM_FEE_BPS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Pricing.PlatformFeeBps)
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Pricing.PlatformFeeBps == 0 {
		c.Pricing.PlatformFeeBps = 1500
	}
	if c.Booking.PickupHourUTC == 0 {
		c.Booking.PickupHourUTC = 10
	}
	if c.Scheduler.ExpirySchedule == "" {
		c.Scheduler.ExpirySchedule = "0 */15 * * * *"
	}
	if c.Scheduler.ReminderSchedule == "" {
		c.Scheduler.ReminderSchedule = "0 0 9 * * *"
	}
	if c.Scheduler.StatsRefreshSchedule == "" {
		c.Scheduler.StatsRefreshSchedule = "0 30 4 * * *"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required")
	}

	if c.Pricing.PlatformFeeBps < 0 || c.Pricing.PlatformFeeBps > 10000 {
		return fmt.Errorf("platform fee must be between 0 and 10000 bps, got %d", c.Pricing.PlatformFeeBps)
	}
	if c.Booking.PickupHourUTC < 0 || c.Booking.PickupHourUTC > 23 {
		return fmt.Errorf("invalid pickup hour: %d", c.Booking.PickupHourUTC)
	}

	return nil
}

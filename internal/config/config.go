package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Google    GoogleConfig    `yaml:"google"`
	Stripe    StripeConfig    `yaml:"stripe"`
	Email     EmailConfig     `yaml:"email"`
	Storage   StorageConfig   `yaml:"storage"`
	Platform  PlatformConfig  `yaml:"platform"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	BaseURL string `yaml:"base_url"` // public URL, used for OAuth redirects and upload URLs
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

// SessionConfig contains session cookie settings
type SessionConfig struct {
	Secret       string `yaml:"secret"`
	CookieName   string `yaml:"cookie_name"`
	TTLHours     int    `yaml:"ttl_hours"`
	SecureCookie bool   `yaml:"secure_cookie"`
}

// GoogleConfig contains the OAuth client settings
type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// StripeConfig contains payments provider settings
type StripeConfig struct {
	SecretKey string `yaml:"secret_key"`
	Currency  string `yaml:"currency"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	APIKey   string `yaml:"api_key"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
	Enabled  bool   `yaml:"enabled"`
}

// StorageConfig contains image storage settings
type StorageConfig struct {
	Type      string `yaml:"type"`       // "mock" is the only backend for now
	UploadDir string `yaml:"upload_dir"` // local directory for mock storage
}

// PlatformConfig contains marketplace economics and role seeding
type PlatformConfig struct {
	FeePercent  int      `yaml:"fee_percent"` // platform cut of each booking
	AdminEmails []string `yaml:"admin_emails"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings (six-field specs, seconds first)
type SchedulerConfig struct {
	ProcessPayouts string `yaml:"process_payouts"`
	SyncCalendars  string `yaml:"sync_calendars"`
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
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

	if val := os.Getenv("SESSION_SECRET"); val != "" {
		c.Session.Secret = val
	}
	if val := os.Getenv("GOOGLE_CLIENT_ID"); val != "" {
		c.Google.ClientID = val
	}
	if val := os.Getenv("GOOGLE_CLIENT_SECRET"); val != "" {
		c.Google.ClientSecret = val
	}
	if val := os.Getenv("GOOGLE_REDIRECT_URL"); val != "" {
		c.Google.RedirectURL = val
	}
	if val := os.Getenv("STRIPE_SECRET_KEY"); val != "" {
		c.Stripe.SecretKey = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}

	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("BASE_URL"); val != "" {
		c.Server.BaseURL = val
	}

	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
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

	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("session secret must be at least 32 characters")
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "sid"
	}
	if c.Session.TTLHours == 0 {
		c.Session.TTLHours = 24 * 7 // 1 week, matching the original cookie TTL
	}

	if c.Google.ClientID == "" || c.Google.ClientSecret == "" {
		return fmt.Errorf("google OAuth client credentials are required")
	}
	if c.Google.RedirectURL == "" {
		c.Google.RedirectURL = c.Server.BaseURL + "/auth/google/callback"
	}

	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("stripe secret key is required")
	}
	if c.Stripe.Currency == "" {
		c.Stripe.Currency = "eur"
	}

	if c.Storage.Type == "" {
		c.Storage.Type = "mock"
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "./uploads"
	}

	if c.Platform.FeePercent == 0 {
		c.Platform.FeePercent = 10
	}
	if c.Platform.FeePercent < 0 || c.Platform.FeePercent >= 100 {
		return fmt.Errorf("invalid platform fee percent: %d", c.Platform.FeePercent)
	}

	// Scheduler defaults
	if c.Scheduler.ProcessPayouts == "" {
		c.Scheduler.ProcessPayouts = "0 0 */6 * * *" // every 6 hours
	}
	if c.Scheduler.SyncCalendars == "" {
		c.Scheduler.SyncCalendars = "0 30 1 * * *" // 1:30 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

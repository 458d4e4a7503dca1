package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig    `envconfig:"SERVER"`
	Database  DatabaseConfig  `envconfig:"DB"`
	Redis     RedisConfig     `envconfig:"REDIS"`
	JWT       JWTConfig       `envconfig:"JWT"`
	Storage   StorageConfig   `envconfig:"STORAGE"`
	AI        AIConfig        `envconfig:"AI"`
	Resolver  ResolverConfig  `envconfig:"RESOLVER"`
	Scheduler SchedulerConfig `envconfig:"SCHEDULER"`
	Log       LogConfig       `envconfig:"LOG"`
	Webhook   WebhookConfig   `envconfig:"WEBHOOK"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `split_words:"true" default:"8080"`
	Host            string        `split_words:"true" default:"0.0.0.0"`
	Environment     string        `split_words:"true" default:"development"`
	AllowedOrigins  []string      `split_words:"true" default:"http://localhost:3000"`
	ShutdownTimeout int           `split_words:"true" default:"10"`
	RequestTimeout  time.Duration `split_words:"true" default:"120s"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver      string `split_words:"true" default:"postgres"` // "postgres" or "sqlite"
	Host        string `split_words:"true" default:"localhost"`
	Port        string `split_words:"true" default:"5432"`
	User        string `split_words:"true" default:"postgres"`
	Password    string `split_words:"true" default:"postgres"`
	Name        string `split_words:"true" default:"meeting_minutes"`
	SSLMode     string `split_words:"true" default:"disable"`
	Path        string `split_words:"true" default:"meeting_minutes.db"` // sqlite file
	MaxConns    int    `split_words:"true" default:"25"`
	MinConns    int    `split_words:"true" default:"5"`
	AutoMigrate bool   `split_words:"true" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool          `split_words:"true" default:"false"`
	Host     string        `split_words:"true" default:"localhost"`
	Port     string        `split_words:"true" default:"6379"`
	Password string        `split_words:"true"`
	DB       int           `split_words:"true" default:"0"`
	CacheTTL time.Duration `split_words:"true" default:"5m"`
}

// JWTConfig holds JWT configuration for admin tokens
type JWTConfig struct {
	AccessSecret string        `split_words:"true" default:"your-access-secret-change-in-production"`
	AccessExpiry time.Duration `split_words:"true" default:"24h"`
	Issuer       string        `split_words:"true" default:"meeting-minutes"`
}

// StorageConfig holds transcript archive configuration
type StorageConfig struct {
	Enabled         bool   `split_words:"true" default:"false"`
	Endpoint        string `split_words:"true" default:"localhost:9000"`
	AccessKeyID     string `split_words:"true" default:"minioadmin"`
	SecretAccessKey string `split_words:"true" default:"minioadmin"`
	BucketName      string `split_words:"true" default:"meeting-minutes"`
	UseSSL          bool   `split_words:"true" default:"false"`
	PublicURL       string `split_words:"true"`
}

// AIConfig holds generator configuration
type AIConfig struct {
	Provider          string        `split_words:"true" default:"groq"` // "groq" or "anthropic"
	APIKey            string        `split_words:"true"`
	BaseURL           string        `split_words:"true" default:"https://api.groq.com/openai/v1"`
	Model             string        `split_words:"true" default:"llama-3.1-8b-instant"`
	RequestsPerSecond float64       `split_words:"true" default:"2"`
	Timeout           time.Duration `split_words:"true" default:"30s"`
	MaxRetries        int           `split_words:"true" default:"3"`
}

// ResolverConfig holds entity resolution tuning
type ResolverConfig struct {
	ConfigFile        string  `split_words:"true"`
	Threshold         float64 `split_words:"true" default:"0.8"`
	SuggestionFloor   float64 `split_words:"true" default:"0.6"`
	SuggestionLimit   int     `split_words:"true" default:"10"`
	KnownEntityWindow int     `split_words:"true" default:"1000"`
}

// SchedulerConfig holds background job configuration
type SchedulerConfig struct {
	MergeScanCron string `split_words:"true" default:"0 */6 * * *"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level      string `split_words:"true" default:"info"`
	Format     string `split_words:"true" default:"json"` // "json" or "console"
	File       string `split_words:"true"`
	MaxSizeMB  int    `split_words:"true" default:"100"`
	MaxBackups int    `split_words:"true" default:"5"`
	MaxAgeDays int    `split_words:"true" default:"30"`
}

// WebhookConfig holds the shared secret for signed transcript ingestion
type WebhookConfig struct {
	Secret string `split_words:"true"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Database.Driver)
	}
	switch c.AI.Provider {
	case "groq", "anthropic":
	default:
		return fmt.Errorf("AI_PROVIDER must be groq or anthropic, got %q", c.AI.Provider)
	}
	if c.Resolver.Threshold <= 0 || c.Resolver.Threshold > 1 {
		return fmt.Errorf("RESOLVER_THRESHOLD must be in (0, 1]")
	}
	if c.Resolver.SuggestionFloor < 0 || c.Resolver.SuggestionFloor >= c.Resolver.Threshold {
		return fmt.Errorf("RESOLVER_SUGGESTION_FLOOR must be in [0, RESOLVER_THRESHOLD)")
	}
	if c.Server.Environment == "production" && c.JWT.AccessSecret == "your-access-secret-change-in-production" {
		return fmt.Errorf("JWT_ACCESS_SECRET must be set in production")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.Path
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

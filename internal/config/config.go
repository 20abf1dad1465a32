package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Business  BusinessConfig  `mapstructure:"business"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	Env          string        `mapstructure:"env"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	// TxTimeout bounds every write transaction, including lock waits.
	TxTimeout time.Duration `mapstructure:"tx_timeout"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SchedulerConfig struct {
	SweepSchedule string        `mapstructure:"sweep_schedule"`
	SweepTimeout  time.Duration `mapstructure:"sweep_timeout"`
	LockTTL       time.Duration `mapstructure:"lock_ttl"`
	Timezone      string        `mapstructure:"timezone"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type StorageConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	AccessKey string        `mapstructure:"access_key"`
	SecretKey string        `mapstructure:"secret_key"`
	Bucket    string        `mapstructure:"bucket"`
	Region    string        `mapstructure:"region"`
	UseSSL    bool          `mapstructure:"use_ssl"`
	URLExpiry time.Duration `mapstructure:"url_expiry"`
}

type BusinessConfig struct {
	DefaultCurrency string        `mapstructure:"default_currency"`
	IdempotencyTTL  time.Duration `mapstructure:"idempotency_ttl"`
}

type HealthConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

var defaults = map[string]interface{}{
	"server.port":                "8080",
	"server.host":                "0.0.0.0",
	"server.env":                 "development",
	"server.read_timeout":        "15s",
	"server.write_timeout":       "15s",
	"database.url":               "",
	"database.max_open_conns":    25,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": "5m",
	"database.tx_timeout":        "5s",
	"redis.host":                 "localhost",
	"redis.port":                 "6379",
	"redis.password":             "",
	"redis.db":                   0,
	"scheduler.sweep_schedule":   "@every 1m",
	"scheduler.sweep_timeout":    "30s",
	"scheduler.lock_ttl":         "50s",
	"scheduler.timezone":         "Asia/Kolkata",
	"logging.level":              "info",
	"logging.format":             "json",
	"auth.jwt_secret":            "",
	"auth.issuer":                "invoice-marketplace",
	"storage.endpoint":           "",
	"storage.access_key":         "",
	"storage.secret_key":         "",
	"storage.bucket":             "invoice-documents",
	"storage.region":             "us-east-1",
	"storage.use_ssl":            false,
	"storage.url_expiry":         "15m",
	"business.default_currency":  "INR",
	"business.idempotency_ttl":   "24h",
	"health.timeout":             "5s",
}

// Load reads configuration from environment variables and optional .env files.
// Environment keys are the upper-cased key paths, e.g. DATABASE_URL or SCHEDULER_SWEEP_SCHEDULE.
func Load() (*Config, error) {
	// Don't fail if .env files don't exist; real environment variables win.
	_ = godotenv.Load(".env")
	_ = godotenv.Load("deployments/.env")

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Database.TxTimeout <= 0 {
		return fmt.Errorf("DATABASE_TX_TIMEOUT must be greater than 0")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	if len(c.Business.DefaultCurrency) != 3 {
		return fmt.Errorf("BUSINESS_DEFAULT_CURRENCY must be a 3-letter code")
	}

	if _, err := cron.ParseStandard(c.Scheduler.SweepSchedule); err != nil {
		return fmt.Errorf("SCHEDULER_SWEEP_SCHEDULE must be a valid cron schedule: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid IANA zone: %w", err)
	}

	if c.Scheduler.SweepTimeout <= 0 {
		return fmt.Errorf("SCHEDULER_SWEEP_TIMEOUT must be greater than 0")
	}

	if c.Health.Timeout <= 0 {
		return fmt.Errorf("HEALTH_TIMEOUT must be greater than 0")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// StorageEnabled reports whether document URLs can be issued
func (c *Config) StorageEnabled() bool {
	return c.Storage.Endpoint != ""
}

// RedisAddr returns host:port for the Redis client
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// Location returns the scheduler time zone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

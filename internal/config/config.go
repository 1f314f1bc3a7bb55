package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	App      AppConfig      `envPrefix:"APP_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	JWT      JWTConfig      `envPrefix:"JWT_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Delay    DelayConfig    `envPrefix:"DELAY_"`
	Cron     CronConfig     `envPrefix:"CRON_"`
	CORS     CORSConfig     `envPrefix:"CORS_"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// Locale drives employee name collation in reports.
	Locale string `env:"LOCALE" envDefault:"it"`
	// Timezone interprets roster times that carry no offset.
	Timezone string `env:"TIMEZONE" envDefault:"Europe/Rome"`
}

type DatabaseConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"timesheet"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`
	MaxConns int32  `env:"MAX_CONNS" envDefault:"25"`
	MinConns int32  `env:"MIN_CONNS" envDefault:"5"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string `env:"SECRET_KEY"`
	AccessExpiration string `env:"ACCESS_EXPIRATION_TIME" envDefault:"1h"`
}

// RedisConfig configures the location name cache. An empty Addr disables it.
type RedisConfig struct {
	Addr        string        `env:"ADDR"`
	Password    string        `env:"PASSWORD"`
	DB          int           `env:"DB" envDefault:"0"`
	LocationTTL time.Duration `env:"LOCATION_TTL" envDefault:"10m"`
}

// DelayConfig is the rounding policy used when a company has none stored.
type DelayConfig struct {
	RoundToMinutes int    `env:"ROUND_TO_MINUTES" envDefault:"15"`
	Direction      string `env:"ROUNDING_DIRECTION" envDefault:"ceiling"`
}

type CronConfig struct {
	Enabled             bool          `env:"ENABLED" envDefault:"true"`
	DelayRepairInterval time.Duration `env:"DELAY_REPAIR_INTERVAL" envDefault:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, fmt.Errorf("invalid environment: %w", aggErr.Errors[0])
		}
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Delay.RoundToMinutes <= 0 {
		return fmt.Errorf("DELAY_ROUND_TO_MINUTES must be positive")
	}
	switch timesheet.RoundingDirection(c.Delay.Direction) {
	case timesheet.RoundCeiling, timesheet.RoundFloor:
	default:
		return fmt.Errorf("DELAY_ROUNDING_DIRECTION must be ceiling or floor")
	}
	if c.Cron.DelayRepairInterval <= 0 {
		return fmt.Errorf("CRON_DELAY_REPAIR_INTERVAL must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Locale(); err != nil {
		return err
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return loc, nil
}

func (c *Config) Locale() (language.Tag, error) {
	tag, err := language.Parse(c.App.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid APP_LOCALE: %w", err)
	}
	return tag, nil
}

func (c *Config) DefaultDelayRounding() timesheet.DelayRounding {
	return timesheet.DelayRounding{
		RoundToMinutes: c.Delay.RoundToMinutes,
		Direction:      timesheet.RoundingDirection(c.Delay.Direction),
	}
}

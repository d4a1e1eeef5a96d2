package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig
	DB        DatabaseConfig
	Logger    LoggerConfig
	RateLimit RateLimitConfig `validate:"-"`
	Redis     RedisConfig     `validate:"-"`
}

// AppConfig holds configuration for the HTTP server
type AppConfig struct {
	Port                   int    `mapstructure:"PORT" validate:"required,min=1,max=65535"`
	Environment            string `mapstructure:"APP_ENV"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" validate:"min=1"`
	CORSEnabled            bool   `mapstructure:"CORS_ENABLED"`
}

// DatabaseConfig holds configuration for the PostgreSQL connection pool
type DatabaseConfig struct {
	Host     string `mapstructure:"POSTGRES_HOST" validate:"required"`
	Port     int    `mapstructure:"POSTGRES_PORT" validate:"required,min=1,max=65535"`
	User     string `mapstructure:"POSTGRES_USER" validate:"required"`
	Password string `mapstructure:"POSTGRES_PASSWORD" validate:"required"`
	Name     string `mapstructure:"POSTGRES_DB" validate:"required"`
	SSLMode  string `mapstructure:"POSTGRES_SSLMODE" validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string  `mapstructure:"LOG_LEVEL"`
	Format           string  `mapstructure:"LOG_FORMAT" validate:"oneof=json console"`
	OutputPath       string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowQuerySeconds float64 `mapstructure:"LOG_SLOW_QUERY_SECONDS" validate:"gte=0"`
	EnableSampling   bool    `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName      string  `mapstructure:"SERVICE_NAME"`
	ServiceVersion   string  `mapstructure:"SERVICE_VERSION"`
}

// RateLimitConfig holds configuration for the per-client rate limiter
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `mapstructure:"RATE_LIMIT_REQUESTS_PER_SECOND" validate:"gt=0"`
	BurstCapacity     int     `mapstructure:"RATE_LIMIT_BURST_CAPACITY" validate:"min=1"`
}

// RedisConfig holds configuration for the Redis backing the rate limiter
type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST" validate:"required"`
	Port     string `mapstructure:"REDIS_PORT" validate:"required,numeric"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" validate:"min=0"`
}

// LoadConfig reads configuration from an optional app.env in path and
// from environment variables, which take precedence.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config

	config.App.Port = v.GetInt("PORT")
	config.App.Environment = v.GetString("APP_ENV")
	config.App.ShutdownTimeoutSeconds = v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")
	config.App.CORSEnabled = v.GetBool("CORS_ENABLED")

	config.DB.Host = v.GetString("POSTGRES_HOST")
	config.DB.Port = v.GetInt("POSTGRES_PORT")
	config.DB.User = v.GetString("POSTGRES_USER")
	config.DB.Password = v.GetString("POSTGRES_PASSWORD")
	config.DB.Name = v.GetString("POSTGRES_DB")
	config.DB.SSLMode = v.GetString("POSTGRES_SSLMODE")

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = v.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	config.RateLimit.Enabled = v.GetBool("RATE_LIMIT_ENABLED")
	config.RateLimit.RequestsPerSecond = v.GetFloat64("RATE_LIMIT_REQUESTS_PER_SECOND")
	config.RateLimit.BurstCapacity = v.GetInt("RATE_LIMIT_BURST_CAPACITY")

	config.Redis.Host = v.GetString("REDIS_HOST")
	config.Redis.Port = v.GetString("REDIS_PORT")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("CORS_ENABLED", true)

	v.SetDefault("POSTGRES_HOST", "postgres")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	// Logger defaults
	if v.GetString("APP_ENV") == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stdout")
	v.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	v.SetDefault("SERVICE_NAME", "users-api")
	v.SetDefault("SERVICE_VERSION", "1.0.0")

	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_REQUESTS_PER_SECOND", 10.0)
	v.SetDefault("RATE_LIMIT_BURST_CAPACITY", 20)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
}

// Validate checks the configuration and reports every invalid field by
// its environment variable name. Rate limit and Redis settings are only
// checked when rate limiting is enabled.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})

	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	if c.RateLimit.Enabled {
		if err := validate.Struct(c.RateLimit); err != nil {
			return formatValidationError(err)
		}
		if err := validate.Struct(c.Redis); err != nil {
			return formatValidationError(err)
		}
	}

	return nil
}

// formatValidationError converts validator.ValidationErrors into a human-readable error message.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "min", "gte":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", e.Field(), e.Param()))
		case "gt":
			messages = append(messages, fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, ", "))
}

// DSN returns the PostgreSQL keyword/value connection string. Every value is
// quoted so spaces, quotes and backslashes reach the driver unchanged.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		quoteDSNValue(c.Host), quoteDSNValue(c.User), quoteDSNValue(c.Password),
		quoteDSNValue(c.Name), c.Port, quoteDSNValue(c.SSLMode))
}

var dsnValueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	return "'" + dsnValueEscaper.Replace(v) + "'"
}

// Addr returns the listen address for the HTTP server
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

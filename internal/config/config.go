package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"retail-sales-api/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Query    QueryConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port             string `validate:"required,numeric"`
	Host             string
	Environment      string        `validate:"oneof=development production testing"`
	ReadTimeout      time.Duration `validate:"gt=0"`
	WriteTimeout     time.Duration `validate:"gt=0"`
	ShutdownTimeout  time.Duration `validate:"gt=0"`
	CORSAllowOrigins []string      `validate:"min=1"`
}

type DatabaseConfig struct {
	Driver          string `validate:"oneof=postgres sqlite"`
	Host            string `validate:"required_if=Driver postgres"`
	Port            string
	User            string
	Password        string
	Name            string `validate:"required_if=Driver postgres"`
	SSLMode         string
	Path            string `validate:"required_if=Driver sqlite"`
	MaxConnections  int    `validate:"gte=1"`
	MaxIdleConns    int    `validate:"gte=0"`
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	MigrationsPath  string
	SeedDatabase    bool
	SeedsPath       string
}

// QueryConfig bounds the listing and export reads
type QueryConfig struct {
	DefaultLimit int `validate:"gte=1"`
	MaxLimit     int `validate:"gtefield=DefaultLimit"`
	ExportLimit  int `validate:"gte=1"`
}

type SecurityConfig struct {
	RateLimitPerSecond int `validate:"gte=1"`
	RateLimitBurst     int `validate:"gte=1"`
}

type LoggingConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"omitempty,oneof=json text"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 60*time.Second)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "retail_user")
	v.SetDefault("DB_PASSWORD", "retail_password")
	v.SetDefault("DB_NAME", "retail_sales")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_PATH", "retail_sales.db")
	v.SetDefault("DB_MAX_CONNECTIONS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("DB_MIGRATIONS_PATH", "db/migrations")
	v.SetDefault("SEED_DATABASE", false)
	v.SetDefault("DB_SEEDS_PATH", "db/seeds")

	v.SetDefault("QUERY_DEFAULT_LIMIT", 10)
	v.SetDefault("QUERY_MAX_LIMIT", 100)
	v.SetDefault("QUERY_EXPORT_LIMIT", 50000)

	v.SetDefault("RATE_LIMIT_PER_SECOND", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present, and APP_CONFIG may name a config
// file whose keys use the same names as the environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("APP_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	v.AutomaticEnv()

	config := &Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			Host:            v.GetString("SERVER_HOST"),
			Environment:     v.GetString("APP_ENV"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			Path:            v.GetString("DB_PATH"),
			MaxConnections:  v.GetInt("DB_MAX_CONNECTIONS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("AUTO_MIGRATE"),
			MigrationsPath:  v.GetString("DB_MIGRATIONS_PATH"),
			SeedDatabase:    v.GetBool("SEED_DATABASE"),
			SeedsPath:       v.GetString("DB_SEEDS_PATH"),
		},
		Query: QueryConfig{
			DefaultLimit: v.GetInt("QUERY_DEFAULT_LIMIT"),
			MaxLimit:     v.GetInt("QUERY_MAX_LIMIT"),
			ExportLimit:  v.GetInt("QUERY_EXPORT_LIMIT"),
		},
		Security: SecurityConfig{
			RateLimitPerSecond: v.GetInt("RATE_LIMIT_PER_SECOND"),
			RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}

	config.Server.CORSAllowOrigins = splitOrigins(v.GetString("CORS_ALLOW_ORIGINS"))

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the loaded values against their struct constraints
func (c *Config) Validate() error {
	if err := validation.NewValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// MigrationURL is the golang-migrate database URL for postgres
func (c *DatabaseConfig) MigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// SlogLevel maps the configured level name to a slog.Level
func (c *LoggingConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger. An explicit LOG_FORMAT wins; otherwise
// production logs JSON and every other environment logs text.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Logging.SlogLevel()}

	format := c.Logging.Format
	if format == "" {
		format = "text"
		if c.IsProduction() {
			format = "json"
		}
	}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// splitOrigins splits a comma separated origin list, defaulting to all origins
func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"menu-ordering/logger"
	"menu-ordering/store"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage store.Config
	Catalog CatalogConfig
	Log     logger.Config
	State   StateConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodySize     int64
}

// CatalogConfig locates the static menu asset. An empty AssetURL means the
// menu compiled into the binary.
type CatalogConfig struct {
	AssetURL     string
	FetchTimeout time.Duration
}

// StateConfig tunes the in-process state store
type StateConfig struct {
	HistorySize int
}

// Load reads configuration. Priority (highest to lowest):
//  1. Environment variables with MENU_ prefix (e.g. MENU_STORAGE_BACKEND)
//  2. .env file in the working directory
//  3. the config file at path, or ./config.yaml when path is empty
//  4. Built-in defaults
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("MENU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		HTTP: HTTPConfig{
			Addr:            v.GetString("http.addr"),
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
			MaxBodySize:     v.GetInt64("http.max_body_size"),
		},
		Storage: store.Config{
			Backend:     v.GetString("storage.backend"),
			PostgresDSN: v.GetString("storage.postgres_dsn"),
			Redis: store.RedisConfig{
				Addr:     v.GetString("storage.redis_addr"),
				Password: v.GetString("storage.redis_password"),
				DB:       v.GetInt("storage.redis_db"),
				Prefix:   v.GetString("storage.redis_prefix"),
			},
		},
		Catalog: CatalogConfig{
			AssetURL:     v.GetString("catalog.asset_url"),
			FetchTimeout: v.GetDuration("catalog.fetch_timeout"),
		},
		Log: logger.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		State: StateConfig{
			HistorySize: v.GetInt("state.history_size"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "menu-ordering"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8082"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = store.BackendMemory
	}
	if cfg.Storage.Redis.Addr == "" {
		cfg.Storage.Redis.Addr = "localhost:6379"
	}
	if cfg.Storage.Redis.Prefix == "" {
		cfg.Storage.Redis.Prefix = "menu:"
	}
	if cfg.Catalog.FetchTimeout == 0 {
		cfg.Catalog.FetchTimeout = 10 * time.Second
	}
	logDefaults := logger.DefaultConfig()
	if cfg.Log.Level == "" {
		cfg.Log.Level = logDefaults.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = logDefaults.Format
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = logDefaults.Output
	}
	if cfg.State.HistorySize == 0 {
		cfg.State.HistorySize = 25
	}
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case store.BackendMemory, store.BackendRedis:
	case store.BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("storage.postgres_dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	if c.State.HistorySize < 0 {
		return errors.New("state.history_size must be >= 0")
	}
	return nil
}

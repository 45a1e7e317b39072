package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port                  string `mapstructure:"port"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
}

func (s HTTPServer) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c HTTPClient) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Forex points at the exchangerate.host compatible provider.
type Forex struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type Store struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type Conversion struct {
	ReasonRequired bool `mapstructure:"reason_required"`
}

type Reasons struct {
	RefreshIntervalSec int   `mapstructure:"refresh_interval_sec"`
	CacheSize          int64 `mapstructure:"cache_size"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Forex      Forex      `mapstructure:"forex"`
	Store      Store      `mapstructure:"store"`
	Conversion Conversion `mapstructure:"conversion"`
	Reasons    Reasons    `mapstructure:"reasons"`
	Logging    Logging    `mapstructure:"logging"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

func (cfg *AppConfig) Validate() error {
	if strings.TrimSpace(cfg.Forex.APIKey) == "" {
		return errors.New("forex api key is required (FOREX_API_KEY)")
	}
	switch cfg.Store.Driver {
	case StoreDriverPostgres, StoreDriverSQLite:
	default:
		return fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
	return nil
}

// Init loads .env (if any), config.yaml (if any) and the environment.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load("config.yaml")
}

// Load reads configFile when it exists and overlays environment variables.
func Load(configFile string) (*AppConfig, error) {
	var cfg AppConfig
	v := viper.New()

	v.SetDefault("http_server.port", "5000")
	v.SetDefault("http_server.request_timeout_seconds", 15)
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("forex.base_url", "http://api.exchangerate.host")
	v.SetDefault("store.driver", StoreDriverPostgres)
	v.SetDefault("store.sqlite_path", "fxconvert.db")
	v.SetDefault("conversion.reason_required", false)
	v.SetDefault("reasons.refresh_interval_sec", 300)
	v.SetDefault("reasons.cache_size", 1024)
	v.SetDefault("logging.level", "info")

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_server.request_timeout_seconds", "HTTP_REQUEST_TIMEOUT_SECONDS")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// forex provider env vars
	_ = v.BindEnv("forex.base_url", "FOREX_BASE_URL")
	_ = v.BindEnv("forex.api_key", "FOREX_API_KEY")

	_ = v.BindEnv("store.driver", "STORE_DRIVER")
	_ = v.BindEnv("store.sqlite_path", "SQLITE_PATH")
	_ = v.BindEnv("conversion.reason_required", "CONVERSION_REASON_REQUIRED")
	_ = v.BindEnv("reasons.refresh_interval_sec", "REASONS_REFRESH_INTERVAL_SEC")
	_ = v.BindEnv("reasons.cache_size", "REASONS_CACHE_SIZE")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.Forex.BaseURL = strings.TrimSuffix(cfg.Forex.BaseURL, "/")
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))

	return &cfg, nil
}

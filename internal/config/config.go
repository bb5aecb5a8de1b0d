package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host       string
	Port       int
	CORSOrigin string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

type ReportConfig struct {
	MaxVehicles  int
	Workers      int
	MaxRangeDays int
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
	Report      ReportConfig
}

// Load reads the server configuration.
func Load() (*Config, error) {
	return load(true)
}

// LoadReporting reads the configuration for offline report generation, which
// never verifies access tokens.
func LoadReporting() (*Config, error) {
	return load(false)
}

func load(requireAuth bool) (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 7090)
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 100)
	v.SetDefault("REPORT_MAX_VEHICLES", 1000)
	v.SetDefault("REPORT_WORKERS", 4)
	v.SetDefault("REPORT_MAX_RANGE_DAYS", 366)

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:       v.GetString("HTTP_HOST"),
			Port:       v.GetInt("HTTP_PORT"),
			CORSOrigin: v.GetString("CORS_ORIGIN"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		RateLimit: RateLimitConfig{
			Window:      v.GetDuration("RATE_LIMIT_WINDOW"),
			MaxRequests: v.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		},
		Report: ReportConfig{
			MaxVehicles:  v.GetInt("REPORT_MAX_VEHICLES"),
			Workers:      v.GetInt("REPORT_WORKERS"),
			MaxRangeDays: v.GetInt("REPORT_MAX_RANGE_DAYS"),
		},
	}

	if cfg.Report.Workers <= 0 {
		cfg.Report.Workers = 1
	}

	if err := validate(cfg, requireAuth); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func validate(cfg *Config, requireAuth bool) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if requireAuth && cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.RateLimit.Window <= 0 || cfg.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW and RATE_LIMIT_MAX_REQUESTS must be positive")
	}
	if cfg.Report.MaxVehicles <= 0 {
		return fmt.Errorf("REPORT_MAX_VEHICLES must be positive")
	}
	return nil
}

// Package config loads service settings from a .env file, PORTFOLIO_*
// environment variables and an optional portfolio.yaml.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

// DefaultAdminPassword is the placeholder secret shipped for local setups.
const DefaultAdminPassword = "change-me"

type Config struct {
	HTTP struct {
		Addr            string
		MaxUploadMB     int64
		ShutdownTimeout time.Duration
	}
	DB struct {
		Driver string
		DSN    string
	}
	Admin struct {
		Password string
	}
	Session struct {
		TTL     time.Duration
		Backend string
	}
	Redis struct {
		Addr           string
		Password       string
		DB             int
		ConnectTimeout time.Duration
	}
	Media struct {
		BaseURL string
	}
	Upload struct {
		Dir   string
		Mount string
	}
	Log struct {
		Level  string
		Pretty bool
	}
	CORS struct {
		Origins []string
	}
	SeedSamples bool
}

// UsingDefaultPassword reports whether the admin secret was never changed.
func (c *Config) UsingDefaultPassword() bool {
	return c.Admin.Password == DefaultAdminPassword
}

// Load reads config from environment (PORTFOLIO_ prefix) and optional portfolio.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("portfolio")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read portfolio.yaml: %w", err)
		}
	}

	v.SetDefault("http.addr", ":4000")
	v.SetDefault("http.max_upload_mb", 10)
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "file:data.db?_pragma=busy_timeout(5000)")
	v.SetDefault("admin.password", DefaultAdminPassword)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.backend", "memory")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.connect_timeout", "10s")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.mount", "/uploads")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("cors.origins", "*")
	v.SetDefault("seed_samples", true)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.MaxUploadMB = v.GetInt64("http.max_upload_mb")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Admin.Password = v.GetString("admin.password")
	cfg.Session.Backend = strings.ToLower(v.GetString("session.backend"))
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.Media.BaseURL = strings.TrimRight(v.GetString("media.base_url"), "/")
	cfg.Upload.Dir = v.GetString("upload.dir")
	cfg.Upload.Mount = v.GetString("upload.mount")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Pretty = v.GetBool("log.pretty")
	cfg.CORS.Origins = splitList(v.GetString("cors.origins"))
	cfg.SeedSamples = v.GetBool("seed_samples")

	var err error
	if cfg.Session.TTL, err = parseDuration(v, "session.ttl"); err != nil {
		return nil, err
	}
	if cfg.HTTP.ShutdownTimeout, err = parseDuration(v, "http.shutdown_timeout"); err != nil {
		return nil, err
	}
	if cfg.Redis.ConnectTimeout, err = parseDuration(v, "redis.connect_timeout"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return fmt.Errorf("PORTFOLIO_DB_DRIVER must be sqlite3, mysql, or postgres, got %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("PORTFOLIO_DB_DSN is required")
	}
	if c.Admin.Password == "" {
		return fmt.Errorf("PORTFOLIO_ADMIN_PASSWORD must not be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("PORTFOLIO_SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	switch c.Session.Backend {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("PORTFOLIO_REDIS_ADDR is required when PORTFOLIO_SESSION_BACKEND=redis")
		}
	default:
		return fmt.Errorf("PORTFOLIO_SESSION_BACKEND must be memory or redis, got %q", c.Session.Backend)
	}
	if c.HTTP.MaxUploadMB <= 0 {
		return fmt.Errorf("PORTFOLIO_HTTP_MAX_UPLOAD_MB must be positive")
	}
	return nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		env := "PORTFOLIO_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		return 0, fmt.Errorf("invalid %s: %w", env, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"

	ReferenceSourceStatic = "static"
	ReferenceSourceLive   = "live"
)

// Config holds every runtime setting of the lead form service.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`

	// APIURL is the base URL of the backend that receives leads and serves reference lists.
	APIURL            string        `env:"API_URL"`
	ReferenceSource   string        `env:"REFERENCE_SOURCE" envDefault:"static"`
	FormVariant       string        `env:"FORM_VARIANT" envDefault:"product"`
	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`
	ReferenceCacheTTL time.Duration `env:"REFERENCE_CACHE_TTL" envDefault:"5m"`
	ErrorToastTTL     time.Duration `env:"ERROR_TOAST_TTL" envDefault:"5s"`
	FormIdleTTL       time.Duration `env:"FORM_IDLE_TTL" envDefault:"30m"`

	DatabaseURL      string        `env:"DATABASE_URL" envDefault:"leadform.db"`
	HistoryRetention time.Duration `env:"HISTORY_RETENTION" envDefault:"2160h"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-me-jwt-secret"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"12h"`

	RateLimit          string   `env:"RATE_LIMIT" envDefault:"30-M"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsPath string `env:"METRICS_PATH" envDefault:"/metrics"`
}

// LoadEnv loads the env files that exist, in order. Missing files are skipped.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

func Load() (*Config, error) {
	if _, err := LoadEnv([]string{".env", ".env.local"}); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	cfg.ReferenceSource = strings.ToLower(strings.TrimSpace(cfg.ReferenceSource))
	cfg.FormVariant = strings.ToLower(strings.TrimSpace(cfg.FormVariant))
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)

	origins := cfg.CORSAllowedOrigins[:0]
	for _, o := range cfg.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORSAllowedOrigins = origins

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.APIURL == "" {
		return fmt.Errorf("API_URL must be set")
	}
	if !strings.HasPrefix(cfg.APIURL, "http://") && !strings.HasPrefix(cfg.APIURL, "https://") {
		return fmt.Errorf("API_URL must be an http(s) URL, got %q", cfg.APIURL)
	}
	if cfg.ReferenceSource != ReferenceSourceStatic && cfg.ReferenceSource != ReferenceSourceLive {
		return fmt.Errorf("REFERENCE_SOURCE must be one of: static, live")
	}
	if cfg.FormVariant != "career" && cfg.FormVariant != "product" {
		return fmt.Errorf("FORM_VARIANT must be one of: career, product")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be in 1..65535")
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0")
	}
	if cfg.ReferenceCacheTTL < 0 {
		return fmt.Errorf("REFERENCE_CACHE_TTL must be >= 0")
	}
	if cfg.ErrorToastTTL <= 0 {
		return fmt.Errorf("ERROR_TOAST_TTL must be > 0")
	}
	if cfg.FormIdleTTL <= 0 {
		return fmt.Errorf("FORM_IDLE_TTL must be > 0")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.HistoryRetention <= 0 {
		return fmt.Errorf("HISTORY_RETENTION must be > 0")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

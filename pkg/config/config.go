package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Upstream UpstreamConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Log      LogConfig
	Export   ExportConfig
}

// UpstreamConfig points the gateway at the catalog API it fronts.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CacheConfig tunes the in-process course and lookup caches.
type CacheConfig struct {
	CourseTTL       time.Duration
	LookupTTL       time.Duration
	CleanupInterval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportConfig gates the catalog export endpoint.
type ExportConfig struct {
	Enabled  bool
	MaxPages int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Running without a .env file is fine; env vars still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 10*time.Second),
	}

	cfg.Cache = CacheConfig{
		CourseTTL:       parseDuration(v.GetString("COURSE_CACHE_TTL"), 30*time.Minute),
		LookupTTL:       parseDuration(v.GetString("LOOKUP_CACHE_TTL"), time.Hour),
		CleanupInterval: parseDuration(v.GetString("CACHE_CLEANUP_INTERVAL"), 10*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxPages := v.GetInt("EXPORT_MAX_PAGES")
	if maxPages <= 0 {
		maxPages = 100
	}
	cfg.Export = ExportConfig{
		Enabled:  v.GetBool("ENABLE_EXPORT"),
		MaxPages: maxPages,
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:8000")
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")

	v.SetDefault("COURSE_CACHE_TTL", "30m")
	v.SetDefault("LOOKUP_CACHE_TTL", "1h")
	v.SetDefault("CACHE_CLEANUP_INTERVAL", "10m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_EXPORT", true)
	v.SetDefault("EXPORT_MAX_PAGES", 100)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

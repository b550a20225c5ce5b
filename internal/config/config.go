package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DataSourceFile     = "file"
	DataSourcePostgres = "postgres"
)

type Config struct {
	Port      string
	DataDir   string
	StaticDir string
	StoreName string
	StoreURL  string

	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	DataSource  string
	DatabaseURL string
	RedisURL    string
	SessionTTL  time.Duration

	MetricsPort        string
	RateLimitPerMinute int
	WorkerCount        int

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:               v.GetString("PORT"),
		DataDir:            v.GetString("DATA_DIR"),
		StaticDir:          v.GetString("STATIC_DIR"),
		StoreName:          v.GetString("STORE_NAME"),
		StoreURL:           strings.TrimRight(v.GetString("STORE_URL"), "/"),
		GroqAPIKey:         v.GetString("GROQ_API_KEY"),
		GroqModel:          v.GetString("GROQ_MODEL"),
		GroqBaseURL:        v.GetString("GROQ_BASE_URL"),
		DataSource:         strings.ToLower(v.GetString("DATA_SOURCE")),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		RedisURL:           v.GetString("REDIS_URL"),
		SessionTTL:         v.GetDuration("SESSION_TTL"),
		MetricsPort:        v.GetString("METRICS_PORT"),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		WorkerCount:        v.GetInt("CRAWLER_WORKERS"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("STATIC_DIR", "./public")
	v.SetDefault("STORE_NAME", "diRavena")
	v.SetDefault("STORE_URL", "https://diravena.com")

	v.SetDefault("GROQ_API_KEY", "")
	v.SetDefault("GROQ_MODEL", "llama3-70b-8192")
	v.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")

	v.SetDefault("DATA_SOURCE", DataSourceFile)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("SESSION_TTL", "30m")

	v.SetDefault("METRICS_PORT", "9090")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("CRAWLER_WORKERS", 5)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

func validate(cfg *Config) error {
	if cfg.DataSource != DataSourceFile && cfg.DataSource != DataSourcePostgres {
		return fmt.Errorf("DATA_SOURCE must be 'file' or 'postgres', got: %s", cfg.DataSource)
	}
	if cfg.DataSource == DataSourcePostgres && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when DATA_SOURCE is 'postgres'")
	}
	if cfg.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative, got: %d", cfg.RateLimitPerMinute)
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ENV:"

type Config struct {
	Server      ServerConfig    `mapstructure:"server"`
	Log         LogConfig       `mapstructure:"log"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Redis       RedisConfig     `mapstructure:"redis"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Catalog     CatalogConfig   `mapstructure:"catalog"`
	Marketplace UpstreamConfig  `mapstructure:"marketplace"`
	Benchmark   UpstreamConfig  `mapstructure:"benchmark"`
	Classifier  ProviderConfig  `mapstructure:"classifier"`
	Analytics   AnalyticsConfig `mapstructure:"analytics"`
	Tracing     TracingConfig   `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
	// APIKeys are accepted in addition to the keys stored in the database.
	APIKeys []string `mapstructure:"api_keys"`
	// AllowedOrigins feeds the CORS middleware. Empty allows any origin.
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	Enabled   bool   `mapstructure:"enabled"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CatalogConfig struct {
	TTL                  time.Duration `mapstructure:"ttl"`
	BenchmarkTTL         time.Duration `mapstructure:"benchmark_ttl"`
	FlagshipsPerProvider int           `mapstructure:"flagships_per_provider"`
}

type UpstreamConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ProviderConfig describes an OpenAI-compatible chat endpoint.
type ProviderConfig struct {
	ID        string            `mapstructure:"id"`
	Type      string            `mapstructure:"type"`
	BaseURL   string            `mapstructure:"base_url"`
	APIKey    string            `mapstructure:"api_key"`
	Model     string            `mapstructure:"model"`
	MaxTokens int               `mapstructure:"max_tokens"`
	Timeout   time.Duration     `mapstructure:"timeout"`
	Headers   map[string]string `mapstructure:"headers"`
}

type AnalyticsConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	BufferSize    int           `mapstructure:"buffer_size"`
	BatchSize     int           `mapstructure:"batch_size"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// LoadConfig reads configuration from file or environment variables.
// CONFIG_FILE points at an explicit file; otherwise config.yaml is looked up
// in the working directory and ./config.
func LoadConfig() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	// Environment Variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	// Resolve secrets
	cfg.Marketplace.APIKey = resolveSecret(v, cfg.Marketplace.APIKey)
	cfg.Benchmark.APIKey = resolveSecret(v, cfg.Benchmark.APIKey)
	cfg.Classifier.APIKey = resolveSecret(v, cfg.Classifier.APIKey)
	cfg.Redis.Password = resolveSecret(v, cfg.Redis.Password)
	for i, k := range cfg.Server.APIKeys {
		cfg.Server.APIKeys[i] = resolveSecret(v, k)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.api_keys", []string{})
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("database.path", "autorouter.db")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "autorouter:")

	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("catalog.ttl", time.Hour)
	v.SetDefault("catalog.benchmark_ttl", 24*time.Hour)
	v.SetDefault("catalog.flagships_per_provider", 1)

	v.SetDefault("marketplace.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("marketplace.api_key", "ENV:OPENROUTER_API_KEY")
	v.SetDefault("marketplace.timeout", 30*time.Second)

	v.SetDefault("benchmark.base_url", "https://artificialanalysis.ai/api/v2")
	v.SetDefault("benchmark.api_key", "ENV:ARTIFICIAL_ANALYSIS_API_KEY")
	v.SetDefault("benchmark.timeout", 30*time.Second)

	v.SetDefault("classifier.id", "classifier")
	v.SetDefault("classifier.type", "openai")
	v.SetDefault("classifier.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("classifier.api_key", "ENV:OPENROUTER_API_KEY")
	v.SetDefault("classifier.model", "openai/gpt-4o-mini")
	v.SetDefault("classifier.max_tokens", 10)
	v.SetDefault("classifier.timeout", 30*time.Second)

	v.SetDefault("analytics.enabled", true)
	v.SetDefault("analytics.buffer_size", 1000)
	v.SetDefault("analytics.batch_size", 100)
	v.SetDefault("analytics.flush_interval", 5*time.Second)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "autorouter")
}

// resolveSecret expands "ENV:NAME" to the value of NAME. The process
// environment wins over anything viper loaded.
func resolveSecret(v *viper.Viper, value string) string {
	if !strings.HasPrefix(value, envPrefix) {
		return value
	}
	name := strings.TrimPrefix(value, envPrefix)
	if val := os.Getenv(name); val != "" {
		return val
	}
	return v.GetString(name)
}

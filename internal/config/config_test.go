package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	os.Clearenv()
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "test")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Env)
	assert.True(t, cfg.Redis.Enabled)

	assert.Equal(t, time.Hour, cfg.Catalog.TTL)
	assert.Equal(t, 24*time.Hour, cfg.Catalog.BenchmarkTTL)
	assert.Equal(t, 1, cfg.Catalog.FlagshipsPerProvider)
	assert.Equal(t, "openai", cfg.Classifier.Type)
	assert.Equal(t, 10, cfg.Classifier.MaxTokens)

	// unresolvable secrets come back empty rather than as "ENV:..."
	assert.Empty(t, cfg.Benchmark.APIKey)
	assert.Empty(t, cfg.Classifier.APIKey)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CATALOG_TTL", "15m")
	t.Setenv("CLASSIFIER_MODEL", "meta-llama/llama-3.1-8b-instruct")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Catalog.TTL)
	assert.Equal(t, "meta-llama/llama-3.1-8b-instruct", cfg.Classifier.Model)
	assert.Equal(t, "sk-or-test", cfg.Classifier.APIKey)
	assert.Equal(t, "sk-or-test", cfg.Marketplace.APIKey)
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("TEST_BENCH_KEY", "aa-12345")

	configContent := `
server:
  port: "7000"
  api_keys:
    - "static-key"
catalog:
  ttl: 30m
  flagships_per_provider: 2
benchmark:
  api_key: "ENV:TEST_BENCH_KEY"
classifier:
  base_url: "http://localhost:11434/v1"
  headers:
    X-Title: "autorouter"
`
	path := filepath.Join(t.TempDir(), "autorouter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configContent), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, []string{"static-key"}, cfg.Server.APIKeys)
	assert.Equal(t, 30*time.Minute, cfg.Catalog.TTL)
	assert.Equal(t, 2, cfg.Catalog.FlagshipsPerProvider)
	assert.Equal(t, "aa-12345", cfg.Benchmark.APIKey)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Classifier.BaseURL)
	assert.Equal(t, "autorouter", cfg.Classifier.Headers["x-title"])
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

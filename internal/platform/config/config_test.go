package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"en13813/internal/declaration"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 5*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, []string{"EN 13813"}, cfg.Registry.Scopes)
	assert.Equal(t, declaration.DefaultPolicy(), cfg.Rules.Policy())
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30, cfg.RateLimit.WritePerMinute)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("EN13813_ENV", "prod")
	t.Setenv("EN13813_KAFKA_BROKERS", " kafka-1:9092, kafka-2:9092,,kafka-1:9092")
	t.Setenv("EN13813_REGISTRY_TIMEOUT", "750ms")
	t.Setenv("EN13813_STRICT", "true")
	t.Setenv("EN13813_EXPIRY_HORIZON", "240h")
	t.Setenv("EN13813_RATELIMIT_DISABLED", "true")
	t.Setenv("EN13813_RATELIMIT_READ", "500")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 750*time.Millisecond, cfg.Registry.Timeout)
	assert.True(t, cfg.Rules.StrictClasses)
	assert.Equal(t, 10*24*time.Hour, cfg.Rules.Policy().ExpiryHorizon)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 500, cfg.RateLimit.ReadPerMinute)
}

func TestFromEnv_RejectsBadDuration(t *testing.T) {
	t.Setenv("EN13813_REGISTRY_TIMEOUT", "soon")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "EN13813_REGISTRY_TIMEOUT")
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	t.Run("file overrides base", func(t *testing.T) {
		path := write("rules.yaml", "strict_classes: true\nexpiry_horizon: 720h\n")
		rules, err := LoadRules(path, Rules{})
		require.NoError(t, err)
		assert.True(t, rules.StrictClasses)
		assert.Equal(t, 720*time.Hour, rules.ExpiryHorizon)
	})

	t.Run("absent keys keep base", func(t *testing.T) {
		path := write("partial.yaml", "strict_classes: true\n")
		rules, err := LoadRules(path, Rules{ExpiryHorizon: time.Hour})
		require.NoError(t, err)
		assert.Equal(t, time.Hour, rules.ExpiryHorizon)
	})

	t.Run("negative horizon rejected", func(t *testing.T) {
		path := write("negative.yaml", "expiry_horizon: -1h\n")
		_, err := LoadRules(path, Rules{})
		assert.ErrorContains(t, err, "must not be negative")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRules(filepath.Join(dir, "nope.yaml"), Rules{})
		assert.Error(t, err)
	})

	t.Run("rules file is picked up from the environment", func(t *testing.T) {
		t.Setenv("EN13813_RULES_FILE", write("env.yaml", "strict_classes: true\n"))
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.Rules.StrictClasses)
	})
}

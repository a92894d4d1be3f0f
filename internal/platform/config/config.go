package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"en13813/internal/declaration"
	pstrings "en13813/pkg/platform/strings"
)

// Server captures process level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string
	LogFormat   string

	Postgres  PostgresConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Registry  RegistryConfig
	RateLimit RateLimitConfig
	Rules     Rules
}

// PostgresConfig selects the declaration and recipe store. An empty URL keeps
// both stores in memory.
type PostgresConfig struct {
	URL          string
	MaxOpenConns int
}

// RedisConfig configures the notified-body cache. An empty URL selects the
// in-memory cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit sink. No brokers keeps audit events in memory.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RegistryConfig configures notified-body lookups. An empty URL disables the
// HTTP registry.
type RegistryConfig struct {
	URL      string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
	Scopes   []string
}

// RateLimitConfig sets per-client budgets per minute. Zero disables a class.
type RateLimitConfig struct {
	Enabled        bool
	ReadPerMinute  int
	WritePerMinute int
}

// Rules are the validation knobs loaded from the rules file.
type Rules struct {
	StrictClasses bool          `yaml:"strict_classes"`
	ExpiryHorizon time.Duration `yaml:"expiry_horizon"`
}

// Policy converts the rules into the validator's policy.
func (r Rules) Policy() declaration.Policy {
	p := declaration.DefaultPolicy()
	p.StrictClasses = r.StrictClasses
	if r.ExpiryHorizon > 0 {
		p.ExpiryHorizon = r.ExpiryHorizon
	}
	return p
}

// FromEnv builds a Server config from environment variables so main stays lean.
// EN13813_RULES_FILE, when set, names a YAML file whose values override the
// EN13813_STRICT and EN13813_EXPIRY_HORIZON variables.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:        getenv("EN13813_ADDR", ":8080"),
		Environment: getenv("EN13813_ENV", "dev"),
		LogLevel:    getenv("EN13813_LOG_LEVEL", "info"),
		LogFormat:   os.Getenv("EN13813_LOG_FORMAT"),
		Postgres: PostgresConfig{
			URL:          os.Getenv("EN13813_POSTGRES_URL"),
			MaxOpenConns: 10,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("EN13813_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: pstrings.SplitList(os.Getenv("EN13813_KAFKA_BROKERS")),
			Topic:   getenv("EN13813_KAFKA_TOPIC", "en13813.audit"),
		},
		Registry: RegistryConfig{
			URL:    os.Getenv("EN13813_REGISTRY_URL"),
			APIKey: os.Getenv("EN13813_REGISTRY_API_KEY"),
			Scopes: []string{"EN 13813"},
		},
		RateLimit: RateLimitConfig{
			Enabled:        os.Getenv("EN13813_RATELIMIT_DISABLED") != "true",
			ReadPerMinute:  120,
			WritePerMinute: 30,
		},
	}

	var err error
	if cfg.Postgres.MaxOpenConns, err = intEnv("EN13813_POSTGRES_MAX_CONNS", cfg.Postgres.MaxOpenConns); err != nil {
		return Server{}, err
	}
	if cfg.RateLimit.ReadPerMinute, err = intEnv("EN13813_RATELIMIT_READ", cfg.RateLimit.ReadPerMinute); err != nil {
		return Server{}, err
	}
	if cfg.RateLimit.WritePerMinute, err = intEnv("EN13813_RATELIMIT_WRITE", cfg.RateLimit.WritePerMinute); err != nil {
		return Server{}, err
	}
	if cfg.Registry.Timeout, err = durationEnv("EN13813_REGISTRY_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Registry.CacheTTL, err = durationEnv("EN13813_REGISTRY_CACHE_TTL", 15*time.Minute); err != nil {
		return Server{}, err
	}
	if scopes := os.Getenv("EN13813_REGISTRY_SCOPES"); scopes != "" {
		cfg.Registry.Scopes = pstrings.SplitList(scopes)
	}
	cfg.Rules.StrictClasses = os.Getenv("EN13813_STRICT") == "true"
	if cfg.Rules.ExpiryHorizon, err = durationEnv("EN13813_EXPIRY_HORIZON", 0); err != nil {
		return Server{}, err
	}

	if path := os.Getenv("EN13813_RULES_FILE"); path != "" {
		rules, err := LoadRules(path, cfg.Rules)
		if err != nil {
			return Server{}, err
		}
		cfg.Rules = rules
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if cfg.Environment == "dev" {
			cfg.LogFormat = "text"
		}
	}
	return cfg, nil
}

// LoadRules reads a YAML rules file over base. Keys absent from the file keep
// their base value.
//
//	strict_classes: true
//	expiry_horizon: 720h
func LoadRules(path string, base Rules) (Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	rules := base
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if rules.ExpiryHorizon < 0 {
		return Rules{}, fmt.Errorf("rules file %s: expiry_horizon must not be negative", path)
	}
	return rules, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

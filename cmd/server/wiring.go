package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"

	"en13813/internal/audit"
	"en13813/internal/declaration/ports"
	declarationstore "en13813/internal/declaration/store"
	"en13813/internal/notifiedbody"
	nbmetrics "en13813/internal/notifiedbody/metrics"
	"en13813/internal/platform/config"
	"en13813/internal/platform/kafka"
	"en13813/internal/platform/postgres"
	"en13813/internal/platform/redis"
	"en13813/internal/ratelimit"
	"en13813/internal/recipe"
	httptransport "en13813/internal/transport/http"
	"en13813/pkg/platform/circuit"
)

const auditQueueSize = 1024

// infra holds the stores and clients chosen by configuration. Unset URLs fall
// back to in-memory implementations.
type infra struct {
	declarations ports.DeclarationStore
	recipes      recipe.Store
	transactor   ports.Transactor
	db           *sql.DB
	redis        *redis.Client
	kafka        *kgo.Client
	checks       map[string]httptransport.HealthCheck
}

func openInfra(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	in := &infra{checks: map[string]httptransport.HealthCheck{}}

	if cfg.Postgres.URL == "" {
		log.WarnContext(ctx, "postgres not configured, using in-memory stores")
		in.declarations = declarationstore.NewInMemoryStore()
		in.recipes = recipe.NewInMemoryStore()
	} else {
		db, err := postgres.Open(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxOpenConns: cfg.Postgres.MaxOpenConns})
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		in.db = db
		store := declarationstore.NewPostgres(db)
		in.declarations = store
		in.transactor = store
		in.recipes = recipe.NewPostgres(db)
		in.checks["postgres"] = db.PingContext
	}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		in.Close()
		return nil, err
	}
	if client != nil {
		in.redis = client
		in.checks["redis"] = client.Health
	}
	return in, nil
}

func (in *infra) Close() {
	if in.kafka != nil {
		in.kafka.Close()
	}
	if in.redis != nil {
		_ = in.redis.Close()
	}
	if in.db != nil {
		_ = in.db.Close()
	}
}

// newRegistry returns the cached, breaker-guarded HTTP registry, or nil when
// no registry URL is configured and notified-body lookups are skipped.
func newRegistry(cfg config.Server, in *infra, log *slog.Logger) notifiedbody.Registry {
	if cfg.Registry.URL == "" {
		return nil
	}
	m := nbmetrics.New()
	var client notifiedbody.Registry = notifiedbody.NewHTTPClient(cfg.Registry.URL, cfg.Registry.Timeout,
		notifiedbody.WithAPIKey(cfg.Registry.APIKey),
		notifiedbody.WithLogger(log),
		notifiedbody.WithMetrics(m),
	)
	client = notifiedbody.NewBreakerRegistry(client, circuit.New("notified-body-registry"), log)
	if in.redis != nil {
		return notifiedbody.NewCachedRegistry(client, notifiedbody.NewRedisCache(in.redis.Client, cfg.Registry.CacheTTL), "redis", log, m)
	}
	return notifiedbody.NewCachedRegistry(client, notifiedbody.NewInMemoryCache(cfg.Registry.CacheTTL), "memory", log, m)
}

// newAuditPipeline keeps events in memory, and additionally streams them to
// Kafka through a buffered worker when brokers are configured.
func newAuditPipeline(ctx context.Context, cfg config.Server, in *infra, log *slog.Logger) (*audit.Publisher, *audit.Worker, error) {
	memory := audit.NewInMemoryStore()
	if len(cfg.Kafka.Brokers) == 0 {
		return audit.NewPublisher(memory), nil, nil
	}

	kcfg := kafka.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic}
	client, err := kafka.NewClient(kcfg)
	if err != nil {
		return nil, nil, err
	}
	if err := kafka.EnsureTopic(ctx, client, kcfg); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("ensure audit topic: %w", err)
	}
	in.kafka = client
	queue := audit.NewQueue(auditQueueSize)
	worker := audit.NewWorker(audit.NewKafkaSink(client, cfg.Kafka.Topic), queue, log)
	return audit.NewPublisher(memory, queue), worker, nil
}

// newRateLimit returns the API middleware chain. Limits are shared through
// Redis when it is configured.
func newRateLimit(cfg config.Server, in *infra, log *slog.Logger) ([]func(http.Handler) http.Handler, error) {
	if !cfg.RateLimit.Enabled {
		log.Info("rate limiting disabled")
		return nil, nil
	}
	var store ratelimit.Store = ratelimit.NewInMemoryStore()
	if in.redis != nil {
		store = ratelimit.NewRedisStore(in.redis.Client)
	}
	limiter, err := ratelimit.New(store,
		ratelimit.WithLimits(ratelimit.Limits{
			Read:  ratelimit.Limit{Requests: cfg.RateLimit.ReadPerMinute, Window: time.Minute},
			Write: ratelimit.Limit{Requests: cfg.RateLimit.WritePerMinute, Window: time.Minute},
		}),
		ratelimit.WithLogger(log),
		ratelimit.WithRegisterer(prometheus.DefaultRegisterer),
	)
	if err != nil {
		return nil, err
	}
	return []func(http.Handler) http.Handler{limiter.Handler}, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	conformityhandler "en13813/internal/conformity/handler"
	conformitymetrics "en13813/internal/conformity/metrics"
	declarationhandler "en13813/internal/declaration/handler"
	declarationmetrics "en13813/internal/declaration/metrics"
	declarationservice "en13813/internal/declaration/service"
	"en13813/internal/designation"
	designationhandler "en13813/internal/designation/handler"
	"en13813/internal/platform/config"
	"en13813/internal/platform/httpserver"
	"en13813/internal/platform/logger"
	"en13813/internal/platform/metrics"
	"en13813/internal/recipe"
	recipehandler "en13813/internal/recipe/handler"
	httptransport "en13813/internal/transport/http"
)

const shutdownGrace = 10 * time.Second

// main wires the stores, the registry and the audit pipeline, then serves
// until SIGINT or SIGTERM.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer in.Close()

	codec := designation.New(designation.WithStrictMode(cfg.Rules.StrictClasses))
	publisher, auditWorker, err := newAuditPipeline(ctx, cfg, in, log)
	if err != nil {
		return err
	}

	recipes, err := recipe.NewService(in.recipes,
		recipe.WithCodec(codec),
		recipe.WithAuditPublisher(publisher),
		recipe.WithLogger(log),
	)
	if err != nil {
		return err
	}

	opts := []declarationservice.Option{
		declarationservice.WithLogger(log),
		declarationservice.WithAuditPublisher(publisher),
		declarationservice.WithMetrics(declarationmetrics.New()),
		declarationservice.WithPolicy(cfg.Rules.Policy()),
		declarationservice.WithLookupTimeout(cfg.Registry.Timeout),
		declarationservice.WithScopes(cfg.Registry.Scopes...),
	}
	if in.transactor != nil {
		opts = append(opts, declarationservice.WithTransactor(in.transactor))
	}
	if registry := newRegistry(cfg, in, log); registry != nil {
		opts = append(opts, declarationservice.WithRegistry(registry))
	}
	declarations, err := declarationservice.New(in.declarations, in.recipes, opts...)
	if err != nil {
		return err
	}

	apiMiddleware, err := newRateLimit(cfg, in, log)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:  log,
		Metrics: metrics.New(),
		Handlers: []httptransport.Registrar{
			designationhandler.New(codec, log),
			conformityhandler.New(log, conformitymetrics.New()),
			recipehandler.New(recipes, log),
			declarationhandler.New(declarations, log),
		},
		Checks:        in.checks,
		APIMiddleware: apiMiddleware,
	})
	srv := httpserver.New(cfg.Addr, router)

	log.InfoContext(ctx, "starting en13813",
		"addr", cfg.Addr,
		"env", cfg.Environment,
		"postgres", cfg.Postgres.URL != "",
		"redis", cfg.Redis.URL != "",
		"kafka", len(cfg.Kafka.Brokers) > 0,
		"registry", cfg.Registry.URL != "",
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, shutdownGrace, log)
	})
	if auditWorker != nil {
		g.Go(func() error {
			if err := auditWorker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

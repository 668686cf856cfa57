package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/modbridge/modbridge-backend/internal/config"
	"github.com/modbridge/modbridge-backend/internal/data/graph"
	"github.com/modbridge/modbridge-backend/internal/data/repos"
	"github.com/modbridge/modbridge-backend/internal/inference/engine"
	"github.com/modbridge/modbridge-backend/internal/inference/engine/mlconf"
	"github.com/modbridge/modbridge-backend/internal/inference/httpapi"
	"github.com/modbridge/modbridge-backend/internal/observability"
	"github.com/modbridge/modbridge-backend/internal/platform/logger"
	"github.com/modbridge/modbridge-backend/internal/platform/neo4jdb"
	"github.com/modbridge/modbridge-backend/internal/platform/postgresdb"
	"github.com/modbridge/modbridge-backend/internal/platform/redisdb"
)

const serviceName = "modbridge-inference"

type App struct {
	Log    *logger.Logger
	Cfg    config.Config
	Engine *engine.Engine
	Router *gin.Engine

	neo          *neo4jdb.Client
	rdb          *goredis.Client
	otelShutdown func(context.Context) error
}

// New wires the service. Postgres is required; the graph, cache and ML
// clients degrade to nil and the engine reports per-request infrastructure
// failures for whatever is missing.
func New(ctx context.Context) (*App, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	pg, err := postgresdb.NewFromEnv(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	db := pg.DB()

	neo, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Warn("neo4j unavailable, inference will report infrastructure failures", "error", err)
		neo = nil
	}

	rdb, err := redisdb.NewFromEnv(log)
	if err != nil {
		log.Warn("redis unavailable, running uncached", "error", err)
		rdb = nil
	}

	deps := engine.Deps{
		Concepts: repos.NewConceptRepo(db, log),
		Patterns: repos.NewConversionPatternRepo(db, log),
		Events:   repos.NewEventRepo(db, log),
		Log:      log,
	}
	if neo != nil {
		cg := graph.NewConversionGraph(neo, log)
		cg.InitSchema(ctx)
		deps.Graph = cg
		deps.Reinforce = cg
	}
	if rdb != nil {
		deps.Cache = redisdb.NewInferenceCache(rdb, log)
	}
	if model, err := mlconf.NewFromEnv(log); err != nil {
		log.Warn("ml confidence client init failed, continuing without", "error", err)
	} else if model != nil {
		deps.Model = model
	}

	eng := engine.New(cfg.Engine, deps)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		ServiceName:      serviceName,
		Log:              log,
		InferenceHandler: httpapi.NewInferenceHandler(eng, log),
		HealthHandler: httpapi.NewHealthHandler(func() bool {
			return neo != nil
		}),
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Engine:       eng,
		Router:       router,
		neo:          neo,
		rdb:          rdb,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    a.Cfg.HTTPAddr,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("http server listening", "addr", a.Cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.neo != nil {
		if err := a.neo.Close(ctx); err != nil {
			a.Log.Warn("neo4j close failed", "error", err)
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.Log.Warn("redis close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}

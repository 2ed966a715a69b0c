// Package bootstrap assembles the application service from configuration.
// Both the HTTP server and the CLI start from Open.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5/pgxpool"

	"fiduciary-books/internal/app"
	"fiduciary-books/internal/cache"
	"fiduciary-books/internal/config"
	"fiduciary-books/internal/core"
	"fiduciary-books/internal/db"
	"fiduciary-books/internal/memstore"
	"fiduciary-books/internal/metrics"
	"fiduciary-books/migrations"
)

// Runtime holds the wired service and the resources that must be released.
type Runtime struct {
	Service app.ApplicationService
	Metrics *metrics.Metrics
	// Migrate is nil for the in-memory store.
	Migrate func(ctx context.Context) error

	pool  *pgxpool.Pool
	cache *cache.Cache
}

// Open connects the configured store and view cache. With auto_migrate set,
// pending migrations run before the pool is opened.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Runtime, error) {
	rt := &Runtime{}

	var store core.Store
	switch cfg.Store.Driver {
	case config.DriverMemory:
		logger.Warn("using the in-memory store, data is lost on exit")
		store = memstore.New()
	default:
		migrationURL := cfg.MigrationURL()
		rt.Migrate = func(context.Context) error {
			return migrations.Up(migrationURL)
		}
		if cfg.Database.AutoMigrate {
			if err := rt.Migrate(ctx); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations applied")
		}
		pool, err := db.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		rt.pool = pool
		store = db.NewStore(pool)
	}

	rt.cache = cache.New(ctx, cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTL,
	}, logger.WithPrefix("cache"))

	if cfg.Metrics.Enabled {
		rt.Metrics = metrics.New()
	}

	rt.Service = app.NewAppService(store, app.Options{
		Cache:          rt.cache,
		Metrics:        rt.Metrics,
		Logger:         logger,
		DefaultVATRate: cfg.VAT.DefaultRate,
	})
	return rt, nil
}

// Close releases the cache connection and the database pool.
func (rt *Runtime) Close() {
	if rt.cache != nil {
		_ = rt.cache.Close()
	}
	if rt.pool != nil {
		rt.pool.Close()
	}
}

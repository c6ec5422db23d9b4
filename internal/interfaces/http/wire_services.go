package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appServices "github.com/orris-inc/docforge/internal/application/document/services"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/infrastructure/cache"
	"github.com/orris-inc/docforge/internal/infrastructure/config"
	"github.com/orris-inc/docforge/internal/infrastructure/email"
	"github.com/orris-inc/docforge/internal/infrastructure/pdf"
	"github.com/orris-inc/docforge/internal/infrastructure/ratelimit"
	"github.com/orris-inc/docforge/internal/infrastructure/scheduler"
	"github.com/orris-inc/docforge/internal/interfaces/http/handlers"
	"github.com/orris-inc/docforge/internal/interfaces/http/middleware"
	sharedConfig "github.com/orris-inc/docforge/internal/shared/config"
	"github.com/orris-inc/docforge/internal/shared/logger"
	"github.com/orris-inc/docforge/internal/shared/services/markdown"
)

// services holds the export pipeline and the other application services
// shared by several use cases.
type services struct {
	exportService *appServices.ExportService
	sessionStore  document.ExportSessionStore
	markdown      markdown.MarkdownService
	mailer        email.Mailer
}

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Middlewares
// ============================================================

// initInfrastructure connects Redis when something needs it, creates the
// repositories and the request middlewares.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	if needsRedis(cfg) {
		client, err := initRedis(&cfg.Redis, c.log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.repos = newRepositories(c.db, c.log)

	c.apiKey = middleware.NewAPIKeyMiddleware(cfg.API.KeyHashes, c.log)

	var limiter ratelimit.RateLimiter
	if c.redis != nil && cfg.API.RateLimit > 0 {
		limiter = ratelimit.NewRedisRateLimiter(c.redis)
	}
	c.rateLimiter = middleware.NewRateLimiter(limiter, cfg.API.RateLimit, cfg.API.RateWindow, c.log)

	return nil
}

func needsRedis(cfg *config.Config) bool {
	store := cfg.Export.SessionStore
	return store == "" || store == sharedConfig.SessionStoreRedis || cfg.API.RateLimit > 0
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *sharedConfig.RedisConfig, log logger.Interface) (*redis.Client, error) {
	client, err := cache.NewRedisClient(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.GetAddr())
	return client, nil
}

// ============================================================
// Section 2: Export pipeline
// ============================================================

func (c *Container) initServices() error {
	svcs, err := newServices(c.cfg, c.repos, c.redis, c.log)
	if err != nil {
		return err
	}
	c.svcs = svcs
	return nil
}

// newServices builds the export pipeline from configuration. client may be
// nil when the memory session store is selected.
func newServices(cfg *config.Config, repos *repositories, client *redis.Client, log logger.Interface) (*services, error) {
	assembler, err := pdf.NewFromConfig(&cfg.Export, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pdf assembler: %w", err)
	}

	branding, err := pdf.LoadBranding(&cfg.Branding)
	if err != nil {
		return nil, err
	}

	sessionStore, err := cache.NewSessionStore(&cfg.Export, client, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize export session store: %w", err)
	}

	publisher := appServices.NewArtifactPublisher(repos.artifactRepo, cfg.Export.DownloadBasePath, log)

	log.Infow("export pipeline initialized",
		"rasterizer", cfg.Export.Rasterizer,
		"session_store", cfg.Export.SessionStore,
		"branding_logo", branding.HasLogo())

	return &services{
		exportService: appServices.NewExportService(repos.templateRepo, assembler, publisher, branding, log),
		sessionStore:  sessionStore,
		markdown:      markdown.NewMarkdownService(),
		mailer:        email.NewMailer(&cfg.Email, log),
	}, nil
}

const defaultMaintenanceInterval = 10 * time.Minute

// initMaintenance registers the artifact retention purge and, for the
// memory session store, the expired session sweep. Redis expires its keys
// itself.
func (c *Container) initMaintenance() error {
	m, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	interval := c.cfg.Export.MaintenanceInterval
	if interval <= 0 {
		interval = defaultMaintenanceInterval
	}

	if retention := c.cfg.Export.ArtifactRetention; retention > 0 {
		job := appServices.NewArtifactRetention(c.repos.artifactRepo, retention, c.log)
		if err := m.RegisterBatchJob("artifact-retention", interval, time.Minute, job); err != nil {
			return err
		}
	}

	if store, ok := c.svcs.sessionStore.(*cache.MemorySessionStore); ok {
		if err := m.RegisterBatchJob("session-sweep", interval, 0, scheduler.BatchJobFunc(store.PurgeExpired)); err != nil {
			return err
		}
	}

	c.scheduler = m
	return nil
}

func (c *Container) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}
	return checks
}

func (c *Container) closeRedis() {
	if c.redis == nil {
		return
	}
	if err := c.redis.Close(); err != nil {
		c.log.Warnw("failed to close redis client", "error", err)
	}
}

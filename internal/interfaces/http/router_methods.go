package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/orris-inc/docforge/internal/interfaces/http/middleware"
	"github.com/orris-inc/docforge/internal/interfaces/http/routes"
	"github.com/orris-inc/docforge/internal/shared/constants"
	"github.com/orris-inc/docforge/internal/shared/goroutine"

	_ "github.com/orris-inc/docforge/docs"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.APIVersion())

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)
	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := c.engine.Group(constants.APIVersionPrefix)
	api.GET("/health", c.hdlrs.healthHandler.Health)

	routes.SetupDocumentRoutes(api, &routes.DocumentRouteConfig{
		TemplateHandler: c.hdlrs.templateHandler,
		VariableHandler: c.hdlrs.variableHandler,
		ExportHandler:   c.hdlrs.exportHandler,
		ArtifactHandler: c.hdlrs.artifactHandler,
		APIKey:          c.apiKey,
		RateLimiter:     c.rateLimiter,
	})
}

// GetEngine returns the Gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}

// Run serves HTTP on addr until ctx is cancelled, then drains in-flight
// requests for at most shutdownTimeout.
func (c *Container) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           c.engine,
		ReadHeaderTimeout: 10 * time.Second,
		// Must exceed export.timeout.
		WriteTimeout: c.cfg.Export.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	c.scheduler.Start()

	errCh := make(chan error, 1)
	goroutine.SafeGo(c.log, "http-server", func() {
		defer close(errCh)
		c.log.Infow("server starting", "address", addr, "mode", c.cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
	})

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	c.log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	c.log.Infow("server exited gracefully")
	return nil
}

// Shutdown stops the maintenance jobs and releases connections opened by
// the container. The database is owned by the caller.
func (c *Container) Shutdown() {
	if c.scheduler != nil {
		_ = c.scheduler.Stop()
	}
	c.closeRedis()
}

package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/docforge/internal/infrastructure/config"
	"github.com/orris-inc/docforge/internal/infrastructure/scheduler"
	"github.com/orris-inc/docforge/internal/interfaces/http/middleware"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// Container holds infrastructure components, repositories, use cases and
// handlers. It wires everything together and releases what it opened in
// Shutdown().
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Services
	svcs *services

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	apiKey      *middleware.APIKeyMiddleware
	rateLimiter *middleware.RateLimiter

	// Background maintenance, started by Run
	scheduler *scheduler.SchedulerManager
}

// NewContainer creates a Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Repositories, Middlewares
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Export pipeline - Assembler, Branding, Publisher, Sessions, Mail
	if err := c.initServices(); err != nil {
		c.closeRedis()
		return nil, err
	}

	if err := c.initMaintenance(); err != nil {
		c.closeRedis()
		return nil, err
	}

	// Section 3: Use cases and handlers
	c.ucs = newUseCases(c.repos, c.svcs, c.log)
	c.hdlrs = newHandlers(c.ucs, c.healthChecks(), c.log)

	return c, nil
}

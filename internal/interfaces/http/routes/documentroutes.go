package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/docforge/internal/interfaces/http/handlers"
	"github.com/orris-inc/docforge/internal/interfaces/http/middleware"
)

// DocumentRouteConfig holds dependencies for template, export and artifact routes.
type DocumentRouteConfig struct {
	TemplateHandler *handlers.TemplateHandler
	VariableHandler *handlers.VariableHandler
	ExportHandler   *handlers.ExportHandler
	ArtifactHandler *handlers.ArtifactHandler
	APIKey          *middleware.APIKeyMiddleware
	RateLimiter     *middleware.RateLimiter
}

// SetupDocumentRoutes registers the document API on group, which is
// expected to be mounted at the API version prefix.
func SetupDocumentRoutes(group *gin.RouterGroup, cfg *DocumentRouteConfig) {
	api := group.Group("")
	api.Use(cfg.APIKey.RequireAPIKey())

	limit := cfg.RateLimiter.Limit()

	templates := api.Group("/templates")
	{
		templates.GET("", cfg.TemplateHandler.ListTemplates)
		templates.POST("", cfg.TemplateHandler.CreateTemplate)
		templates.GET("/:id", cfg.TemplateHandler.GetTemplate)
		templates.PUT("/:id", cfg.TemplateHandler.UpdateTemplate)
		templates.DELETE("/:id", cfg.TemplateHandler.DeleteTemplate)

		templates.POST("/:id/duplicate", cfg.TemplateHandler.DuplicateTemplate)
		templates.POST("/:id/favorite", cfg.TemplateHandler.ToggleFavorite)
		templates.POST("/:id/archive", cfg.TemplateHandler.ArchiveTemplate)
		templates.POST("/:id/restore", cfg.TemplateHandler.RestoreTemplate)
		templates.POST("/:id/detect-variables", cfg.VariableHandler.DetectVariables)
		templates.GET("/:id/pdf", cfg.TemplateHandler.DownloadPDF)

		// Generation endpoints
		templates.POST("/:id/export", limit, cfg.ExportHandler.StartExport)
		templates.POST("/:id/generate-pdf", limit, cfg.ExportHandler.GeneratePDF)

		variables := templates.Group("/:id/variables")
		{
			variables.GET("", cfg.VariableHandler.ListVariables)
			variables.POST("", cfg.VariableHandler.CreateVariable)
			variables.GET("/:var_id", cfg.VariableHandler.GetVariable)
			variables.PUT("/:var_id", cfg.VariableHandler.UpdateVariable)
			variables.DELETE("/:var_id", cfg.VariableHandler.DeleteVariable)
		}
	}

	sessions := api.Group("/export-sessions")
	{
		sessions.GET("/:sid", cfg.ExportHandler.GetSession)
		sessions.PATCH("/:sid/lines", cfg.ExportHandler.SetValues)
		sessions.GET("/:sid/preview", cfg.ExportHandler.Preview)
		sessions.POST("/:sid/validate", cfg.ExportHandler.Validate)
		sessions.POST("/:sid/generate", limit, cfg.ExportHandler.Generate)
		sessions.DELETE("/:sid", cfg.ExportHandler.Discard)
	}

	artifacts := api.Group("/artifacts")
	{
		artifacts.POST("/:id/send", cfg.ArtifactHandler.Send)
		artifacts.GET("/:id/:filename", cfg.ArtifactHandler.Download)
	}
}

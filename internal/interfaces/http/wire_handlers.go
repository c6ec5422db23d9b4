package http

import (
	"github.com/orris-inc/docforge/internal/interfaces/http/handlers"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	templateHandler *handlers.TemplateHandler
	variableHandler *handlers.VariableHandler
	exportHandler   *handlers.ExportHandler
	artifactHandler *handlers.ArtifactHandler
	healthHandler   *handlers.HealthHandler
}

func newHandlers(ucs *allUseCases, checks map[string]handlers.HealthCheck, log logger.Interface) *allHandlers {
	return &allHandlers{
		templateHandler: handlers.NewTemplateHandler(
			ucs.createTemplateUC,
			ucs.getTemplateUC,
			ucs.updateTemplateUC,
			ucs.listTemplatesUC,
			ucs.deleteTemplateUC,
			ucs.duplicateTemplateUC,
			ucs.toggleFavoriteUC,
			ucs.setActiveUC,
			ucs.downloadPDFUC,
			log,
		),
		variableHandler: handlers.NewVariableHandler(
			ucs.listVariablesUC,
			ucs.createVariableUC,
			ucs.getVariableUC,
			ucs.updateVariableUC,
			ucs.deleteVariableUC,
			ucs.detectVariablesUC,
			log,
		),
		exportHandler: handlers.NewExportHandler(
			ucs.startExportUC,
			ucs.getSessionUC,
			ucs.setValuesUC,
			ucs.previewSessionUC,
			ucs.validateSessionUC,
			ucs.generateSessionUC,
			ucs.discardSessionUC,
			ucs.generatePDFUC,
			log,
		),
		artifactHandler: handlers.NewArtifactHandler(ucs.getArtifactUC, ucs.sendArtifactUC, log),
		healthHandler:   handlers.NewHealthHandler(checks, log),
	}
}

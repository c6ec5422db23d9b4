package http

import (
	"github.com/orris-inc/docforge/internal/application/document/usecases"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Templates
	createTemplateUC    *usecases.CreateTemplateUseCase
	getTemplateUC       *usecases.GetTemplateUseCase
	updateTemplateUC    *usecases.UpdateTemplateUseCase
	listTemplatesUC     *usecases.ListTemplatesUseCase
	deleteTemplateUC    *usecases.DeleteTemplateUseCase
	duplicateTemplateUC *usecases.DuplicateTemplateUseCase
	toggleFavoriteUC    *usecases.ToggleFavoriteUseCase
	setActiveUC         *usecases.SetTemplateActiveUseCase

	// Variables
	detectVariablesUC *usecases.DetectVariablesUseCase
	listVariablesUC   *usecases.ListVariablesUseCase
	createVariableUC  *usecases.CreateVariableUseCase
	getVariableUC     *usecases.GetVariableUseCase
	updateVariableUC  *usecases.UpdateVariableUseCase
	deleteVariableUC  *usecases.DeleteVariableUseCase

	// Export
	startExportUC     *usecases.StartExportUseCase
	getSessionUC      *usecases.GetExportSessionUseCase
	setValuesUC       *usecases.SetSessionValuesUseCase
	previewSessionUC  *usecases.PreviewSessionUseCase
	validateSessionUC *usecases.ValidateSessionUseCase
	generateSessionUC *usecases.GenerateSessionUseCase
	discardSessionUC  *usecases.DiscardSessionUseCase
	generatePDFUC     *usecases.GeneratePDFUseCase

	// Artifacts
	getArtifactUC  *usecases.GetArtifactUseCase
	downloadPDFUC  *usecases.DownloadTemplatePDFUseCase
	sendArtifactUC *usecases.SendArtifactUseCase
}

func newUseCases(repos *repositories, svcs *services, log logger.Interface) *allUseCases {
	tpl, vars, arts := repos.templateRepo, repos.variableRepo, repos.artifactRepo

	return &allUseCases{
		createTemplateUC:    usecases.NewCreateTemplateUseCase(tpl, vars, repos.txManager, log),
		getTemplateUC:       usecases.NewGetTemplateUseCase(tpl, svcs.markdown, log),
		updateTemplateUC:    usecases.NewUpdateTemplateUseCase(tpl, log),
		listTemplatesUC:     usecases.NewListTemplatesUseCase(tpl, log),
		deleteTemplateUC:    usecases.NewDeleteTemplateUseCase(tpl, arts, repos.txManager, log),
		duplicateTemplateUC: usecases.NewDuplicateTemplateUseCase(tpl, vars, repos.txManager, log),
		toggleFavoriteUC:    usecases.NewToggleFavoriteUseCase(tpl, log),
		setActiveUC:         usecases.NewSetTemplateActiveUseCase(tpl, log),

		detectVariablesUC: usecases.NewDetectVariablesUseCase(tpl, vars, log),
		listVariablesUC:   usecases.NewListVariablesUseCase(tpl, vars, log),
		createVariableUC:  usecases.NewCreateVariableUseCase(tpl, vars, log),
		getVariableUC:     usecases.NewGetVariableUseCase(tpl, vars, log),
		updateVariableUC:  usecases.NewUpdateVariableUseCase(tpl, vars, log),
		deleteVariableUC:  usecases.NewDeleteVariableUseCase(tpl, vars, log),

		startExportUC:     usecases.NewStartExportUseCase(tpl, vars, svcs.sessionStore, svcs.exportService, log),
		getSessionUC:      usecases.NewGetExportSessionUseCase(svcs.sessionStore, log),
		setValuesUC:       usecases.NewSetSessionValuesUseCase(svcs.sessionStore, log),
		previewSessionUC:  usecases.NewPreviewSessionUseCase(svcs.sessionStore, svcs.markdown, log),
		validateSessionUC: usecases.NewValidateSessionUseCase(svcs.sessionStore, log),
		generateSessionUC: usecases.NewGenerateSessionUseCase(tpl, svcs.sessionStore, svcs.exportService, log),
		discardSessionUC:  usecases.NewDiscardSessionUseCase(svcs.sessionStore, log),
		generatePDFUC:     usecases.NewGeneratePDFUseCase(tpl, vars, svcs.exportService, log),

		getArtifactUC:  usecases.NewGetArtifactUseCase(arts, log),
		downloadPDFUC:  usecases.NewDownloadTemplatePDFUseCase(tpl, arts, log),
		sendArtifactUC: usecases.NewSendArtifactUseCase(arts, svcs.mailer, log),
	}
}

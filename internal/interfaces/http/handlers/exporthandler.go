package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/docforge/internal/application/document/usecases"
	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/logger"
	"github.com/orris-inc/docforge/internal/shared/utils"
)

// ExportHandler serves template exports and the export sessions they open.
type ExportHandler struct {
	startUC    usecases.StartExportExecutor
	getUC      usecases.GetExportSessionExecutor
	setUC      usecases.SetSessionValuesExecutor
	previewUC  usecases.PreviewSessionExecutor
	validateUC usecases.ValidateSessionExecutor
	generateUC usecases.GenerateSessionExecutor
	discardUC  usecases.DiscardSessionExecutor
	directUC   usecases.GeneratePDFExecutor
	logger     logger.Interface
}

func NewExportHandler(
	startUC usecases.StartExportExecutor,
	getUC usecases.GetExportSessionExecutor,
	setUC usecases.SetSessionValuesExecutor,
	previewUC usecases.PreviewSessionExecutor,
	validateUC usecases.ValidateSessionExecutor,
	generateUC usecases.GenerateSessionExecutor,
	discardUC usecases.DiscardSessionExecutor,
	directUC usecases.GeneratePDFExecutor,
	logger logger.Interface,
) *ExportHandler {
	return &ExportHandler{
		startUC:    startUC,
		getUC:      getUC,
		setUC:      setUC,
		previewUC:  previewUC,
		validateUC: validateUC,
		generateUC: generateUC,
		discardUC:  discardUC,
		directUC:   directUC,
		logger:     logger,
	}
}

type SetSessionValuesRequest struct {
	Values map[string]string `json:"values" validate:"required"`
}

type GeneratePDFRequest struct {
	Variables  map[string]any `json:"variables"`
	Filename   string         `json:"filename" validate:"max=255"`
	ReturnType string         `json:"return_type" validate:"omitempty,oneof=url base64"`
}

func sessionID(c *gin.Context) (string, error) {
	sid := c.Param("sid")
	if sid == "" {
		return "", errors.NewValidationError("export session ID is required")
	}
	return sid, nil
}

// StartExport begins exporting a template
// @Summary Start export
// @Description Templates without variables are generated at once and the artifact is returned. Otherwise an export session is opened.
// @Tags Export
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Success 201 {object} utils.APIResponse{data=dto.ExportResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /templates/{id}/export [post]
func (h *ExportHandler) StartExport(c *gin.Context) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.startUC.Execute(c.Request.Context(), usecases.StartExportCommand{TemplateID: templateID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	msg := "Export session created"
	if result.Artifact != nil {
		msg = "Document generated"
	}
	utils.CreatedResponse(c, result, msg)
}

// GeneratePDF renders a template in a single call
// @Summary Generate PDF
// @Tags Export
// @Accept json
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Param request body GeneratePDFRequest true "Variable values and output options"
// @Success 201 {object} utils.APIResponse{data=dto.GeneratedPDFDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /templates/{id}/generate-pdf [post]
func (h *ExportHandler) GeneratePDF(c *gin.Context) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req GeneratePDFRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for generate pdf", "template_id", templateID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.directUC.Execute(c.Request.Context(), usecases.GeneratePDFCommand{
		TemplateID: templateID,
		Variables:  req.Variables,
		Filename:   req.Filename,
		ReturnType: req.ReturnType,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "PDF generated successfully")
}

// GetSession returns an export session with its lines
// @Summary Get export session
// @Tags Export Sessions
// @Produce json
// @Param sid path string true "Export session ID"
// @Success 200 {object} utils.APIResponse{data=dto.ExportSessionDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /export-sessions/{sid} [get]
func (h *ExportHandler) GetSession(c *gin.Context) {
	sid, err := sessionID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetExportSessionQuery{SessionID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// SetValues fills session lines by variable name
// @Summary Set session values
// @Tags Export Sessions
// @Accept json
// @Produce json
// @Param sid path string true "Export session ID"
// @Param request body SetSessionValuesRequest true "Values by variable name"
// @Success 200 {object} utils.APIResponse{data=dto.ExportSessionDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /export-sessions/{sid}/lines [patch]
func (h *ExportHandler) SetValues(c *gin.Context) {
	sid, err := sessionID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetSessionValuesRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for set session values", "session_id", sid, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setUC.Execute(c.Request.Context(), usecases.SetSessionValuesCommand{
		SessionID: sid,
		Values:    req.Values,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Preview renders the session body with the current values
// @Summary Preview session
// @Tags Export Sessions
// @Produce json
// @Param sid path string true "Export session ID"
// @Success 200 {object} utils.APIResponse{data=dto.PreviewDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /export-sessions/{sid}/preview [get]
func (h *ExportHandler) Preview(c *gin.Context) {
	sid, err := sessionID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.previewUC.Execute(c.Request.Context(), usecases.PreviewSessionQuery{SessionID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Validate lists the required lines that are still empty
// @Summary Validate session
// @Tags Export Sessions
// @Produce json
// @Param sid path string true "Export session ID"
// @Success 200 {object} utils.APIResponse{data=dto.ValidationResultDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /export-sessions/{sid}/validate [post]
func (h *ExportHandler) Validate(c *gin.Context) {
	sid, err := sessionID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.validateUC.Execute(c.Request.Context(), usecases.ValidateSessionQuery{SessionID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Generate produces the PDF and closes the session
// @Summary Generate from session
// @Tags Export Sessions
// @Produce json
// @Param sid path string true "Export session ID"
// @Success 201 {object} utils.APIResponse{data=dto.ArtifactDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /export-sessions/{sid}/generate [post]
func (h *ExportHandler) Generate(c *gin.Context) {
	sid, err := sessionID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.generateUC.Execute(c.Request.Context(), usecases.GenerateSessionCommand{SessionID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Document generated")
}

// Discard drops an export session
// @Summary Discard session
// @Tags Export Sessions
// @Param sid path string true "Export session ID"
// @Success 204
// @Router /export-sessions/{sid} [delete]
func (h *ExportHandler) Discard(c *gin.Context) {
	sid, err := sessionID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.discardUC.Execute(c.Request.Context(), usecases.DiscardSessionCommand{SessionID: sid}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

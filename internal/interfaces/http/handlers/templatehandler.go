package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/docforge/internal/application/document/usecases"
	"github.com/orris-inc/docforge/internal/shared/id"
	"github.com/orris-inc/docforge/internal/shared/logger"
	"github.com/orris-inc/docforge/internal/shared/utils"
)

type TemplateHandler struct {
	createUC      usecases.CreateTemplateExecutor
	getUC         usecases.GetTemplateExecutor
	updateUC      usecases.UpdateTemplateExecutor
	listUC        usecases.ListTemplatesExecutor
	deleteUC      usecases.DeleteTemplateExecutor
	duplicateUC   usecases.DuplicateTemplateExecutor
	favoriteUC    usecases.ToggleFavoriteExecutor
	setActiveUC   usecases.SetTemplateActiveExecutor
	downloadPDFUC usecases.DownloadTemplatePDFExecutor
	logger        logger.Interface
}

func NewTemplateHandler(
	createUC usecases.CreateTemplateExecutor,
	getUC usecases.GetTemplateExecutor,
	updateUC usecases.UpdateTemplateExecutor,
	listUC usecases.ListTemplatesExecutor,
	deleteUC usecases.DeleteTemplateExecutor,
	duplicateUC usecases.DuplicateTemplateExecutor,
	favoriteUC usecases.ToggleFavoriteExecutor,
	setActiveUC usecases.SetTemplateActiveExecutor,
	downloadPDFUC usecases.DownloadTemplatePDFExecutor,
	logger logger.Interface,
) *TemplateHandler {
	return &TemplateHandler{
		createUC:      createUC,
		getUC:         getUC,
		updateUC:      updateUC,
		listUC:        listUC,
		deleteUC:      deleteUC,
		duplicateUC:   duplicateUC,
		favoriteUC:    favoriteUC,
		setActiveUC:   setActiveUC,
		downloadPDFUC: downloadPDFUC,
		logger:        logger,
	}
}

type CreateTemplateRequest struct {
	Name      string                  `json:"name" validate:"required,max=255"`
	Summary   string                  `json:"summary"`
	Body      string                  `json:"body" validate:"required"`
	Variables []CreateVariableRequest `json:"variables" validate:"omitempty,dive"`
}

// UpdateTemplateRequest leaves fields that are absent unchanged.
type UpdateTemplateRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Summary *string `json:"summary"`
	Body    *string `json:"body"`
}

func parseTemplateID(c *gin.Context) (string, error) {
	return utils.ParseSIDParam(c, "id", id.PrefixTemplate, "template")
}

// CreateTemplate creates a template
// @Summary Create template
// @Description Create a document template with an HTML body containing {{placeholders}}, optionally with its variables
// @Tags Templates
// @Accept json
// @Produce json
// @Param request body CreateTemplateRequest true "Template"
// @Success 201 {object} utils.APIResponse{data=dto.TemplateDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create template", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreateTemplateCommand{
		Name:    req.Name,
		Summary: req.Summary,
		Body:    req.Body,
	}
	for _, v := range req.Variables {
		cmd.Variables = append(cmd.Variables, v.toInput())
	}

	result, err := h.createUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Template created successfully")
}

// GetTemplate returns one template
// @Summary Get template
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Success 200 {object} utils.APIResponse{data=dto.TemplateDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetTemplateQuery{TemplateID: templateID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, 200, "", result)
}

// UpdateTemplate updates name, summary or body
// @Summary Update template
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Param request body UpdateTemplateRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.TemplateDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /templates/{id} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTemplateRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update template", "template_id", templateID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateTemplateCommand{
		TemplateID: templateID,
		Name:       req.Name,
		Summary:    req.Summary,
		Body:       req.Body,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, 200, "Template updated successfully", result)
}

// ListTemplates lists templates
// @Summary List templates
// @Tags Templates
// @Produce json
// @Param active query bool false "Filter by active flag"
// @Param favorite query bool false "Filter by favorite flag"
// @Param search query string false "Case-insensitive name search"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListTemplatesQuery{
		Active:   utils.ParseQueryBool(c, "active"),
		Favorite: utils.ParseQueryBool(c, "favorite"),
		Search:   c.Query("search"),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Templates, result.Total, result.Page, result.PageSize)
}

// DeleteTemplate deletes a template with its variables
// @Summary Delete template
// @Tags Templates
// @Param id path string true "Template ID (tpl_xxx)"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteTemplateCommand{TemplateID: templateID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// DuplicateTemplate copies a template and its variables
// @Summary Duplicate template
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Success 201 {object} utils.APIResponse{data=dto.TemplateDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /templates/{id}/duplicate [post]
func (h *TemplateHandler) DuplicateTemplate(c *gin.Context) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.duplicateUC.Execute(c.Request.Context(), usecases.DuplicateTemplateCommand{TemplateID: templateID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Template duplicated successfully")
}

// ToggleFavorite flips the favorite flag
// @Summary Toggle favorite
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Success 200 {object} utils.APIResponse{data=dto.TemplateDTO}
// @Router /templates/{id}/favorite [post]
func (h *TemplateHandler) ToggleFavorite(c *gin.Context) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.favoriteUC.Execute(c.Request.Context(), usecases.ToggleFavoriteCommand{TemplateID: templateID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, 200, "", result)
}

// ArchiveTemplate marks a template inactive
// @Summary Archive template
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Success 200 {object} utils.APIResponse{data=dto.TemplateDTO}
// @Router /templates/{id}/archive [post]
func (h *TemplateHandler) ArchiveTemplate(c *gin.Context) {
	h.setActive(c, false)
}

// RestoreTemplate marks a template active again
// @Summary Restore template
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Success 200 {object} utils.APIResponse{data=dto.TemplateDTO}
// @Router /templates/{id}/restore [post]
func (h *TemplateHandler) RestoreTemplate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *TemplateHandler) setActive(c *gin.Context, active bool) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setActiveUC.Execute(c.Request.Context(), usecases.SetTemplateActiveCommand{
		TemplateID: templateID,
		Active:     active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, 200, "", result)
}

// DownloadPDF sends the last generated PDF of a template
// @Summary Download last PDF
// @Tags Templates
// @Produce application/pdf
// @Param id path string true "Template ID (tpl_xxx)"
// @Success 200 {file} file
// @Failure 400 {object} utils.APIResponse
// @Router /templates/{id}/pdf [get]
func (h *TemplateHandler) DownloadPDF(c *gin.Context) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	content, err := h.downloadPDFUC.Execute(c.Request.Context(), usecases.DownloadTemplatePDFQuery{TemplateID: templateID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.FileResponse(c, content.Filename, content.Mimetype, content.Data, true)
}

package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/docforge/internal/application/document/usecases"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/id"
	"github.com/orris-inc/docforge/internal/shared/logger"
	"github.com/orris-inc/docforge/internal/shared/utils"
)

type VariableHandler struct {
	listUC   usecases.ListVariablesExecutor
	createUC usecases.CreateVariableExecutor
	getUC    usecases.GetVariableExecutor
	updateUC usecases.UpdateVariableExecutor
	deleteUC usecases.DeleteVariableExecutor
	detectUC usecases.DetectVariablesExecutor
	logger   logger.Interface
}

func NewVariableHandler(
	listUC usecases.ListVariablesExecutor,
	createUC usecases.CreateVariableExecutor,
	getUC usecases.GetVariableExecutor,
	updateUC usecases.UpdateVariableExecutor,
	deleteUC usecases.DeleteVariableExecutor,
	detectUC usecases.DetectVariablesExecutor,
	logger logger.Interface,
) *VariableHandler {
	return &VariableHandler{
		listUC:   listUC,
		createUC: createUC,
		getUC:    getUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		detectUC: detectUC,
		logger:   logger,
	}
}

// SelectOptionsInput accepts either a JSON array of strings or a single
// comma-separated string.
type SelectOptionsInput []string

func (o *SelectOptionsInput) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*o = list
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("select_options must be an array or a comma-separated string")
	}
	*o = document.ParseSelectOptions(raw)
	return nil
}

// CreateVariableRequest needs a name or a label; a missing name is generated
// from the label.
type CreateVariableRequest struct {
	Name          string             `json:"name" validate:"omitempty,max=100"`
	Label         string             `json:"label" validate:"required_without=Name,max=255"`
	Type          string             `json:"type"`
	DefaultValue  string             `json:"default_value"`
	Required      *bool              `json:"required"`
	Order         *int               `json:"order" validate:"omitempty,min=0"`
	SelectOptions SelectOptionsInput `json:"select_options" swaggertype:"array,string"`
}

func (r CreateVariableRequest) toInput() usecases.VariableInput {
	return usecases.VariableInput{
		Name:          r.Name,
		Label:         r.Label,
		Type:          r.Type,
		DefaultValue:  r.DefaultValue,
		Required:      r.Required,
		Order:         r.Order,
		SelectOptions: r.SelectOptions,
	}
}

// UpdateVariableRequest carries a Name only so updates that try to rename
// can be rejected.
type UpdateVariableRequest struct {
	Name          *string            `json:"name"`
	Label         *string            `json:"label" validate:"omitempty,max=255"`
	Type          *string            `json:"type"`
	DefaultValue  *string            `json:"default_value"`
	Required      *bool              `json:"required"`
	Order         *int               `json:"order" validate:"omitempty,min=0"`
	SelectOptions SelectOptionsInput `json:"select_options" swaggertype:"array,string"`
}

func parseVariableIDs(c *gin.Context) (string, string, error) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		return "", "", err
	}
	variableID, err := utils.ParseSIDParam(c, "var_id", id.PrefixVariable, "variable")
	if err != nil {
		return "", "", err
	}
	return templateID, variableID, nil
}

// ListVariables lists the variables of a template
// @Summary List variables
// @Description Variables are returned in display order
// @Tags Variables
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Success 200 {object} utils.APIResponse{data=[]dto.VariableDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /templates/{id}/variables [get]
func (h *VariableHandler) ListVariables(c *gin.Context) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListVariablesQuery{TemplateID: templateID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, 200, "", result)
}

// CreateVariable adds a variable definition
// @Summary Create variable
// @Tags Variables
// @Accept json
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Param request body CreateVariableRequest true "Variable"
// @Success 201 {object} utils.APIResponse{data=dto.VariableDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /templates/{id}/variables [post]
func (h *VariableHandler) CreateVariable(c *gin.Context) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateVariableRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create variable", "template_id", templateID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	in := req.toInput()
	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateVariableCommand{
		TemplateID:    templateID,
		Name:          in.Name,
		Label:         in.Label,
		Type:          in.Type,
		DefaultValue:  in.DefaultValue,
		Required:      in.Required,
		Order:         in.Order,
		SelectOptions: in.SelectOptions,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Variable created successfully")
}

// GetVariable returns one variable
// @Summary Get variable
// @Tags Variables
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Param var_id path string true "Variable ID (var_xxx)"
// @Success 200 {object} utils.APIResponse{data=dto.VariableDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /templates/{id}/variables/{var_id} [get]
func (h *VariableHandler) GetVariable(c *gin.Context) {
	templateID, variableID, err := parseVariableIDs(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetVariableQuery{
		TemplateID: templateID,
		VariableID: variableID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, 200, "", result)
}

// UpdateVariable changes a variable definition
// @Summary Update variable
// @Description The variable name cannot be changed after creation
// @Tags Variables
// @Accept json
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Param var_id path string true "Variable ID (var_xxx)"
// @Param request body UpdateVariableRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.VariableDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /templates/{id}/variables/{var_id} [put]
func (h *VariableHandler) UpdateVariable(c *gin.Context) {
	templateID, variableID, err := parseVariableIDs(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateVariableRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update variable", "variable_id", variableID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateVariableCommand{
		TemplateID:    templateID,
		VariableID:    variableID,
		Name:          req.Name,
		Label:         req.Label,
		Type:          req.Type,
		DefaultValue:  req.DefaultValue,
		Required:      req.Required,
		Order:         req.Order,
		SelectOptions: req.SelectOptions,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, 200, "Variable updated successfully", result)
}

// DeleteVariable removes a variable definition
// @Summary Delete variable
// @Tags Variables
// @Param id path string true "Template ID (tpl_xxx)"
// @Param var_id path string true "Variable ID (var_xxx)"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Router /templates/{id}/variables/{var_id} [delete]
func (h *VariableHandler) DeleteVariable(c *gin.Context) {
	templateID, variableID, err := parseVariableIDs(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteVariableCommand{
		TemplateID: templateID,
		VariableID: variableID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// DetectVariables creates definitions for undeclared placeholders
// @Summary Detect variables
// @Description Scan the template body for {{placeholders}} and create a definition for each new name
// @Tags Variables
// @Produce json
// @Param id path string true "Template ID (tpl_xxx)"
// @Success 200 {object} utils.APIResponse{data=dto.DetectionResultDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /templates/{id}/detect-variables [post]
func (h *VariableHandler) DetectVariables(c *gin.Context) {
	templateID, err := parseTemplateID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.detectUC.Execute(c.Request.Context(), usecases.DetectVariablesCommand{TemplateID: templateID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, 200, result.Notification.Message, result)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/docforge/internal/application/document/usecases"
	"github.com/orris-inc/docforge/internal/shared/id"
	"github.com/orris-inc/docforge/internal/shared/logger"
	"github.com/orris-inc/docforge/internal/shared/utils"
)

type ArtifactHandler struct {
	getUC  usecases.GetArtifactExecutor
	sendUC usecases.SendArtifactExecutor
	logger logger.Interface
}

func NewArtifactHandler(
	getUC usecases.GetArtifactExecutor,
	sendUC usecases.SendArtifactExecutor,
	logger logger.Interface,
) *ArtifactHandler {
	return &ArtifactHandler{
		getUC:  getUC,
		sendUC: sendUC,
		logger: logger,
	}
}

type SendArtifactRequest struct {
	To      []string `json:"to" validate:"required,min=1,dive,email"`
	Subject string   `json:"subject" validate:"max=255"`
	Message string   `json:"message"`
}

// Download serves the stored bytes of an artifact
// @Summary Download artifact
// @Description Served inline unless download=true
// @Tags Artifacts
// @Produce application/pdf
// @Param id path string true "Artifact ID (art_xxx)"
// @Param filename path string true "File name"
// @Param download query bool false "Send as attachment"
// @Success 200 {file} file
// @Success 304 "Not Modified"
// @Failure 404 {object} utils.APIResponse
// @Router /artifacts/{id}/{filename} [get]
func (h *ArtifactHandler) Download(c *gin.Context) {
	artifactID, err := utils.ParseSIDParam(c, "id", id.PrefixArtifact, "artifact")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	content, err := h.getUC.Execute(c.Request.Context(), usecases.GetArtifactQuery{ArtifactID: artifactID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// Artifacts never change once stored.
	etag := utils.ContentETag(content.Data)
	if utils.CheckETag(c, etag) {
		utils.NotModified(c, etag)
		return
	}
	utils.SetETag(c, etag)

	download := false
	if v := utils.ParseQueryBool(c, "download"); v != nil {
		download = *v
	}

	utils.FileResponse(c, content.Filename, content.Mimetype, content.Data, download)
}

// Send mails an artifact as an attachment
// @Summary Send artifact by email
// @Tags Artifacts
// @Accept json
// @Produce json
// @Param id path string true "Artifact ID (art_xxx)"
// @Param request body SendArtifactRequest true "Recipients and message"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /artifacts/{id}/send [post]
func (h *ArtifactHandler) Send(c *gin.Context) {
	artifactID, err := utils.ParseSIDParam(c, "id", id.PrefixArtifact, "artifact")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SendArtifactRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for send artifact", "artifact_id", artifactID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.sendUC.Execute(c.Request.Context(), usecases.SendArtifactCommand{
		ArtifactID: artifactID,
		To:         req.To,
		Subject:    req.Subject,
		Message:    req.Message,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Artifact sent", nil)
}

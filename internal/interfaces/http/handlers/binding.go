package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/utils"
)

// bindJSON decodes the request body into req and runs struct validation.
// The returned error is ready for utils.ErrorResponseWithError.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.NewValidationError("invalid request body", err.Error())
	}
	return utils.ValidateStruct(req)
}

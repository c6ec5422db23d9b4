package utils

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/docforge/internal/shared/constants"
)

// FileResponse writes data as a file. download selects an attachment
// Content-Disposition; otherwise the browser may display it inline.
func FileResponse(c *gin.Context, filename, mimetype string, data []byte, download bool) {
	disposition := "inline"
	if download {
		disposition = "attachment"
	}
	if mimetype == "" {
		mimetype = "application/octet-stream"
	}

	c.Header(constants.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, filename))
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Header("Cache-Control", "private, no-cache")
	c.Data(http.StatusOK, mimetype, data)
}

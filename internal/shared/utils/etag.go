package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SetETag sets the ETag header for cache validation.
func SetETag(c *gin.Context, etag string) {
	c.Header("ETag", etag)
}

// CheckETag reports whether If-None-Match names etag. A "*" or any entry of
// a comma separated list matches; weak validators compare by their opaque
// part.
func CheckETag(c *gin.Context, etag string) bool {
	header := c.GetHeader("If-None-Match")
	if header == "" {
		return false
	}

	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}

// ContentETag returns a strong, quoted ETag for an immutable payload.
func ContentETag(data []byte) string {
	sum := sha256.Sum256(data)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// NotModified answers 304 with the validator so caches can refresh it.
func NotModified(c *gin.Context, etag string) {
	SetETag(c, etag)
	c.Status(http.StatusNotModified)
}

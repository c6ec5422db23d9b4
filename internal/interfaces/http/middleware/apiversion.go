package middleware

import (
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderAPIVersion is the custom header for API version negotiation.
	HeaderAPIVersion = "X-API-Version"

	ContextKeyAPIVersion = "api_version"

	CurrentAPIVersion = 1
	MinAPIVersion     = 1
)

// acceptVersionRegex matches Accept headers like "application/vnd.docforge.v1+json".
var acceptVersionRegex = regexp.MustCompile(`application/vnd\.docforge\.v(\d+)\+json`)

// APIVersion resolves the requested API version from X-API-Version, then
// from a vendor Accept header, and echoes it back in X-API-Version.
func APIVersion() gin.HandlerFunc {
	return func(c *gin.Context) {
		version := resolveAPIVersion(c)
		c.Set(ContextKeyAPIVersion, version)
		c.Header(HeaderAPIVersion, strconv.Itoa(version))
		c.Next()
	}
}

// GetAPIVersion returns CurrentAPIVersion when the middleware did not run.
func GetAPIVersion(c *gin.Context) int {
	if v, exists := c.Get(ContextKeyAPIVersion); exists {
		if ver, ok := v.(int); ok {
			return ver
		}
	}
	return CurrentAPIVersion
}

func resolveAPIVersion(c *gin.Context) int {
	if h := c.GetHeader(HeaderAPIVersion); h != "" {
		if v, err := strconv.Atoi(h); err == nil && supportedVersion(v) {
			return v
		}
	}

	if matches := acceptVersionRegex.FindStringSubmatch(c.GetHeader("Accept")); len(matches) == 2 {
		if v, err := strconv.Atoi(matches[1]); err == nil && supportedVersion(v) {
			return v
		}
	}

	return CurrentAPIVersion
}

func supportedVersion(v int) bool {
	return v >= MinAPIVersion && v <= CurrentAPIVersion
}

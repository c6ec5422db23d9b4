package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/orris-inc/docforge/internal/shared/constants"
	"github.com/orris-inc/docforge/internal/shared/logger"
	"github.com/orris-inc/docforge/internal/shared/utils"
)

// APIKeyMiddleware checks the X-API-Key header against bcrypt hashes.
type APIKeyMiddleware struct {
	hashes [][]byte
	logger logger.Interface
}

func NewAPIKeyMiddleware(keyHashes []string, logger logger.Interface) *APIKeyMiddleware {
	hashes := make([][]byte, 0, len(keyHashes))
	for _, h := range keyHashes {
		if h != "" {
			hashes = append(hashes, []byte(h))
		}
	}
	if len(hashes) == 0 {
		logger.Warnw("no API keys configured, the API is open to every client")
	}
	return &APIKeyMiddleware{hashes: hashes, logger: logger}
}

// Enabled reports whether at least one key is configured.
func (m *APIKeyMiddleware) Enabled() bool {
	return len(m.hashes) > 0
}

// RequireAPIKey stores the index of the matching key under
// constants.ContextKeyAPIKey. Without configured keys every request passes.
func (m *APIKeyMiddleware) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.Enabled() {
			c.Next()
			return
		}

		key := c.GetHeader(constants.HeaderXAPIKey)
		if key == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing API key")
			c.Abort()
			return
		}

		for i, hash := range m.hashes {
			if bcrypt.CompareHashAndPassword(hash, []byte(key)) == nil {
				c.Set(constants.ContextKeyAPIKey, i)
				c.Next()
				return
			}
		}

		m.logger.Warnw("rejected request with invalid API key",
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP())
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid API key")
		c.Abort()
	}
}

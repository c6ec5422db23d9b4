package http

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/orris-inc/docforge/internal/infrastructure/config"
	"github.com/orris-inc/docforge/internal/infrastructure/database"
	"github.com/orris-inc/docforge/internal/infrastructure/migration"
	sharedConfig "github.com/orris-inc/docforge/internal/shared/config"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: sharedConfig.ServerConfig{Mode: gin.TestMode},
		Database: sharedConfig.DatabaseConfig{
			Driver: sharedConfig.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "docforge.db"),
		},
		Export: sharedConfig.ExportConfig{
			Rasterizer:       sharedConfig.RasterizerNative,
			Timeout:          10 * time.Second,
			SessionStore:     sharedConfig.SessionStoreMemory,
			SessionTTL:       time.Hour,
			DownloadBasePath: "/api/v1/artifacts",
		},
		Branding: sharedConfig.BrandingConfig{CompanyName: "Acme", Phone: "555-0100"},
	}
}

func newTestContainer(t *testing.T, cfg *config.Config) *Container {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := database.Open(&cfg.Database)
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(migration.AutoMigrateModels()...))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	c, err := NewContainer(gdb, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(c.Shutdown)

	c.SetupRoutes()
	return c
}

func do(t *testing.T, c *Container, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	c.GetEngine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.True(t, env.Success, w.Body.String())
	if target != nil {
		require.NoError(t, json.Unmarshal(env.Data, target))
	}
}

func TestContainer_ExportSessionFlow(t *testing.T) {
	c := newTestContainer(t, testConfig(t))

	w := do(t, c, nethttp.MethodPost, "/api/v1/templates", map[string]string{
		"name": "Payment Notice",
		"body": "<p>Dear {{client_name}}, please pay {{amount}}.</p>",
	})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	var tpl struct {
		ID string `json:"id"`
	}
	decode(t, w, &tpl)
	require.NotEmpty(t, tpl.ID)

	w = do(t, c, nethttp.MethodPost, "/api/v1/templates/"+tpl.ID+"/detect-variables", nil)
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	var detected struct {
		CreatedCount int `json:"created_count"`
	}
	decode(t, w, &detected)
	assert.Equal(t, 2, detected.CreatedCount)

	w = do(t, c, nethttp.MethodPost, "/api/v1/templates/"+tpl.ID+"/export", nil)
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	var started struct {
		Session struct {
			ID    string `json:"id"`
			Lines []struct {
				Name string `json:"name"`
			} `json:"lines"`
		} `json:"session"`
	}
	decode(t, w, &started)
	require.NotEmpty(t, started.Session.ID)
	assert.Len(t, started.Session.Lines, 2)

	sessionPath := "/api/v1/export-sessions/" + started.Session.ID

	w = do(t, c, nethttp.MethodPatch, sessionPath+"/lines", map[string]any{
		"values": map[string]string{"client_name": "Globex", "amount": "$120"},
	})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())

	w = do(t, c, nethttp.MethodGet, sessionPath+"/preview", nil)
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Dear Globex, please pay $120.")

	w = do(t, c, nethttp.MethodPost, sessionPath+"/validate", nil)
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	var validation struct {
		Valid bool `json:"valid"`
	}
	decode(t, w, &validation)
	assert.True(t, validation.Valid)

	w = do(t, c, nethttp.MethodPost, sessionPath+"/generate", nil)
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	var art struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		DownloadURL string `json:"download_url"`
	}
	decode(t, w, &art)
	assert.Equal(t, "Payment Notice.pdf", art.Name)

	// The session is consumed by generation.
	w = do(t, c, nethttp.MethodGet, sessionPath, nil)
	assert.Equal(t, nethttp.StatusNotFound, w.Code)

	w = do(t, c, nethttp.MethodGet, art.DownloadURL, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = do(t, c, nethttp.MethodGet, "/api/v1/templates/"+tpl.ID+"/pdf", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestContainer_GeneratePDFMissingVariables(t *testing.T) {
	c := newTestContainer(t, testConfig(t))

	w := do(t, c, nethttp.MethodPost, "/api/v1/templates", map[string]string{
		"name": "Letter",
		"body": "<p>{{client}}</p>",
	})
	require.Equal(t, nethttp.StatusCreated, w.Code)
	var tpl struct {
		ID string `json:"id"`
	}
	decode(t, w, &tpl)

	w = do(t, c, nethttp.MethodPost, "/api/v1/templates/"+tpl.ID+"/variables", map[string]any{
		"name":     "client",
		"required": true,
	})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())

	w = do(t, c, nethttp.MethodPost, "/api/v1/templates/"+tpl.ID+"/generate-pdf", map[string]any{
		"variables": map[string]any{"client": nil},
	})
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"fields":["Client"]`)

	w = do(t, c, nethttp.MethodPost, "/api/v1/templates/"+tpl.ID+"/generate-pdf", map[string]any{
		"variables":   map[string]any{"client": "Initech"},
		"return_type": "base64",
	})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	var generated struct {
		Filename  string `json:"filename"`
		PDFBase64 string `json:"pdf_base64"`
	}
	decode(t, w, &generated)
	assert.Equal(t, "Letter.pdf", generated.Filename)
	assert.NotEmpty(t, generated.PDFBase64)
}

func TestContainer_APIKeyRequired(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.API.KeyHashes = []string{string(hash)}
	c := newTestContainer(t, cfg)

	w := do(t, c, nethttp.MethodGet, "/api/v1/templates", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)

	w = do(t, c, nethttp.MethodGet, "/api/v1/templates", nil, "X-API-Key", "s3cret")
	assert.Equal(t, nethttp.StatusOK, w.Code)

	w = do(t, c, nethttp.MethodGet, "/health", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)
}

func TestNewContainer_RedisUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Export.SessionStore = sharedConfig.SessionStoreRedis
	cfg.Redis = sharedConfig.RedisConfig{Host: "127.0.0.1", Port: 1}

	gdb, err := database.Open(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	_, err = NewContainer(gdb, cfg, logger.Nop())
	assert.Error(t, err)
}

func TestNewContainer_MaintenanceJobs(t *testing.T) {
	cfg := testConfig(t)
	c := newTestContainer(t, cfg)
	assert.Len(t, c.scheduler.Jobs(), 1, "memory store sweep only")

	cfg = testConfig(t)
	cfg.Export.ArtifactRetention = 24 * time.Hour
	c = newTestContainer(t, cfg)

	var names []string
	for _, job := range c.scheduler.Jobs() {
		names = append(names, job.Name())
	}
	assert.ElementsMatch(t, []string{"artifact-retention", "session-sweep"}, names)
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/docforge/internal/interfaces/http/handlers/testutil"
)

func TestHealthHandler(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return fmt.Errorf("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]HealthCheck
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name:       "no checks",
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantChecks: map[string]string{},
		},
		{
			name:       "all up",
			checks:     map[string]HealthCheck{"database": up, "redis": up},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantChecks: map[string]string{"database": "up", "redis": "up"},
		},
		{
			name:       "redis down",
			checks:     map[string]HealthCheck{"database": up, "redis": down},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantChecks: map[string]string{"database": "up", "redis": "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.checks, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
			h.Health(c)

			assert.Equal(t, tt.wantCode, w.Code)

			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))

			var health HealthResponse
			require.NoError(t, json.Unmarshal(resp.Data, &health))
			assert.Equal(t, tt.wantStatus, health.Status)
			assert.Equal(t, tt.wantChecks, health.Checks)
			assert.NotEmpty(t, health.Version.GoVersion)
		})
	}
}

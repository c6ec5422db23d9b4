package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/docforge/internal/shared/constants"
)

func newQueryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/templates?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults", query: "", wantPage: constants.DefaultPage, wantPageSize: constants.DefaultPageSize},
		{name: "explicit values", query: "page=3&page_size=5", wantPage: 3, wantPageSize: 5},
		{name: "capped page size", query: "page_size=1000", wantPage: 1, wantPageSize: constants.MaxPageSize},
		{name: "garbage falls back", query: "page=abc&page_size=-4", wantPage: 1, wantPageSize: constants.DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePagination(newQueryContext(tt.query))
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
		})
	}
}

func TestParseQueryBool(t *testing.T) {
	assert.Nil(t, ParseQueryBool(newQueryContext(""), "favorite"))
	assert.Nil(t, ParseQueryBool(newQueryContext("favorite=maybe"), "favorite"))

	v := ParseQueryBool(newQueryContext("favorite=true"), "favorite")
	require.NotNil(t, v)
	assert.True(t, *v)

	v = ParseQueryBool(newQueryContext("active=0"), "active")
	require.NotNil(t, v)
	assert.False(t, *v)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 1, TotalPages(5, 0))
}

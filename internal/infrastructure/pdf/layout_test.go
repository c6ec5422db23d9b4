package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// 1x1 transparent PNG.
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func TestLayout_Build(t *testing.T) {
	layout := DefaultLayout()

	docs, err := layout.Build("<h1>Notice</h1><p>Dear Jane,</p>", document.Branding{
		Name:    "Acme & Sons",
		Address: "1 Main St",
		Phone:   "555-0100",
	}, false)
	require.NoError(t, err)

	assert.Contains(t, docs.Page, "<h1>Notice</h1><p>Dear Jane,</p>")
	assert.Contains(t, docs.Page, "portrait")
	assert.Contains(t, docs.Header, `<span class="company">Acme &amp; Sons</span>`)
	assert.Contains(t, docs.Footer, "Acme &amp; Sons | 1 Main St | 555-0100")
	assert.Contains(t, docs.Footer, `Page <span class="page"></span> of <span class="topage"></span>`)
}

func TestLayout_BuildWithLogoAndLandscape(t *testing.T) {
	docs, err := DefaultLayout().Build("<p>x</p>", document.Branding{Name: "Acme", LogoBytes: tinyPNG}, true)
	require.NoError(t, err)

	assert.Contains(t, docs.Page, "landscape")
	assert.Contains(t, docs.Header, `src="data:image/png;base64,`)
	assert.NotContains(t, docs.Header, `class="company"`)
}

func TestContactLine_SkipsBlankParts(t *testing.T) {
	assert.Equal(t, "Acme | 555-0100", ContactLine(document.Branding{Name: "Acme", Address: "  ", Phone: "555-0100"}))
	assert.Equal(t, "", ContactLine(document.Branding{}))
}

func TestLayoutLoader_Overrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.gohtml"), []byte(`<main>{{.Body}}</main>`), 0o600))

	layout, err := NewLayoutLoader(dir, logger.Nop()).Load()
	require.NoError(t, err)

	docs, err := layout.Build("<p>hi</p>", document.Branding{Name: "Acme"}, false)
	require.NoError(t, err)
	assert.Equal(t, "<main><p>hi</p></main>", docs.Page)
	assert.True(t, strings.Contains(docs.Header, "Acme"), "header falls back to the built-in layout")
}

func TestLayoutLoader_InvalidOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "footer.gohtml"), []byte(`{{.Contact`), 0o600))

	_, err := NewLayoutLoader(dir, logger.Nop()).Load()
	assert.Error(t, err)
}

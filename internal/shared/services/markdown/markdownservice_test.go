package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownService_ToHTMLSanitized(t *testing.T) {
	svc := NewMarkdownService()

	out, err := svc.ToHTMLSanitized("# Offer letter\n\nUsed for **new hires**.<script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 id="offer-letter">Offer letter</h1>`)
	assert.Contains(t, out, "<strong>new hires</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestMarkdownService_SanitizeKeepsDocumentStyling(t *testing.T) {
	svc := NewMarkdownService()

	out := svc.Sanitize(`<p style="color: #999" onclick="steal()">No content to preview.</p>`)

	assert.Contains(t, out, "color")
	assert.Contains(t, out, "No content to preview.")
	assert.NotContains(t, out, "onclick")
}

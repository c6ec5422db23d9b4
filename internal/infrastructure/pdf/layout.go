// Package pdf turns rendered template bodies into PDF bytes. The HTML
// assemblers wrap the body in a page layout and hand it to an external
// rasterizer; the native assembler draws the document itself.
package pdf

import (
	"bytes"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// Page margins in millimetres. The top and bottom margins reserve room for
// the header and footer (about 90pt and 70pt).
const (
	MarginTopMM    = 32
	MarginBottomMM = 25
	MarginSideMM   = 20
)

const layoutSuffix = ".gohtml"

var layoutParts = []string{"page", "header", "footer"}

//go:embed layouts/*.gohtml
var defaultLayouts embed.FS

// Documents are the three HTML documents handed to a rasterizer.
type Documents struct {
	Page   string
	Header string
	Footer string
}

// Layout renders the page, header and footer documents.
type Layout struct {
	page   *template.Template
	header *template.Template
	footer *template.Template
}

type pageData struct {
	Body      template.HTML
	Landscape bool
}

type headerData struct {
	Name    string
	LogoURI template.URL
}

type footerData struct {
	Contact string
}

// Build wraps bodyHTML in the page document and renders the branded header
// and footer. The body is inserted verbatim; branding text is escaped.
func (l *Layout) Build(bodyHTML string, branding document.Branding, landscape bool) (Documents, error) {
	var docs Documents
	var err error

	if docs.Page, err = execute(l.page, pageData{Body: template.HTML(bodyHTML), Landscape: landscape}); err != nil {
		return Documents{}, fmt.Errorf("failed to render page layout: %w", err)
	}

	header := headerData{Name: branding.Name}
	if branding.HasLogo() {
		header.LogoURI = template.URL(LogoDataURI(branding.LogoBytes))
	}
	if docs.Header, err = execute(l.header, header); err != nil {
		return Documents{}, fmt.Errorf("failed to render header layout: %w", err)
	}

	if docs.Footer, err = execute(l.footer, footerData{Contact: ContactLine(branding)}); err != nil {
		return Documents{}, fmt.Errorf("failed to render footer layout: %w", err)
	}
	return docs, nil
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ContactLine joins the non-empty company name, address and phone.
func ContactLine(b document.Branding) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{b.Name, b.Address, b.Phone} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

// LogoDataURI embeds logo bytes as a data URI with a sniffed content type.
func LogoDataURI(logo []byte) string {
	return "data:" + http.DetectContentType(logo) + ";base64," + base64.StdEncoding.EncodeToString(logo)
}

// LayoutLoader reads layout overrides from a directory. Files are named
// page.gohtml, header.gohtml and footer.gohtml; a missing file falls back to
// the built-in layout.
type LayoutLoader struct {
	dir    string
	logger logger.Interface
}

func NewLayoutLoader(dir string, logger logger.Interface) *LayoutLoader {
	return &LayoutLoader{dir: dir, logger: logger}
}

func (l *LayoutLoader) Load() (*Layout, error) {
	parsed := make(map[string]*template.Template, len(layoutParts))

	for _, part := range layoutParts {
		content, source, err := l.read(part)
		if err != nil {
			return nil, err
		}

		t, err := template.New(part).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s layout from %s: %w", part, source, err)
		}
		parsed[part] = t

		l.logger.Debugw("loaded pdf layout", "part", part, "source", source, "size", len(content))
	}

	return &Layout{
		page:   parsed["page"],
		header: parsed["header"],
		footer: parsed["footer"],
	}, nil
}

func (l *LayoutLoader) read(part string) ([]byte, string, error) {
	if l.dir != "" {
		path := filepath.Join(l.dir, part+layoutSuffix)
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			return content, path, nil
		case !errors.Is(err, fs.ErrNotExist):
			l.logger.Warnw("failed to read layout override, using built-in layout", "file", path, "error", err)
		}
	}

	content, err := defaultLayouts.ReadFile("layouts/" + part + layoutSuffix)
	if err != nil {
		return nil, "", fmt.Errorf("built-in %s layout missing: %w", part, err)
	}
	return content, "built-in", nil
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() *Layout {
	layout, err := NewLayoutLoader("", logger.Nop()).Load()
	if err != nil {
		panic(err)
	}
	return layout
}

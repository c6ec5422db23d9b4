package pdf

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/microcosm-cc/bluemonday"

	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

const (
	nativeFontFamily = "Helvetica"
	nativeFontSize   = 11
	nativeLineHeight = 5.5
	nativeLogoWidth  = 40
	nativeLogoName   = "branding-logo"
	nativeUTF8Family = "docforge-utf8"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	headingOpen   = regexp.MustCompile(`(?i)<h[1-6][^>]*>`)
	headingClose  = regexp.MustCompile(`(?i)</h[1-6]\s*>`)
	strongTag     = regexp.MustCompile(`(?i)<(/?)strong\b[^>]*>`)
	emTag         = regexp.MustCompile(`(?i)<(/?)em\b[^>]*>`)
	blockClose    = regexp.MustCompile(`(?i)</(p|div|li|tr|table|ul|ol)\s*>|<br\s*/?>`)
	listItemOpen  = regexp.MustCompile(`(?i)<li\b[^>]*>`)
	cellClose     = regexp.MustCompile(`(?i)</t[dh]\s*>`)
	breakRun      = regexp.MustCompile(`(\s*<br>\s*){3,}`)
)

// basicHTMLPolicy keeps only the tags fpdf's basic HTML writer understands.
var basicHTMLPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "u", "br", "center", "right")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	return p
}()

// NativeAssembler draws the document with fpdf instead of an external
// rasterizer. Body markup is reduced to paragraphs, line breaks, bold,
// italic, underline and links. Without a UTF-8 font the core Helvetica font
// is used and text is mapped to cp1252, so characters outside it print as
// placeholders.
type NativeAssembler struct {
	landscape bool
	compress  bool
	utf8Font  []byte
	logger    logger.Interface
}

func NewNativeAssembler(landscape bool, logger logger.Interface) *NativeAssembler {
	return &NativeAssembler{landscape: landscape, compress: true, logger: logger}
}

// WithUTF8Font draws all text with the given TrueType font. The same face
// serves the bold and italic styles.
func (a *NativeAssembler) WithUTF8Font(ttf []byte) *NativeAssembler {
	a.utf8Font = ttf
	return a
}

func (a *NativeAssembler) Assemble(ctx context.Context, bodyHTML string, branding document.Branding) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &document.RenderingFailedError{Cause: err}
	}

	orientation := "P"
	if a.landscape {
		orientation = "L"
	}

	doc := fpdf.New(orientation, "mm", "A4", "")
	doc.SetCompression(a.compress)
	doc.SetCreator("docforge", true)
	doc.SetMargins(MarginSideMM, MarginTopMM, MarginSideMM)
	doc.SetAutoPageBreak(true, MarginBottomMM)
	doc.AliasNbPages("")

	family := nativeFontFamily
	tr := doc.UnicodeTranslatorFromDescriptor("")
	if len(a.utf8Font) > 0 {
		for _, style := range []string{"", "B", "I", "BI"} {
			doc.AddUTF8FontFromBytes(nativeUTF8Family, style, a.utf8Font)
		}
		family = nativeUTF8Family
		tr = func(s string) string { return s }
	}
	logo := registerLogo(doc, branding)

	doc.SetHeaderFunc(func() { drawHeader(doc, branding, logo, family, tr) })
	doc.SetFooterFunc(func() { drawFooter(doc, branding, family, tr) })

	doc.AddPage()
	doc.SetFont(family, "", nativeFontSize)
	basic := doc.HTMLBasicNew()
	basic.Write(nativeLineHeight, tr(SimplifyHTML(bodyHTML)))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		a.logger.Errorw("native pdf rendering failed", "error", err)
		return nil, &document.RenderingFailedError{Cause: err}
	}

	a.logger.Infow("pdf rendered natively", "size", buf.Len(), "pages", doc.PageCount())
	return buf.Bytes(), nil
}

// registerLogo returns the registered image name, or "" when the branding
// has no logo in a format fpdf can embed.
func registerLogo(doc *fpdf.Fpdf, branding document.Branding) string {
	if !branding.HasLogo() {
		return ""
	}

	var imageType string
	switch http.DetectContentType(branding.LogoBytes) {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg":
		imageType = "JPG"
	case "image/gif":
		imageType = "GIF"
	default:
		return ""
	}

	doc.RegisterImageOptionsReader(nativeLogoName, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(branding.LogoBytes))
	return nativeLogoName
}

func drawHeader(doc *fpdf.Fpdf, branding document.Branding, logo, family string, tr func(string) string) {
	pageW, _ := doc.GetPageSize()

	if logo != "" {
		doc.ImageOptions(logo, (pageW-nativeLogoWidth)/2, 8, nativeLogoWidth, 0, false, fpdf.ImageOptions{}, 0, "")
	} else if branding.Name != "" {
		doc.SetFont(family, "B", 14)
		doc.SetXY(MarginSideMM, 12)
		doc.CellFormat(pageW-2*MarginSideMM, 8, tr(branding.Name), "", 0, "C", false, 0, "")
	}

	doc.SetDrawColor(153, 153, 153)
	doc.Line(MarginSideMM, MarginTopMM-4, pageW-MarginSideMM, MarginTopMM-4)
	doc.SetFont(family, "", nativeFontSize)
	doc.SetXY(MarginSideMM, MarginTopMM)
}

func drawFooter(doc *fpdf.Fpdf, branding document.Branding, family string, tr func(string) string) {
	pageW, pageH := doc.GetPageSize()
	top := pageH - MarginBottomMM + 6

	doc.SetDrawColor(153, 153, 153)
	doc.Line(MarginSideMM, top, pageW-MarginSideMM, top)

	doc.SetFont(family, "", 8)
	doc.SetTextColor(85, 85, 85)
	doc.SetXY(MarginSideMM, top+2)
	if contact := ContactLine(branding); contact != "" {
		doc.CellFormat(pageW-2*MarginSideMM, 4, tr(contact), "", 2, "C", false, 0, "")
	}
	doc.CellFormat(pageW-2*MarginSideMM, 4, fmt.Sprintf("Page %d of {nb}", doc.PageNo()), "", 0, "C", false, 0, "")
	doc.SetTextColor(0, 0, 0)
}

// SimplifyHTML rewrites rich-text markup into the subset accepted by fpdf's
// basic HTML writer: block ends become line breaks, headings become bold
// and every other tag is dropped.
func SimplifyHTML(body string) string {
	s := whitespaceRun.ReplaceAllString(body, " ")
	s = headingOpen.ReplaceAllString(s, "<b>")
	s = headingClose.ReplaceAllString(s, "</b><br><br>")
	s = strongTag.ReplaceAllString(s, "<${1}b>")
	s = emTag.ReplaceAllString(s, "<${1}i>")
	s = listItemOpen.ReplaceAllString(s, "- ")
	s = cellClose.ReplaceAllString(s, "    ")
	s = blockClose.ReplaceAllString(s, "<br>")

	s = basicHTMLPolicy.Sanitize(s)
	s = strings.ReplaceAll(s, "<br/>", "<br>")
	s = breakRun.ReplaceAllString(s, "<br><br>")
	s = strings.TrimSpace(s)
	for strings.HasSuffix(s, "<br>") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "<br>"))
	}

	return html.UnescapeString(s)
}

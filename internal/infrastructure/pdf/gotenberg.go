package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/orris-inc/docforge/internal/shared/logger"
	"github.com/orris-inc/docforge/internal/shared/utils/logutil"
)

const (
	gotenbergConvertPath = "/forms/chromium/convert/html"
	maxGotenbergError    = 2048
)

// Chromium fills elements with these classes in header and footer documents.
var gotenbergPageMarkers = strings.NewReplacer(
	`class="page"`, `class="pageNumber"`,
	`class="topage"`, `class="totalPages"`,
)

// GotenbergRasterizer posts documents to a Gotenberg (v8) Chromium route.
type GotenbergRasterizer struct {
	baseURL string
	client  *http.Client
	logger  logger.Interface
}

// NewGotenbergRasterizer uses http.DefaultClient when client is nil; the
// request deadline comes from the context.
func NewGotenbergRasterizer(baseURL string, client *http.Client, logger logger.Interface) *GotenbergRasterizer {
	if client == nil {
		client = http.DefaultClient
	}
	return &GotenbergRasterizer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

func (r *GotenbergRasterizer) Name() string { return "gotenberg" }

func (r *GotenbergRasterizer) Rasterize(ctx context.Context, pages []string, opts RenderOptions) ([]byte, error) {
	if len(pages) != 1 {
		return nil, fmt.Errorf("gotenberg accepts exactly one page document, got %d", len(pages))
	}

	body, contentType, err := gotenbergForm(pages[0], opts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+gotenbergConvertPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build gotenberg request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gotenberg request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxGotenbergError+1))
		return nil, fmt.Errorf("gotenberg returned %d: %s", resp.StatusCode, logutil.TruncateForLog(strings.TrimSpace(string(detail)), maxGotenbergError))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gotenberg response: %w", err)
	}

	r.logger.Debugw("gotenberg conversion finished", "size", len(data))
	return data, nil
}

func gotenbergForm(page string, opts RenderOptions) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	files := []struct {
		name    string
		content string
	}{
		{"index.html", page},
		{"header.html", gotenbergPageMarkers.Replace(opts.HeaderHTML)},
		{"footer.html", gotenbergPageMarkers.Replace(opts.FooterHTML)},
	}
	for _, f := range files {
		if f.content == "" {
			continue
		}
		part, err := w.CreateFormFile("files", f.name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to add %s: %w", f.name, err)
		}
		if _, err := io.WriteString(part, f.content); err != nil {
			return nil, "", fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}

	fields := map[string]string{
		"paperWidth":      "210mm",
		"paperHeight":     "297mm",
		"marginTop":       strconv.Itoa(MarginTopMM) + "mm",
		"marginBottom":    strconv.Itoa(MarginBottomMM) + "mm",
		"marginLeft":      strconv.Itoa(MarginSideMM) + "mm",
		"marginRight":     strconv.Itoa(MarginSideMM) + "mm",
		"landscape":       strconv.FormatBool(opts.Landscape),
		"printBackground": "true",
	}
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

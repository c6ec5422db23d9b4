package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/orris-inc/docforge/internal/shared/logger"
	"github.com/orris-inc/docforge/internal/shared/utils/logutil"
)

// maxStderr bounds the wkhtmltopdf diagnostics carried in errors.
const maxStderr = 2048

// pageNumberScript fills the page and topage spans from the query string
// wkhtmltopdf appends to header and footer documents.
const pageNumberScript = `<script>
function subst() {
  var vars = {};
  var query = document.location.search.substring(1).split('&');
  for (var i = 0; i < query.length; i++) {
    var kv = query[i].split('=', 2);
    vars[kv[0]] = decodeURIComponent(kv[1] || '');
  }
  var keys = ['page', 'topage'];
  for (var k = 0; k < keys.length; k++) {
    var nodes = document.getElementsByClassName(keys[k]);
    for (var n = 0; n < nodes.length; n++) {
      nodes[n].textContent = vars[keys[k]];
    }
  }
}
</script>`

// WkhtmltopdfRasterizer runs the wkhtmltopdf binary on documents written to
// a temporary directory.
type WkhtmltopdfRasterizer struct {
	binary string
	logger logger.Interface
}

func NewWkhtmltopdfRasterizer(binary string, logger logger.Interface) *WkhtmltopdfRasterizer {
	if binary == "" {
		binary = "wkhtmltopdf"
	}
	return &WkhtmltopdfRasterizer{binary: binary, logger: logger}
}

func (r *WkhtmltopdfRasterizer) Name() string { return "wkhtmltopdf" }

func (r *WkhtmltopdfRasterizer) Rasterize(ctx context.Context, pages []string, opts RenderOptions) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to rasterize")
	}

	dir, err := os.MkdirTemp("", "docforge-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(dir)

	args := wkhtmltopdfArgs(opts)

	if opts.HeaderHTML != "" {
		path, err := writeDocument(dir, "header.html", withPageNumbers(opts.HeaderHTML))
		if err != nil {
			return nil, err
		}
		args = append(args, "--header-html", path, "--header-spacing", strconv.Itoa(opts.HeaderSpacing))
	}
	if opts.FooterHTML != "" {
		path, err := writeDocument(dir, "footer.html", withPageNumbers(opts.FooterHTML))
		if err != nil {
			return nil, err
		}
		args = append(args, "--footer-html", path, "--footer-spacing", strconv.Itoa(opts.FooterSpacing))
	}

	for i, page := range pages {
		path, err := writeDocument(dir, fmt.Sprintf("page_%d.html", i), page)
		if err != nil {
			return nil, err
		}
		args = append(args, path)
	}

	output := filepath.Join(dir, "output.pdf")
	args = append(args, output)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stderr = &stderr

	r.logger.Debugw("running wkhtmltopdf", "binary", r.binary, "pages", len(pages))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("wkhtmltopdf interrupted: %w", ctxErr)
		}
		return nil, fmt.Errorf("wkhtmltopdf failed: %w: %s", err, logutil.TruncateForLog(strings.TrimSpace(stderr.String()), maxStderr))
	}

	data, err := os.ReadFile(output)
	if err != nil {
		return nil, fmt.Errorf("failed to read wkhtmltopdf output: %w", err)
	}
	return data, nil
}

func wkhtmltopdfArgs(opts RenderOptions) []string {
	orientation := "Portrait"
	if opts.Landscape {
		orientation = "Landscape"
	}
	mm := func(v int) string { return strconv.Itoa(v) + "mm" }

	return []string{
		"--quiet",
		"--encoding", "utf-8",
		"--page-size", "A4",
		"--orientation", orientation,
		"--margin-top", mm(MarginTopMM),
		"--margin-bottom", mm(MarginBottomMM),
		"--margin-left", mm(MarginSideMM),
		"--margin-right", mm(MarginSideMM),
		"--enable-local-file-access",
	}
}

// withPageNumbers injects the substitution script into a header or footer
// document and runs it on load.
func withPageNumbers(doc string) string {
	if strings.Contains(doc, "</head>") {
		doc = strings.Replace(doc, "</head>", pageNumberScript+"\n</head>", 1)
	} else {
		doc = pageNumberScript + "\n" + doc
	}
	if strings.Contains(doc, "<body>") {
		return strings.Replace(doc, "<body>", `<body onload="subst()">`, 1)
	}
	return doc + "\n<script>subst();</script>"
}

func writeDocument(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

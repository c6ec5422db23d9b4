package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/config"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// RenderOptions are the page-level settings passed to a rasterizer.
type RenderOptions struct {
	Landscape     bool
	HeaderHTML    string
	FooterHTML    string
	HeaderSpacing int
	FooterSpacing int
}

// Rasterizer converts HTML page documents to PDF bytes. Footer and header
// documents may contain <span class="page"></span> and
// <span class="topage"></span>, which the rasterizer replaces with the
// current and total page numbers.
type Rasterizer interface {
	Rasterize(ctx context.Context, pages []string, opts RenderOptions) ([]byte, error)
	Name() string
}

// Options are the layout settings shared by all exports.
type Options struct {
	Landscape     bool
	HeaderSpacing int
	FooterSpacing int
	Timeout       time.Duration
}

// Assembler lays a rendered body out as a branded page and rasterizes it.
type Assembler struct {
	layout     *Layout
	rasterizer Rasterizer
	opts       Options
	logger     logger.Interface
}

func NewAssembler(layout *Layout, rasterizer Rasterizer, opts Options, logger logger.Interface) *Assembler {
	return &Assembler{
		layout:     layout,
		rasterizer: rasterizer,
		opts:       opts,
		logger:     logger,
	}
}

// Assemble implements document.DocumentAssembler. Every failure comes back
// as *document.RenderingFailedError and is not retried.
func (a *Assembler) Assemble(ctx context.Context, bodyHTML string, branding document.Branding) ([]byte, error) {
	docs, err := a.layout.Build(bodyHTML, branding, a.opts.Landscape)
	if err != nil {
		return nil, &document.RenderingFailedError{Cause: err}
	}

	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	data, err := a.rasterizer.Rasterize(ctx, []string{docs.Page}, RenderOptions{
		Landscape:     a.opts.Landscape,
		HeaderHTML:    docs.Header,
		FooterHTML:    docs.Footer,
		HeaderSpacing: a.opts.HeaderSpacing,
		FooterSpacing: a.opts.FooterSpacing,
	})
	if err == nil && len(data) == 0 {
		err = errors.New("rasterizer returned an empty document")
	}
	if err != nil {
		a.logger.Errorw("pdf rasterization failed",
			"rasterizer", a.rasterizer.Name(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return nil, &document.RenderingFailedError{Cause: err}
	}

	a.logger.Infow("pdf rasterized",
		"rasterizer", a.rasterizer.Name(),
		"size", len(data),
		"duration_ms", time.Since(start).Milliseconds())
	return data, nil
}

// NewFromConfig builds the assembler selected by export.rasterizer.
func NewFromConfig(cfg *config.ExportConfig, log logger.Interface) (document.DocumentAssembler, error) {
	log = log.With("component", "pdf")

	if cfg.Rasterizer == config.RasterizerNative {
		native := NewNativeAssembler(cfg.Landscape, log)
		if cfg.FontPath != "" {
			ttf, err := os.ReadFile(cfg.FontPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read export font: %w", err)
			}
			native.WithUTF8Font(ttf)
		}
		return native, nil
	}

	layout, err := NewLayoutLoader(cfg.LayoutDir, log).Load()
	if err != nil {
		return nil, err
	}

	var rasterizer Rasterizer
	switch cfg.Rasterizer {
	case config.RasterizerWkhtmltopdf, "":
		rasterizer = NewWkhtmltopdfRasterizer(cfg.WkhtmltopdfPath, log)
	case config.RasterizerGotenberg:
		rasterizer = NewGotenbergRasterizer(cfg.GotenbergURL, nil, log)
	default:
		return nil, fmt.Errorf("unsupported rasterizer: %s", cfg.Rasterizer)
	}

	return NewAssembler(layout, rasterizer, Options{
		Landscape:     cfg.Landscape,
		HeaderSpacing: cfg.HeaderSpacing,
		FooterSpacing: cfg.FooterSpacing,
		Timeout:       cfg.Timeout,
	}, log), nil
}

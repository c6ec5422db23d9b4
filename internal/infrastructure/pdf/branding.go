package pdf

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/config"
)

// LoadBranding builds the header and footer branding from configuration,
// reading the logo file when one is configured.
func LoadBranding(cfg *config.BrandingConfig) (document.Branding, error) {
	branding := document.Branding{
		Name:    strings.TrimSpace(cfg.CompanyName),
		Address: strings.TrimSpace(cfg.Address),
		Phone:   strings.TrimSpace(cfg.Phone),
	}

	if cfg.LogoPath == "" {
		return branding, nil
	}

	logo, err := os.ReadFile(cfg.LogoPath)
	if err != nil {
		return document.Branding{}, fmt.Errorf("failed to read branding logo: %w", err)
	}
	if ct := http.DetectContentType(logo); !strings.HasPrefix(ct, "image/") {
		return document.Branding{}, fmt.Errorf("branding logo %s is not an image (%s)", cfg.LogoPath, ct)
	}

	branding.LogoBytes = logo
	return branding, nil
}

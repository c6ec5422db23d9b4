// Package document holds the template aggregate and the export pipeline:
// placeholder scanning, variable detection, export sessions and rendering.
package document

import (
	"fmt"
	"strings"
	"time"
)

const (
	MaxTemplateNameLength = 255

	// DefaultPDFFilename is used when a template name yields no usable filename.
	DefaultPDFFilename = "document.pdf"
)

// Template is a reusable document: an HTML body containing placeholders plus
// bookkeeping used by authors.
type Template struct {
	id             uint
	sid            string
	name           string
	summary        string
	body           string
	active         bool
	favorite       bool
	lastArtifactID string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewTemplate creates an active template.
func NewTemplate(name, summary, body string, shortIDGenerator func() (string, error)) (*Template, error) {
	if err := validateTemplateName(name); err != nil {
		return nil, err
	}

	sid, err := shortIDGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to generate template ID: %w", err)
	}

	now := time.Now()
	return &Template{
		sid:       sid,
		name:      strings.TrimSpace(name),
		summary:   summary,
		body:      body,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructTemplate rebuilds a persisted template.
func ReconstructTemplate(
	id uint,
	sid string,
	name string,
	summary string,
	body string,
	active bool,
	favorite bool,
	lastArtifactID string,
	createdAt, updatedAt time.Time,
) (*Template, error) {
	if id == 0 {
		return nil, fmt.Errorf("template ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("template SID is required")
	}

	return &Template{
		id:             id,
		sid:            sid,
		name:           name,
		summary:        summary,
		body:           body,
		active:         active,
		favorite:       favorite,
		lastArtifactID: lastArtifactID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func validateTemplateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("template name is required")
	}
	if len(name) > MaxTemplateNameLength {
		return fmt.Errorf("template name exceeds maximum length of %d characters", MaxTemplateNameLength)
	}
	return nil
}

func (t *Template) ID() uint { return t.id }
func (t *Template) SID() string { return t.sid }
func (t *Template) Name() string { return t.name }
func (t *Template) Summary() string { return t.summary }
func (t *Template) Body() string { return t.body }
func (t *Template) Active() bool { return t.active }
func (t *Template) Favorite() bool { return t.favorite }
func (t *Template) LastArtifactID() string { return t.lastArtifactID }
func (t *Template) CreatedAt() time.Time { return t.createdAt }
func (t *Template) UpdatedAt() time.Time { return t.updatedAt }

func (t *Template) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("template ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("template ID cannot be zero")
	}
	t.id = id
	return nil
}

// HasContent reports whether the body holds anything besides whitespace.
func (t *Template) HasContent() bool {
	return strings.TrimSpace(t.body) != ""
}

// HasPDF reports whether a generated PDF has been recorded.
func (t *Template) HasPDF() bool {
	return t.lastArtifactID != ""
}

// PDFFilename is the download name for PDFs of this template.
func (t *Template) PDFFilename() string {
	if strings.TrimSpace(t.name) == "" {
		return DefaultPDFFilename
	}
	return SafeFilename(t.name)
}

func (t *Template) Rename(name string) error {
	if err := validateTemplateName(name); err != nil {
		return err
	}
	t.name = strings.TrimSpace(name)
	t.touch()
	return nil
}

func (t *Template) SetSummary(summary string) {
	t.summary = summary
	t.touch()
}

func (t *Template) SetBody(body string) {
	t.body = body
	t.touch()
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (t *Template) ToggleFavorite() bool {
	t.favorite = !t.favorite
	t.touch()
	return t.favorite
}

func (t *Template) Archive() {
	t.active = false
	t.touch()
}

func (t *Template) Restore() {
	t.active = true
	t.touch()
}

// RecordGeneratedPDF remembers the artifact holding the latest export.
func (t *Template) RecordGeneratedPDF(artifactID string) {
	t.lastArtifactID = artifactID
	t.touch()
}

// Duplicate returns an unsaved copy named "<name> (Copy)". The copy keeps
// the body and summary but not the favorite flag or the generated PDF.
func (t *Template) Duplicate(shortIDGenerator func() (string, error)) (*Template, error) {
	const suffix = " (Copy)"
	base := t.name
	if len(base)+len(suffix) > MaxTemplateNameLength {
		base = strings.ToValidUTF8(base[:MaxTemplateNameLength-len(suffix)], "")
	}
	return NewTemplate(base+suffix, t.summary, t.body, shortIDGenerator)
}

func (t *Template) touch() {
	t.updatedAt = time.Now()
}

// SafeFilename replaces path separators with "-" and makes sure the name ends
// in ".pdf". A blank name becomes DefaultPDFFilename.
func SafeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPDFFilename
	}
	name = strings.NewReplacer("/", "-", `\`, "-").Replace(name)
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

// Package artifact models stored binary outputs such as generated PDFs.
package artifact

import (
	"fmt"
	"strings"
	"time"
)

const MimeTypePDF = "application/pdf"

// Artifact is an immutable blob with a name and a mimetype.
type Artifact struct {
	id         uint
	sid        string
	name       string
	mimetype   string
	data       []byte
	templateID uint
	createdAt  time.Time
}

func NewArtifact(name, mimetype string, data []byte, templateID uint, shortIDGenerator func() (string, error)) (*Artifact, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("artifact name is required")
	}
	if mimetype == "" {
		return nil, fmt.Errorf("artifact mimetype is required")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("artifact data is empty")
	}

	sid, err := shortIDGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to generate artifact ID: %w", err)
	}

	return &Artifact{
		sid:        sid,
		name:       name,
		mimetype:   mimetype,
		data:       data,
		templateID: templateID,
		createdAt:  time.Now(),
	}, nil
}

func ReconstructArtifact(id uint, sid, name, mimetype string, data []byte, templateID uint, createdAt time.Time) (*Artifact, error) {
	if id == 0 {
		return nil, fmt.Errorf("artifact ID cannot be zero")
	}
	return &Artifact{
		id:         id,
		sid:        sid,
		name:       name,
		mimetype:   mimetype,
		data:       data,
		templateID: templateID,
		createdAt:  createdAt,
	}, nil
}

func (a *Artifact) ID() uint             { return a.id }
func (a *Artifact) SID() string          { return a.sid }
func (a *Artifact) Name() string         { return a.name }
func (a *Artifact) Mimetype() string     { return a.mimetype }
func (a *Artifact) Data() []byte         { return a.data }
func (a *Artifact) Size() int            { return len(a.data) }
func (a *Artifact) TemplateID() uint     { return a.templateID }
func (a *Artifact) CreatedAt() time.Time { return a.createdAt }

func (a *Artifact) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("artifact ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("artifact ID cannot be zero")
	}
	a.id = id
	return nil
}

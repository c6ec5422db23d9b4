package dto

import (
	"time"

	"github.com/orris-inc/docforge/internal/domain/artifact"
	"github.com/orris-inc/docforge/internal/domain/document"
)

type TemplateDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Summary        string    `json:"summary"`
	SummaryHTML    string    `json:"summary_html,omitempty"`
	Body           string    `json:"body"`
	Active         bool      `json:"active"`
	Favorite       bool      `json:"favorite"`
	VariableCount  int       `json:"variable_count"`
	HasPDF         bool      `json:"has_pdf"`
	PDFFilename    string    `json:"pdf_filename"`
	LastArtifactID string    `json:"last_artifact_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type VariableDTO struct {
	ID             string    `json:"id"`
	TemplateID     string    `json:"template_id"`
	Name           string    `json:"name"`
	Label          string    `json:"label"`
	Type           string    `json:"type"`
	DefaultValue   string    `json:"default_value"`
	Required       bool      `json:"required"`
	Order          int       `json:"order"`
	SelectOptions  []string  `json:"select_options"`
	PlaceholderTag string    `json:"placeholder_tag"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type NotificationDTO struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type DetectionResultDTO struct {
	CreatedCount int             `json:"created_count"`
	Created      []*VariableDTO  `json:"created"`
	Notification NotificationDTO `json:"notification"`
}

type ExportLineDTO struct {
	Name          string   `json:"name"`
	Label         string   `json:"label"`
	Type          string   `json:"type"`
	Required      bool     `json:"required"`
	SelectOptions []string `json:"select_options,omitempty"`
	Value         string   `json:"value"`
}

type ExportSessionDTO struct {
	ID           string          `json:"id"`
	TemplateID   string          `json:"template_id"`
	TemplateName string          `json:"template_name"`
	Lines        []ExportLineDTO `json:"lines"`
	CreatedAt    time.Time       `json:"created_at"`
}

type PreviewDTO struct {
	SessionID     string `json:"session_id"`
	Preview       string `json:"preview"`
	SanitizedHTML string `json:"sanitized_html"`
}

type ValidationResultDTO struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing"`
}

type ArtifactDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Mimetype    string    `json:"mimetype"`
	Size        int       `json:"size"`
	DownloadURL string    `json:"download_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExportResultDTO is returned when an export starts. Exactly one of Session
// and Artifact is set: templates without variables are generated at once.
type ExportResultDTO struct {
	Session  *ExportSessionDTO `json:"session,omitempty"`
	Artifact *ArtifactDTO      `json:"artifact,omitempty"`
}

type GeneratedPDFDTO struct {
	ArtifactID  string `json:"artifact_id"`
	Filename    string `json:"filename"`
	Size        int    `json:"size"`
	DownloadURL string `json:"download_url"`
	PDFBase64   string `json:"pdf_base64,omitempty"`
}

func ToTemplateDTO(t *document.Template, variableCount int) *TemplateDTO {
	if t == nil {
		return nil
	}

	return &TemplateDTO{
		ID:             t.SID(),
		Name:           t.Name(),
		Summary:        t.Summary(),
		Body:           t.Body(),
		Active:         t.Active(),
		Favorite:       t.Favorite(),
		VariableCount:  variableCount,
		HasPDF:         t.HasPDF(),
		PDFFilename:    t.PDFFilename(),
		LastArtifactID: t.LastArtifactID(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
}

// ToVariableDTO maps v; templateSID is the public ID of the owning template.
func ToVariableDTO(v *document.VariableDefinition, templateSID string) *VariableDTO {
	if v == nil {
		return nil
	}

	options := v.SelectOptions()
	if options == nil {
		options = []string{}
	}

	return &VariableDTO{
		ID:             v.SID(),
		TemplateID:     templateSID,
		Name:           v.Name(),
		Label:          v.Label(),
		Type:           v.Type().String(),
		DefaultValue:   v.DefaultValue(),
		Required:       v.Required(),
		Order:          v.Order(),
		SelectOptions:  options,
		PlaceholderTag: v.PlaceholderTag(),
		CreatedAt:      v.CreatedAt(),
		UpdatedAt:      v.UpdatedAt(),
	}
}

func ToVariableDTOList(vars []*document.VariableDefinition, templateSID string) []*VariableDTO {
	out := make([]*VariableDTO, 0, len(vars))
	for _, v := range vars {
		out = append(out, ToVariableDTO(v, templateSID))
	}
	return out
}

func ToExportSessionDTO(s *document.ExportSession) *ExportSessionDTO {
	if s == nil {
		return nil
	}

	lines := s.Lines()
	out := make([]ExportLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, ExportLineDTO{
			Name:          l.Name,
			Label:         l.Label,
			Type:          l.Type.String(),
			Required:      l.Required,
			SelectOptions: l.SelectOptions,
			Value:         l.Value,
		})
	}

	return &ExportSessionDTO{
		ID:           s.ID(),
		TemplateID:   s.TemplateSID(),
		TemplateName: s.TemplateName(),
		Lines:        out,
		CreatedAt:    s.CreatedAt(),
	}
}

func ToArtifactDTO(a *artifact.Artifact, downloadURL string) *ArtifactDTO {
	if a == nil {
		return nil
	}

	return &ArtifactDTO{
		ID:          a.SID(),
		Name:        a.Name(),
		Mimetype:    a.Mimetype(),
		Size:        a.Size(),
		DownloadURL: downloadURL,
		CreatedAt:   a.CreatedAt(),
	}
}

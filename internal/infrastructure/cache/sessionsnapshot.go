package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/orris-inc/docforge/internal/domain/document"
	vo "github.com/orris-inc/docforge/internal/domain/document/valueobjects"
)

// sessionSnapshot is the stored form of an export session.
type sessionSnapshot struct {
	ID           string            `json:"id"`
	TemplateID   uint              `json:"template_id"`
	TemplateSID  string            `json:"template_sid"`
	TemplateName string            `json:"template_name"`
	Body         string            `json:"body"`
	Lines        []lineSnapshot    `json:"lines"`
	Extra        map[string]string `json:"extra,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

type lineSnapshot struct {
	Name          string   `json:"name"`
	Label         string   `json:"label"`
	Type          string   `json:"type"`
	Required      bool     `json:"required"`
	SelectOptions []string `json:"select_options,omitempty"`
	Value         string   `json:"value"`
}

func encodeSession(s *document.ExportSession) ([]byte, error) {
	lines := s.Lines()
	snap := sessionSnapshot{
		ID:           s.ID(),
		TemplateID:   s.TemplateID(),
		TemplateSID:  s.TemplateSID(),
		TemplateName: s.TemplateName(),
		Body:         s.Body(),
		Lines:        make([]lineSnapshot, len(lines)),
		Extra:        s.ExtraValues(),
		CreatedAt:    s.CreatedAt(),
	}
	for i, l := range lines {
		snap.Lines[i] = lineSnapshot{
			Name:          l.Name,
			Label:         l.Label,
			Type:          l.Type.String(),
			Required:      l.Required,
			SelectOptions: l.SelectOptions,
			Value:         l.Value,
		}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (*document.ExportSession, error) {
	var snap sessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal export session: %w", err)
	}

	lines := make([]document.ExportLine, len(snap.Lines))
	for i, l := range snap.Lines {
		lines[i] = document.ExportLine{
			Name:          l.Name,
			Label:         l.Label,
			Type:          vo.VariableType(l.Type),
			Required:      l.Required,
			SelectOptions: l.SelectOptions,
			Value:         l.Value,
		}
	}

	return document.ReconstructExportSession(
		snap.ID,
		snap.TemplateID,
		snap.TemplateSID,
		snap.TemplateName,
		snap.Body,
		lines,
		snap.Extra,
		snap.CreatedAt,
	), nil
}

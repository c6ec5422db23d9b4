package mappers

import (
	"fmt"

	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/infrastructure/persistence/models"
)

// TemplateMapper handles the conversion between templates and persistence models.
type TemplateMapper interface {
	ToModel(t *document.Template) *models.DocumentTemplateModel
	ToEntity(model *models.DocumentTemplateModel) (*document.Template, error)
	ToEntities(models []*models.DocumentTemplateModel) ([]*document.Template, error)
}

type TemplateMapperImpl struct{}

func NewTemplateMapper() TemplateMapper {
	return &TemplateMapperImpl{}
}

func (m *TemplateMapperImpl) ToModel(t *document.Template) *models.DocumentTemplateModel {
	if t == nil {
		return nil
	}
	return &models.DocumentTemplateModel{
		ID:             t.ID(),
		SID:            t.SID(),
		Name:           t.Name(),
		Summary:        t.Summary(),
		Body:           t.Body(),
		Active:         t.Active(),
		Favorite:       t.Favorite(),
		LastArtifactID: t.LastArtifactID(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
}

func (m *TemplateMapperImpl) ToEntity(model *models.DocumentTemplateModel) (*document.Template, error) {
	if model == nil {
		return nil, nil
	}

	t, err := document.ReconstructTemplate(
		model.ID,
		model.SID,
		model.Name,
		model.Summary,
		model.Body,
		model.Active,
		model.Favorite,
		model.LastArtifactID,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct template %d: %w", model.ID, err)
	}
	return t, nil
}

func (m *TemplateMapperImpl) ToEntities(list []*models.DocumentTemplateModel) ([]*document.Template, error) {
	templates := make([]*document.Template, 0, len(list))
	for _, model := range list {
		t, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

package mappers

import (
	"fmt"

	"github.com/orris-inc/docforge/internal/domain/artifact"
	"github.com/orris-inc/docforge/internal/infrastructure/persistence/models"
)

type ArtifactMapper interface {
	ToModel(a *artifact.Artifact) *models.ArtifactModel
	ToEntity(model *models.ArtifactModel) (*artifact.Artifact, error)
}

type ArtifactMapperImpl struct{}

func NewArtifactMapper() ArtifactMapper {
	return &ArtifactMapperImpl{}
}

func (m *ArtifactMapperImpl) ToModel(a *artifact.Artifact) *models.ArtifactModel {
	if a == nil {
		return nil
	}
	return &models.ArtifactModel{
		ID:         a.ID(),
		SID:        a.SID(),
		Name:       a.Name(),
		Mimetype:   a.Mimetype(),
		Size:       int64(a.Size()),
		Data:       a.Data(),
		TemplateID: a.TemplateID(),
		CreatedAt:  a.CreatedAt(),
	}
}

func (m *ArtifactMapperImpl) ToEntity(model *models.ArtifactModel) (*artifact.Artifact, error) {
	if model == nil {
		return nil, nil
	}
	a, err := artifact.ReconstructArtifact(model.ID, model.SID, model.Name, model.Mimetype, model.Data, model.TemplateID, model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct artifact %d: %w", model.ID, err)
	}
	return a, nil
}

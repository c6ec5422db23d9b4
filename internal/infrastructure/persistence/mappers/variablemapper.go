package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/orris-inc/docforge/internal/domain/document"
	vo "github.com/orris-inc/docforge/internal/domain/document/valueobjects"
	"github.com/orris-inc/docforge/internal/infrastructure/persistence/models"
)

// VariableMapper handles the conversion between variable definitions and
// persistence models. Select options are stored as a JSON array.
type VariableMapper interface {
	ToModel(v *document.VariableDefinition) (*models.TemplateVariableModel, error)
	ToEntity(model *models.TemplateVariableModel) (*document.VariableDefinition, error)
	ToEntities(models []*models.TemplateVariableModel) ([]*document.VariableDefinition, error)
}

type VariableMapperImpl struct{}

func NewVariableMapper() VariableMapper {
	return &VariableMapperImpl{}
}

func (m *VariableMapperImpl) ToModel(v *document.VariableDefinition) (*models.TemplateVariableModel, error) {
	if v == nil {
		return nil, nil
	}

	var options datatypes.JSON
	if opts := v.SelectOptions(); len(opts) > 0 {
		raw, err := json.Marshal(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal select options: %w", err)
		}
		options = datatypes.JSON(raw)
	}

	return &models.TemplateVariableModel{
		ID:            v.ID(),
		SID:           v.SID(),
		TemplateID:    v.TemplateID(),
		Name:          v.Name(),
		Label:         v.Label(),
		VariableType:  v.Type().String(),
		DefaultValue:  v.DefaultValue(),
		Required:      v.Required(),
		SortOrder:     v.Order(),
		SelectOptions: options,
		CreatedAt:     v.CreatedAt(),
		UpdatedAt:     v.UpdatedAt(),
	}, nil
}

func (m *VariableMapperImpl) ToEntity(model *models.TemplateVariableModel) (*document.VariableDefinition, error) {
	if model == nil {
		return nil, nil
	}

	var options []string
	if len(model.SelectOptions) > 0 {
		if err := json.Unmarshal(model.SelectOptions, &options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal select options of variable %d: %w", model.ID, err)
		}
	}

	v, err := document.ReconstructVariableDefinition(model.ID, model.SID, document.VariableParams{
		TemplateID:    model.TemplateID,
		Name:          model.Name,
		Label:         model.Label,
		Type:          vo.VariableType(model.VariableType),
		DefaultValue:  model.DefaultValue,
		Required:      model.Required,
		Order:         model.SortOrder,
		SelectOptions: options,
	}, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct variable %d: %w", model.ID, err)
	}
	return v, nil
}

func (m *VariableMapperImpl) ToEntities(list []*models.TemplateVariableModel) ([]*document.VariableDefinition, error) {
	vars := make([]*document.VariableDefinition, 0, len(list))
	for _, model := range list {
		v, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/docforge/internal/infrastructure/persistence/models"
	"github.com/orris-inc/docforge/internal/shared/db"
	apperrors "github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

type VariableRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.VariableMapper
	logger logger.Interface
}

func NewVariableRepository(db *gorm.DB, logger logger.Interface) document.VariableRepository {
	return &VariableRepositoryImpl{
		db:     db,
		mapper: mappers.NewVariableMapper(),
		logger: logger,
	}
}

func (r *VariableRepositoryImpl) Create(ctx context.Context, v *document.VariableDefinition) error {
	return r.CreateBatch(ctx, []*document.VariableDefinition{v})
}

// CreateBatch checks every name against the template's existing variables
// and inserts the batch in one transaction. The composite unique index
// catches names raced in by a concurrent writer.
func (r *VariableRepositoryImpl) CreateBatch(ctx context.Context, vars []*document.VariableDefinition) error {
	if len(vars) == 0 {
		return nil
	}

	list := make([]*models.TemplateVariableModel, 0, len(vars))
	for _, v := range vars {
		model, err := r.mapper.ToModel(v)
		if err != nil {
			return err
		}
		list = append(list, model)
	}

	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		seen := make(map[uint]map[string]bool)
		for _, model := range list {
			if seen[model.TemplateID] == nil {
				seen[model.TemplateID] = make(map[string]bool)
			}
			if seen[model.TemplateID][model.Name] {
				return r.duplicateError(tx, model)
			}
			seen[model.TemplateID][model.Name] = true

			var count int64
			if err := tx.Model(&models.TemplateVariableModel{}).
				Where("template_id = ? AND name = ?", model.TemplateID, model.Name).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check variable name: %w", err)
			}
			if count > 0 {
				return r.duplicateError(tx, model)
			}
		}

		if err := tx.Create(&list).Error; err != nil {
			if apperrors.IsDuplicateError(err) {
				return r.duplicateError(tx, list[0])
			}
			return fmt.Errorf("failed to create variables: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to create template variables", "error", err, "count", len(vars))
		return err
	}

	for i, v := range vars {
		if err := v.SetID(list[i].ID); err != nil {
			return err
		}
	}

	r.logger.Infow("template variables created successfully", "count", len(vars), "template_id", vars[0].TemplateID())
	return nil
}

func (r *VariableRepositoryImpl) duplicateError(tx *gorm.DB, model *models.TemplateVariableModel) error {
	var templateSID string
	tx.Model(&models.DocumentTemplateModel{}).
		Where("id = ?", model.TemplateID).
		Pluck("sid", &templateSID)
	return &document.DuplicateVariableNameError{TemplateID: templateSID, Name: model.Name}
}

func (r *VariableRepositoryImpl) Update(ctx context.Context, v *document.VariableDefinition) error {
	model, err := r.mapper.ToModel(v)
	if err != nil {
		return err
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.TemplateVariableModel{}).
		Where("id = ?", v.ID()).
		Updates(map[string]interface{}{
			"label":          model.Label,
			"variable_type":  model.VariableType,
			"default_value":  model.DefaultValue,
			"required":       model.Required,
			"sort_order":     model.SortOrder,
			"select_options": model.SelectOptions,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update template variable", "error", result.Error, "id", v.ID())
		return fmt.Errorf("failed to update template variable: %w", result.Error)
	}
	return nil
}

func (r *VariableRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.TemplateVariableModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete template variable", "error", result.Error, "id", id)
		return fmt.Errorf("failed to delete template variable: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("variable not found")
	}

	r.logger.Infow("template variable deleted successfully", "id", id)
	return nil
}

func (r *VariableRepositoryImpl) GetBySID(ctx context.Context, sid string) (*document.VariableDefinition, error) {
	var model models.TemplateVariableModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get template variable by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get template variable: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *VariableRepositoryImpl) ListByTemplate(ctx context.Context, templateID uint) ([]*document.VariableDefinition, error) {
	var list []*models.TemplateVariableModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("template_id = ?", templateID).
		Order("sort_order ASC, id ASC").
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list template variables", "error", err, "template_id", templateID)
		return nil, fmt.Errorf("failed to list template variables: %w", err)
	}
	return r.mapper.ToEntities(list)
}

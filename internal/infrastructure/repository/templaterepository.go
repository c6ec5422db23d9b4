package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/docforge/internal/infrastructure/persistence/models"
	"github.com/orris-inc/docforge/internal/shared/db"
	apperrors "github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/logger"
	"github.com/orris-inc/docforge/internal/shared/query"
)

type TemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TemplateMapper
	logger logger.Interface
}

func NewTemplateRepository(db *gorm.DB, logger logger.Interface) document.TemplateRepository {
	return &TemplateRepositoryImpl{
		db:     db,
		mapper: mappers.NewTemplateMapper(),
		logger: logger,
	}
}

func (r *TemplateRepositoryImpl) Create(ctx context.Context, t *document.Template) error {
	model := r.mapper.ToModel(t)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create template", "error", err, "sid", t.SID())
		return fmt.Errorf("failed to create template: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("template created successfully", "id", model.ID, "sid", t.SID())
	return nil
}

func (r *TemplateRepositoryImpl) Update(ctx context.Context, t *document.Template) error {
	model := r.mapper.ToModel(t)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.DocumentTemplateModel{}).
		Where("id = ?", t.ID()).
		Updates(map[string]interface{}{
			"name":             model.Name,
			"summary":          model.Summary,
			"body":             model.Body,
			"active":           model.Active,
			"favorite":         model.Favorite,
			"last_artifact_id": model.LastArtifactID,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update template", "error", result.Error, "id", t.ID())
		return fmt.Errorf("failed to update template: %w", result.Error)
	}

	// RowsAffected may be 0 when the stored values are identical.
	return nil
}

func (r *TemplateRepositoryImpl) Delete(ctx context.Context, id uint) error {
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&models.TemplateVariableModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete template variables: %w", err)
		}

		result := tx.Delete(&models.DocumentTemplateModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete template: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NewNotFoundError("template not found")
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to delete template", "error", err, "id", id)
		return err
	}

	r.logger.Infow("template deleted successfully", "id", id)
	return nil
}

func (r *TemplateRepositoryImpl) GetByID(ctx context.Context, id uint) (*document.Template, error) {
	var model models.DocumentTemplateModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get template by ID", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *TemplateRepositoryImpl) GetBySID(ctx context.Context, sid string) (*document.Template, error) {
	var model models.DocumentTemplateModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get template by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get template by SID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *TemplateRepositoryImpl) List(ctx context.Context, filter document.TemplateFilter) ([]*document.Template, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.DocumentTemplateModel{})

	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}
	if filter.Favorite != nil {
		q = q.Where("favorite = ?", *filter.Favorite)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count templates", "error", err)
		return nil, 0, fmt.Errorf("failed to count templates: %w", err)
	}

	page := query.PageFilter{Page: filter.Page, PageSize: filter.PageSize}

	var list []*models.DocumentTemplateModel
	if err := q.Order("updated_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list templates", "error", err)
		return nil, 0, fmt.Errorf("failed to list templates: %w", err)
	}

	templates, err := r.mapper.ToEntities(list)
	if err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

func (r *TemplateRepositoryImpl) CountVariables(ctx context.Context, templateIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(templateIDs))
	if len(templateIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		TemplateID uint
		Total      int
	}
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TemplateVariableModel{}).
		Select("template_id, COUNT(*) AS total").
		Where("template_id IN ?", templateIDs).
		Group("template_id").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to count template variables", "error", err)
		return nil, fmt.Errorf("failed to count template variables: %w", err)
	}

	for _, row := range rows {
		counts[row.TemplateID] = row.Total
	}
	return counts, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/docforge/internal/domain/artifact"
	"github.com/orris-inc/docforge/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/docforge/internal/infrastructure/persistence/models"
	"github.com/orris-inc/docforge/internal/shared/db"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

type ArtifactRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ArtifactMapper
	logger logger.Interface
}

func NewArtifactRepository(db *gorm.DB, logger logger.Interface) artifact.Repository {
	return &ArtifactRepositoryImpl{
		db:     db,
		mapper: mappers.NewArtifactMapper(),
		logger: logger,
	}
}

func (r *ArtifactRepositoryImpl) Create(ctx context.Context, a *artifact.Artifact) error {
	model := r.mapper.ToModel(a)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create artifact", "error", err, "sid", a.SID())
		return fmt.Errorf("failed to create artifact: %w", err)
	}

	if err := a.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("artifact stored", "sid", a.SID(), "size", model.Size, "template_id", a.TemplateID())
	return nil
}

func (r *ArtifactRepositoryImpl) GetBySID(ctx context.Context, sid string) (*artifact.Artifact, error) {
	var model models.ArtifactModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get artifact by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get artifact: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ArtifactRepositoryImpl) DeleteByTemplate(ctx context.Context, templateID uint) error {
	result := db.GetTxFromContext(ctx, r.db).Where("template_id = ?", templateID).Delete(&models.ArtifactModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete template artifacts", "error", result.Error, "template_id", templateID)
		return fmt.Errorf("failed to delete template artifacts: %w", result.Error)
	}

	r.logger.Infow("template artifacts deleted", "template_id", templateID, "count", result.RowsAffected)
	return nil
}

func (r *ArtifactRepositoryImpl) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("created_at < ?", cutoff).Delete(&models.ArtifactModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete expired artifacts", "error", result.Error, "cutoff", cutoff)
		return 0, fmt.Errorf("failed to delete expired artifacts: %w", result.Error)
	}
	return result.RowsAffected, nil
}

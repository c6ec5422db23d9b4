package usecases

import (
	"context"

	"github.com/orris-inc/docforge/internal/application/document/dto"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

type ToggleFavoriteCommand struct {
	TemplateID string
}

type ToggleFavoriteUseCase struct {
	templateRepo document.TemplateRepository
	logger       logger.Interface
}

func NewToggleFavoriteUseCase(
	templateRepo document.TemplateRepository,
	logger logger.Interface,
) *ToggleFavoriteUseCase {
	return &ToggleFavoriteUseCase{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

func (uc *ToggleFavoriteUseCase) Execute(ctx context.Context, cmd ToggleFavoriteCommand) (*dto.TemplateDTO, error) {
	tpl, err := loadTemplate(ctx, uc.templateRepo, cmd.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}

	favorite := tpl.ToggleFavorite()
	if err := uc.templateRepo.Update(ctx, tpl); err != nil {
		uc.logger.Errorw("failed to toggle favorite", "template_id", tpl.SID(), "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("template favorite toggled", "template_id", tpl.SID(), "favorite", favorite)
	result, err := templateDTO(ctx, uc.templateRepo, tpl)
	if err != nil {
		return nil, toAppError(err)
	}
	return result, nil
}

type SetTemplateActiveCommand struct {
	TemplateID string
	Active     bool
}

// SetTemplateActiveUseCase archives or restores a template.
type SetTemplateActiveUseCase struct {
	templateRepo document.TemplateRepository
	logger       logger.Interface
}

func NewSetTemplateActiveUseCase(
	templateRepo document.TemplateRepository,
	logger logger.Interface,
) *SetTemplateActiveUseCase {
	return &SetTemplateActiveUseCase{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

func (uc *SetTemplateActiveUseCase) Execute(ctx context.Context, cmd SetTemplateActiveCommand) (*dto.TemplateDTO, error) {
	tpl, err := loadTemplate(ctx, uc.templateRepo, cmd.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}

	if cmd.Active {
		tpl.Restore()
	} else {
		tpl.Archive()
	}

	if err := uc.templateRepo.Update(ctx, tpl); err != nil {
		uc.logger.Errorw("failed to change template state", "template_id", tpl.SID(), "active", cmd.Active, "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("template state changed", "template_id", tpl.SID(), "active", cmd.Active)
	result, err := templateDTO(ctx, uc.templateRepo, tpl)
	if err != nil {
		return nil, toAppError(err)
	}
	return result, nil
}

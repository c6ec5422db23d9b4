package usecases

import (
	"context"

	"github.com/orris-inc/docforge/internal/application/document/dto"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// UpdateTemplateCommand changes only the fields that are set.
type UpdateTemplateCommand struct {
	TemplateID string
	Name       *string
	Summary    *string
	Body       *string
}

type UpdateTemplateUseCase struct {
	templateRepo document.TemplateRepository
	logger       logger.Interface
}

func NewUpdateTemplateUseCase(
	templateRepo document.TemplateRepository,
	logger logger.Interface,
) *UpdateTemplateUseCase {
	return &UpdateTemplateUseCase{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

func (uc *UpdateTemplateUseCase) Execute(ctx context.Context, cmd UpdateTemplateCommand) (*dto.TemplateDTO, error) {
	uc.logger.Infow("executing update template use case", "template_id", cmd.TemplateID)

	if cmd.Name == nil && cmd.Summary == nil && cmd.Body == nil {
		return nil, errors.NewValidationError("no fields to update")
	}

	tpl, err := loadTemplate(ctx, uc.templateRepo, cmd.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}

	if cmd.Name != nil {
		if err := tpl.Rename(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Summary != nil {
		tpl.SetSummary(*cmd.Summary)
	}
	if cmd.Body != nil {
		tpl.SetBody(*cmd.Body)
	}

	if err := uc.templateRepo.Update(ctx, tpl); err != nil {
		uc.logger.Errorw("failed to update template", "template_id", tpl.SID(), "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("template updated successfully", "template_id", tpl.SID())

	result, err := templateDTO(ctx, uc.templateRepo, tpl)
	if err != nil {
		return nil, toAppError(err)
	}
	return result, nil
}

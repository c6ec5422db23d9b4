package usecases

import (
	"context"

	"github.com/orris-inc/docforge/internal/application/document/dto"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/id"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

type DuplicateTemplateCommand struct {
	TemplateID string
}

type DuplicateTemplateUseCase struct {
	templateRepo document.TemplateRepository
	variableRepo document.VariableRepository
	txManager    TransactionRunner
	logger       logger.Interface
}

func NewDuplicateTemplateUseCase(
	templateRepo document.TemplateRepository,
	variableRepo document.VariableRepository,
	txManager TransactionRunner,
	logger logger.Interface,
) *DuplicateTemplateUseCase {
	return &DuplicateTemplateUseCase{
		templateRepo: templateRepo,
		variableRepo: variableRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute copies the template and all of its variables. The copy has no
// generated PDF and is not a favorite.
func (uc *DuplicateTemplateUseCase) Execute(ctx context.Context, cmd DuplicateTemplateCommand) (*dto.TemplateDTO, error) {
	uc.logger.Infow("executing duplicate template use case", "template_id", cmd.TemplateID)

	source, err := loadTemplate(ctx, uc.templateRepo, cmd.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}

	variables, err := uc.variableRepo.ListByTemplate(ctx, source.ID())
	if err != nil {
		return nil, toAppError(err)
	}

	copied, err := source.Duplicate(id.NewTemplateID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.templateRepo.Create(ctx, copied); err != nil {
			return err
		}
		if len(variables) == 0 {
			return nil
		}

		clones := make([]*document.VariableDefinition, 0, len(variables))
		for _, v := range variables {
			c, err := v.CopyTo(copied.ID(), id.NewVariableID)
			if err != nil {
				return err
			}
			clones = append(clones, c)
		}
		return uc.variableRepo.CreateBatch(ctx, clones)
	})
	if err != nil {
		uc.logger.Errorw("failed to duplicate template", "template_id", source.SID(), "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("template duplicated successfully",
		"template_id", source.SID(),
		"copy_id", copied.SID(),
		"variable_count", len(variables),
	)

	return dto.ToTemplateDTO(copied, len(variables)), nil
}

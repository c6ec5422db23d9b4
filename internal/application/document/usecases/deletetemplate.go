package usecases

import (
	"context"

	"github.com/orris-inc/docforge/internal/domain/artifact"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// TransactionRunner runs fn inside one storage transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type DeleteTemplateCommand struct {
	TemplateID string
}

type DeleteTemplateUseCase struct {
	templateRepo document.TemplateRepository
	artifactRepo artifact.Repository
	txManager    TransactionRunner
	logger       logger.Interface
}

func NewDeleteTemplateUseCase(
	templateRepo document.TemplateRepository,
	artifactRepo artifact.Repository,
	txManager TransactionRunner,
	logger logger.Interface,
) *DeleteTemplateUseCase {
	return &DeleteTemplateUseCase{
		templateRepo: templateRepo,
		artifactRepo: artifactRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute removes the template together with its variables and artifacts.
func (uc *DeleteTemplateUseCase) Execute(ctx context.Context, cmd DeleteTemplateCommand) error {
	uc.logger.Infow("executing delete template use case", "template_id", cmd.TemplateID)

	tpl, err := loadTemplate(ctx, uc.templateRepo, cmd.TemplateID)
	if err != nil {
		return toAppError(err)
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.artifactRepo.DeleteByTemplate(ctx, tpl.ID()); err != nil {
			return err
		}
		return uc.templateRepo.Delete(ctx, tpl.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete template", "template_id", tpl.SID(), "error", err)
		return toAppError(err)
	}

	uc.logger.Infow("template deleted successfully", "template_id", tpl.SID())
	return nil
}

package usecases

import (
	"context"
	"strings"

	"github.com/orris-inc/docforge/internal/application/document/dto"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/id"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// CreateTemplateCommand creates a template, optionally together with its
// variables.
type CreateTemplateCommand struct {
	Name      string
	Summary   string
	Body      string
	Variables []VariableInput
}

type CreateTemplateUseCase struct {
	templateRepo document.TemplateRepository
	variableRepo document.VariableRepository
	txManager    TransactionRunner
	logger       logger.Interface
}

func NewCreateTemplateUseCase(
	templateRepo document.TemplateRepository,
	variableRepo document.VariableRepository,
	txManager TransactionRunner,
	logger logger.Interface,
) *CreateTemplateUseCase {
	return &CreateTemplateUseCase{
		templateRepo: templateRepo,
		variableRepo: variableRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute saves the template and its inline variables in one transaction.
func (uc *CreateTemplateUseCase) Execute(ctx context.Context, cmd CreateTemplateCommand) (*dto.TemplateDTO, error) {
	uc.logger.Infow("executing create template use case", "name", cmd.Name, "variable_count", len(cmd.Variables))

	if strings.TrimSpace(cmd.Body) == "" {
		return nil, errors.NewValidationError("Template content is required").WithFields([]string{"body"})
	}

	tpl, err := document.NewTemplate(cmd.Name, cmd.Summary, cmd.Body, id.NewTemplateID)
	if err != nil {
		uc.logger.Errorw("invalid create template command", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	err =uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.templateRepo.Create(ctx, tpl); err != nil {
			return err
		}
		if len(cmd.Variables) == 0 {
			return nil
		}

		vars := make([]*document.VariableDefinition, 0, len(cmd.Variables))
		for _, in := range cmd.Variables {
			v, err := newVariable(tpl.ID(), in)
			if err != nil {
				return err
			}
			vars = append(vars, v)
		}
		return uc.variableRepo.CreateBatch(ctx, vars)
	})
	if err != nil {
		uc.logger.Errorw("failed to save template", "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("template created successfully", "template_id", tpl.SID(), "variable_count", len(cmd.Variables))

	return dto.ToTemplateDTO(tpl, len(cmd.Variables)), nil
}

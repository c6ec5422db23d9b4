package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/orris-inc/docforge/internal/application/document/dto"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/id"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
)

type DetectVariablesCommand struct {
	TemplateID string
}

type DetectVariablesUseCase struct {
	templateRepo document.TemplateRepository
	variableRepo document.VariableRepository
	logger       logger.Interface
}

func NewDetectVariablesUseCase(
	templateRepo document.TemplateRepository,
	variableRepo document.VariableRepository,
	logger logger.Interface,
) *DetectVariablesUseCase {
	return &DetectVariablesUseCase{
		templateRepo: templateRepo,
		variableRepo: variableRepo,
		logger:       logger,
	}
}

// Execute creates definitions for placeholders that have none yet. Running it
// again on an unchanged body creates nothing.
func (uc *DetectVariablesUseCase) Execute(ctx context.Context, cmd DetectVariablesCommand) (*dto.DetectionResultDTO, error) {
	uc.logger.Infow("executing detect variables use case", "template_id", cmd.TemplateID)

	tpl, err := loadTemplate(ctx, uc.templateRepo, cmd.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}

	existing, err := uc.variableRepo.ListByTemplate(ctx, tpl.ID())
	if err != nil {
		uc.logger.Errorw("failed to list variables", "template_id", tpl.SID(), "error", err)
		return nil, toAppError(err)
	}

	created, err := document.DetectVariables(tpl, existing, id.NewVariableID)
	if err != nil {
		if stderrors.Is(err, document.ErrEmptyContent) {
			return nil, errors.NewValidationError("Template content is empty. Add content before detecting variables.")
		}
		return nil, toAppError(err)
	}

	result := &dto.DetectionResultDTO{
		CreatedCount: len(created),
		Created:      []*dto.VariableDTO{},
		Notification: dto.NotificationDTO{
			Type:    NotificationWarning,
			Message: "No new variables found in template content.",
		},
	}
	if len(created) == 0 {
		uc.logger.Infow("no new variables detected", "template_id", tpl.SID())
		return result, nil
	}

	if err := uc.variableRepo.CreateBatch(ctx, created); err != nil {
		uc.logger.Errorw("failed to save detected variables", "template_id", tpl.SID(), "error", err)
		return nil, toAppError(err)
	}

	result.Created = dto.ToVariableDTOList(created, tpl.SID())
	result.Notification = dto.NotificationDTO{
		Type:    NotificationInfo,
		Message: fmt.Sprintf("%d new variable(s) detected.", len(created)),
	}

	uc.logger.Infow("variables detected", "template_id", tpl.SID(), "created_count", len(created))
	return result, nil
}

package usecases

import (
	"context"

	"github.com/orris-inc/docforge/internal/application/document/dto"
	"github.com/orris-inc/docforge/internal/domain/document"
	vo "github.com/orris-inc/docforge/internal/domain/document/valueobjects"
	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/id"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

type ListVariablesQuery struct {
	TemplateID string
}

type ListVariablesUseCase struct {
	templateRepo document.TemplateRepository
	variableRepo document.VariableRepository
	logger       logger.Interface
}

func NewListVariablesUseCase(
	templateRepo document.TemplateRepository,
	variableRepo document.VariableRepository,
	logger logger.Interface,
) *ListVariablesUseCase {
	return &ListVariablesUseCase{
		templateRepo: templateRepo,
		variableRepo: variableRepo,
		logger:       logger,
	}
}

func (uc *ListVariablesUseCase) Execute(ctx context.Context, query ListVariablesQuery) ([]*dto.VariableDTO, error) {
	tpl, err := loadTemplate(ctx, uc.templateRepo, query.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}

	vars, err := uc.variableRepo.ListByTemplate(ctx, tpl.ID())
	if err != nil {
		uc.logger.Errorw("failed to list variables", "template_id", tpl.SID(), "error", err)
		return nil, toAppError(err)
	}

	return dto.ToVariableDTOList(vars, tpl.SID()), nil
}

type CreateVariableCommand struct {
	TemplateID    string
	Name          string
	Label         string
	Type          string
	DefaultValue  string
	Required      *bool
	Order         *int
	SelectOptions []string
}

// VariableInput is one variable as supplied by a caller, either on its own
// or inline with a new template.
type VariableInput struct {
	Name          string
	Label         string
	Type          string
	DefaultValue  string
	Required      *bool
	Order         *int
	SelectOptions []string
}

// newVariable applies the creation defaults and returns validation failures
// as AppErrors.
func newVariable(templateID uint, in VariableInput) (*document.VariableDefinition, error) {
	varType, err := vo.NewVariableType(in.Type)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	required := true
	if in.Required != nil {
		required = *in.Required
	}
	order := document.DefaultVariableOrder
	if in.Order != nil {
		order = *in.Order
	}

	v, err := document.NewVariableDefinition(document.VariableParams{
		TemplateID:    templateID,
		Name:          in.Name,
		Label:         in.Label,
		Type:          varType,
		DefaultValue:  in.DefaultValue,
		Required:      required,
		Order:         order,
		SelectOptions: in.SelectOptions,
	}, id.NewVariableID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return v, nil
}

type CreateVariableUseCase struct {
	templateRepo document.TemplateRepository
	variableRepo document.VariableRepository
	logger       logger.Interface
}

func NewCreateVariableUseCase(
	templateRepo document.TemplateRepository,
	variableRepo document.VariableRepository,
	logger logger.Interface,
) *CreateVariableUseCase {
	return &CreateVariableUseCase{
		templateRepo: templateRepo,
		variableRepo: variableRepo,
		logger:       logger,
	}
}

// Execute adds a variable. Required defaults to true, Order to
// document.DefaultVariableOrder and Name to a snake_case form of Label.
func (uc *CreateVariableUseCase) Execute(ctx context.Context, cmd CreateVariableCommand) (*dto.VariableDTO, error) {
	uc.logger.Infow("executing create variable use case", "template_id", cmd.TemplateID, "variable_name", cmd.Name)

	tpl, err := loadTemplate(ctx, uc.templateRepo, cmd.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}

	v, err := newVariable(tpl.ID(), VariableInput{
		Name:          cmd.Name,
		Label:         cmd.Label,
		Type:          cmd.Type,
		DefaultValue:  cmd.DefaultValue,
		Required:      cmd.Required,
		Order:         cmd.Order,
		SelectOptions: cmd.SelectOptions,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.variableRepo.Create(ctx, v); err != nil {
		uc.logger.Errorw("failed to create variable", "template_id", tpl.SID(), "variable_name", v.Name(), "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("variable created successfully", "template_id", tpl.SID(), "variable_id", v.SID())
	return dto.ToVariableDTO(v, tpl.SID()), nil
}

type GetVariableQuery struct {
	TemplateID string
	VariableID string
}

type GetVariableUseCase struct {
	templateRepo document.TemplateRepository
	variableRepo document.VariableRepository
	logger       logger.Interface
}

func NewGetVariableUseCase(
	templateRepo document.TemplateRepository,
	variableRepo document.VariableRepository,
	logger logger.Interface,
) *GetVariableUseCase {
	return &GetVariableUseCase{
		templateRepo: templateRepo,
		variableRepo: variableRepo,
		logger:       logger,
	}
}

func (uc *GetVariableUseCase) Execute(ctx context.Context, query GetVariableQuery) (*dto.VariableDTO, error) {
	tpl, err := loadTemplate(ctx, uc.templateRepo, query.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}

	v, err := loadVariable(ctx, uc.variableRepo, tpl, query.VariableID)
	if err != nil {
		return nil, toAppError(err)
	}

	return dto.ToVariableDTO(v, tpl.SID()), nil
}

// UpdateVariableCommand changes only the fields that are set. The name of a
// variable cannot change because template bodies refer to it.
type UpdateVariableCommand struct {
	TemplateID    string
	VariableID    string
	Name          *string
	Label         *string
	Type          *string
	DefaultValue  *string
	Required      *bool
	Order         *int
	SelectOptions []string
}

type UpdateVariableUseCase struct {
	templateRepo document.TemplateRepository
	variableRepo document.VariableRepository
	logger       logger.Interface
}

func NewUpdateVariableUseCase(
	templateRepo document.TemplateRepository,
	variableRepo document.VariableRepository,
	logger logger.Interface,
) *UpdateVariableUseCase {
	return &UpdateVariableUseCase{
		templateRepo: templateRepo,
		variableRepo: variableRepo,
		logger:       logger,
	}
}

func (uc *UpdateVariableUseCase) Execute(ctx context.Context, cmd UpdateVariableCommand) (*dto.VariableDTO, error) {
	uc.logger.Infow("executing update variable use case", "template_id", cmd.TemplateID, "variable_id", cmd.VariableID)

	tpl, err := loadTemplate(ctx, uc.templateRepo, cmd.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}

	v, err := loadVariable(ctx, uc.variableRepo, tpl, cmd.VariableID)
	if err != nil {
		return nil, toAppError(err)
	}

	if cmd.Name != nil && *cmd.Name != v.Name() {
		return nil, errors.NewValidationError("variable name cannot be changed")
	}
	if cmd.Label != nil {
		if err := v.SetLabel(*cmd.Label); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Type != nil {
		t, err := vo.NewVariableType(*cmd.Type)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := v.SetType(t); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.DefaultValue != nil {
		v.SetDefaultValue(*cmd.DefaultValue)
	}
	if cmd.Required != nil {
		v.SetRequired(*cmd.Required)
	}
	if cmd.Order != nil {
		v.SetOrder(*cmd.Order)
	}
	if cmd.SelectOptions != nil {
		v.SetSelectOptions(cmd.SelectOptions)
	}

	if err := uc.variableRepo.Update(ctx, v); err != nil {
		uc.logger.Errorw("failed to update variable", "variable_id", v.SID(), "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("variable updated successfully", "variable_id", v.SID())
	return dto.ToVariableDTO(v, tpl.SID()), nil
}

type DeleteVariableCommand struct {
	TemplateID string
	VariableID string
}

type DeleteVariableUseCase struct {
	templateRepo document.TemplateRepository
	variableRepo document.VariableRepository
	logger       logger.Interface
}

func NewDeleteVariableUseCase(
	templateRepo document.TemplateRepository,
	variableRepo document.VariableRepository,
	logger logger.Interface,
) *DeleteVariableUseCase {
	return &DeleteVariableUseCase{
		templateRepo: templateRepo,
		variableRepo: variableRepo,
		logger:       logger,
	}
}

func (uc *DeleteVariableUseCase) Execute(ctx context.Context, cmd DeleteVariableCommand) error {
	tpl, err := loadTemplate(ctx, uc.templateRepo, cmd.TemplateID)
	if err != nil {
		return toAppError(err)
	}

	v, err := loadVariable(ctx, uc.variableRepo, tpl, cmd.VariableID)
	if err != nil {
		return toAppError(err)
	}

	if err := uc.variableRepo.Delete(ctx, v.ID()); err != nil {
		uc.logger.Errorw("failed to delete variable", "variable_id", v.SID(), "error", err)
		return toAppError(err)
	}

	uc.logger.Infow("variable deleted successfully", "template_id", tpl.SID(), "variable_id", v.SID())
	return nil
}

package usecases

import (
	"context"
	stderrors "errors"

	"github.com/orris-inc/docforge/internal/application/document/dto"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/id"
)

const (
	msgEmptyDocument = "Cannot generate PDF from empty document."
	msgNoPDF         = "No PDF available. Please generate it first."
)

// toAppError translates domain errors into AppErrors. Errors that are already
// AppErrors pass through; anything else becomes a generic internal error.
func toAppError(err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}

	var (
		missing   *document.RequiredFieldsMissingError
		unknownT  *document.UnknownTemplateError
		unknownV  *document.UnknownVariableError
		duplicate *document.DuplicateVariableNameError
		rendering *document.RenderingFailedError
	)

	switch {
	case stderrors.Is(err, document.ErrEmptyContent):
		return errors.NewValidationError(msgEmptyDocument)
	case stderrors.Is(err, document.ErrMissingTemplate):
		return errors.NewValidationError(err.Error())
	case stderrors.Is(err, document.ErrNotSingle):
		return errors.NewConflictError(err.Error())
	case stderrors.As(err, &missing):
		return errors.NewValidationError(missing.Error()).WithFields(missing.Labels)
	case stderrors.As(err, &unknownT):
		return errors.NewNotFoundError("template not found", unknownT.ID)
	case stderrors.As(err, &unknownV):
		return errors.NewNotFoundError("variable not found", unknownV.Ref)
	case stderrors.As(err, &duplicate):
		return errors.NewConflictError(duplicate.Error())
	case stderrors.As(err, &rendering):
		return errors.NewBadGatewayError("failed to render PDF")
	default:
		return errors.NewInternalError("internal error")
	}
}

// loadTemplate resolves a public template ID.
func loadTemplate(ctx context.Context, repo document.TemplateRepository, sid string) (*document.Template, error) {
	if err := id.ValidatePrefix(sid, id.PrefixTemplate); err != nil {
		return nil, errors.NewValidationError("invalid template ID", err.Error())
	}

	tpl, err := repo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, &document.UnknownTemplateError{ID: sid}
	}
	return tpl, nil
}

// loadVariable resolves a public variable ID and checks it belongs to tpl.
func loadVariable(ctx context.Context, repo document.VariableRepository, tpl *document.Template, sid string) (*document.VariableDefinition, error) {
	if err := id.ValidatePrefix(sid, id.PrefixVariable); err != nil {
		return nil, errors.NewValidationError("invalid variable ID", err.Error())
	}

	v, err := repo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if v == nil || v.TemplateID() != tpl.ID() {
		return nil, &document.UnknownVariableError{Ref: sid}
	}
	return v, nil
}

// templateDTO maps tpl with its current variable count.
func templateDTO(ctx context.Context, repo document.TemplateRepository, tpl *document.Template) (*dto.TemplateDTO, error) {
	counts, err := repo.CountVariables(ctx, []uint{tpl.ID()})
	if err != nil {
		return nil, err
	}
	return dto.ToTemplateDTO(tpl, counts[tpl.ID()]), nil
}

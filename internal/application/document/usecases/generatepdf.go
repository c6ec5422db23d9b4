package usecases

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/orris-inc/docforge/internal/application/document/dto"
	"github.com/orris-inc/docforge/internal/application/document/services"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

const (
	ReturnTypeURL    = "url"
	ReturnTypeBase64 = "base64"
)

// GeneratePDFCommand generates a PDF in one call. Variables holds raw JSON
// values; nil and blank strings count as missing. Variables left out keep
// their default value, and names without a definition are still substituted.
// ReturnType defaults to base64.
type GeneratePDFCommand struct {
	TemplateID string
	Variables  map[string]any
	Filename   string
	ReturnType string
}

type GeneratePDFUseCase struct {
	templateRepo  document.TemplateRepository
	variableRepo  document.VariableRepository
	exportService *services.ExportService
	logger        logger.Interface
}

func NewGeneratePDFUseCase(
	templateRepo document.TemplateRepository,
	variableRepo document.VariableRepository,
	exportService *services.ExportService,
	logger logger.Interface,
) *GeneratePDFUseCase {
	return &GeneratePDFUseCase{
		templateRepo:  templateRepo,
		variableRepo:  variableRepo,
		exportService: exportService,
		logger:        logger,
	}
}

func (uc *GeneratePDFUseCase) Execute(ctx context.Context, cmd GeneratePDFCommand) (*dto.GeneratedPDFDTO, error) {
	uc.logger.Infow("executing generate pdf use case", "template_id", cmd.TemplateID, "return_type", cmd.ReturnType)

	if cmd.ReturnType == "" {
		cmd.ReturnType = ReturnTypeBase64
	}
	if cmd.ReturnType != ReturnTypeURL && cmd.ReturnType != ReturnTypeBase64 {
		return nil, errors.NewValidationError("return_type must be base64 or url")
	}

	tpl, err := loadTemplate(ctx, uc.templateRepo, cmd.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}
	if !tpl.HasContent() {
		return nil, toAppError(document.ErrEmptyContent)
	}

	vars, err := uc.variableRepo.ListByTemplate(ctx, tpl.ID())
	if err != nil {
		return nil, toAppError(err)
	}

	session, err := document.NewExportSession(uuid.NewString(), tpl, vars)
	if err != nil {
		return nil, toAppError(err)
	}

	defined := make(map[string]bool, len(vars))
	for _, v := range vars {
		defined[v.Name()] = true
	}
	lineValues := make(map[string]string)
	extraValues := make(map[string]string)
	for name, raw := range cmd.Variables {
		if defined[name] {
			lineValues[name] = stringifyValue(raw)
		} else {
			extraValues[name] = stringifyValue(raw)
		}
	}
	if err := session.SetLineValues(lineValues); err != nil {
		return nil, toAppError(err)
	}
	if err := session.SetExtraValues(extraValues); err != nil {
		return nil, toAppError(err)
	}

	if missing := session.Validate(); len(missing) > 0 {
		return nil, errors.NewValidationError(
			"Missing required variables: " + strings.Join(missing, ", "),
		).WithFields(missing)
	}

	filename := strings.TrimSpace(cmd.Filename)
	published, err := uc.exportService.Export(ctx, tpl, session, filename)
	if err != nil {
		uc.logger.Errorw("failed to generate pdf", "template_id", tpl.SID(), "error", err)
		return nil, toAppError(err)
	}

	result := &dto.GeneratedPDFDTO{
		ArtifactID:  published.Artifact.SID(),
		Filename:    published.Filename,
		Size:        published.Artifact.Size(),
		DownloadURL: published.DownloadRef,
	}
	if cmd.ReturnType == ReturnTypeBase64 {
		result.PDFBase64 = base64.StdEncoding.EncodeToString(published.Artifact.Data())
	}

	uc.logger.Infow("pdf generated", "template_id", tpl.SID(), "artifact_id", result.ArtifactID, "size", result.Size)
	return result, nil
}

// stringifyValue renders a decoded JSON value as text. Whole numbers print
// without a decimal point.
func stringifyValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprint(val)
	}
}

package usecases

import (
	"context"

	"github.com/orris-inc/docforge/internal/application/document/dto"
)

type CreateTemplateExecutor interface {
	Execute(ctx context.Context, cmd CreateTemplateCommand) (*dto.TemplateDTO, error)
}

type GetTemplateExecutor interface {
	Execute(ctx context.Context, query GetTemplateQuery) (*dto.TemplateDTO, error)
}

type UpdateTemplateExecutor interface {
	Execute(ctx context.Context, cmd UpdateTemplateCommand) (*dto.TemplateDTO, error)
}

type ListTemplatesExecutor interface {
	Execute(ctx context.Context, query ListTemplatesQuery) (*ListTemplatesResult, error)
}

type DeleteTemplateExecutor interface {
	Execute(ctx context.Context, cmd DeleteTemplateCommand) error
}

type DuplicateTemplateExecutor interface {
	Execute(ctx context.Context, cmd DuplicateTemplateCommand) (*dto.TemplateDTO, error)
}

type ToggleFavoriteExecutor interface {
	Execute(ctx context.Context, cmd ToggleFavoriteCommand) (*dto.TemplateDTO, error)
}

type SetTemplateActiveExecutor interface {
	Execute(ctx context.Context, cmd SetTemplateActiveCommand) (*dto.TemplateDTO, error)
}

type DetectVariablesExecutor interface {
	Execute(ctx context.Context, cmd DetectVariablesCommand) (*dto.DetectionResultDTO, error)
}

type ListVariablesExecutor interface {
	Execute(ctx context.Context, query ListVariablesQuery) ([]*dto.VariableDTO, error)
}

type CreateVariableExecutor interface {
	Execute(ctx context.Context, cmd CreateVariableCommand) (*dto.VariableDTO, error)
}

type GetVariableExecutor interface {
	Execute(ctx context.Context, query GetVariableQuery) (*dto.VariableDTO, error)
}

type UpdateVariableExecutor interface {
	Execute(ctx context.Context, cmd UpdateVariableCommand) (*dto.VariableDTO, error)
}

type DeleteVariableExecutor interface {
	Execute(ctx context.Context, cmd DeleteVariableCommand) error
}

type StartExportExecutor interface {
	Execute(ctx context.Context, cmd StartExportCommand) (*dto.ExportResultDTO, error)
}

type GetExportSessionExecutor interface {
	Execute(ctx context.Context, query GetExportSessionQuery) (*dto.ExportSessionDTO, error)
}

type SetSessionValuesExecutor interface {
	Execute(ctx context.Context, cmd SetSessionValuesCommand) (*dto.ExportSessionDTO, error)
}

type PreviewSessionExecutor interface {
	Execute(ctx context.Context, query PreviewSessionQuery) (*dto.PreviewDTO, error)
}

type ValidateSessionExecutor interface {
	Execute(ctx context.Context, query ValidateSessionQuery) (*dto.ValidationResultDTO, error)
}

type GenerateSessionExecutor interface {
	Execute(ctx context.Context, cmd GenerateSessionCommand) (*dto.ArtifactDTO, error)
}

type DiscardSessionExecutor interface {
	Execute(ctx context.Context, cmd DiscardSessionCommand) error
}

type GeneratePDFExecutor interface {
	Execute(ctx context.Context, cmd GeneratePDFCommand) (*dto.GeneratedPDFDTO, error)
}

type GetArtifactExecutor interface {
	Execute(ctx context.Context, query GetArtifactQuery) (*ArtifactContent, error)
}

type DownloadTemplatePDFExecutor interface {
	Execute(ctx context.Context, query DownloadTemplatePDFQuery) (*ArtifactContent, error)
}

type SendArtifactExecutor interface {
	Execute(ctx context.Context, cmd SendArtifactCommand) error
}

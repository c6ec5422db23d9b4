package usecases

import (
	"context"

	"github.com/orris-inc/docforge/internal/application/document/dto"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/logger"
	"github.com/orris-inc/docforge/internal/shared/services/markdown"
)

type GetTemplateQuery struct {
	TemplateID string
}

type GetTemplateUseCase struct {
	templateRepo document.TemplateRepository
	markdown     markdown.MarkdownService
	logger       logger.Interface
}

func NewGetTemplateUseCase(
	templateRepo document.TemplateRepository,
	markdownService markdown.MarkdownService,
	logger logger.Interface,
) *GetTemplateUseCase {
	return &GetTemplateUseCase{
		templateRepo: templateRepo,
		markdown:     markdownService,
		logger:       logger,
	}
}

func (uc *GetTemplateUseCase) Execute(ctx context.Context, query GetTemplateQuery) (*dto.TemplateDTO, error) {
	tpl, err := loadTemplate(ctx, uc.templateRepo, query.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}

	result, err := templateDTO(ctx, uc.templateRepo, tpl)
	if err != nil {
		uc.logger.Errorw("failed to count template variables", "template_id", tpl.SID(), "error", err)
		return nil, toAppError(err)
	}
	if tpl.Summary() != "" {
		html, err := uc.markdown.ToHTMLSanitized(tpl.Summary())
		if err != nil {
			uc.logger.Warnw("failed to render template summary", "template_id", tpl.SID(), "error", err)
		} else {
			result.SummaryHTML = html
		}
	}

	return result, nil
}

package usecases

import (
	"context"

	"github.com/orris-inc/docforge/internal/application/document/dto"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/constants"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

type ListTemplatesQuery struct {
	Active   *bool
	Favorite *bool
	Search   string
	Page     int
	PageSize int
}

type ListTemplatesResult struct {
	Templates []*dto.TemplateDTO
	Total     int64
	Page      int
	PageSize  int
}

type ListTemplatesUseCase struct {
	templateRepo document.TemplateRepository
	logger       logger.Interface
}

func NewListTemplatesUseCase(
	templateRepo document.TemplateRepository,
	logger logger.Interface,
) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

func (uc *ListTemplatesUseCase) Execute(ctx context.Context, query ListTemplatesQuery) (*ListTemplatesResult, error) {
	if query.Page < 1 {
		query.Page = constants.DefaultPage
	}
	if query.PageSize <= 0 {
		query.PageSize = constants.DefaultPageSize
	}
	if query.PageSize > constants.MaxPageSize {
		query.PageSize = constants.MaxPageSize
	}

	templates, total, err := uc.templateRepo.List(ctx, document.TemplateFilter{
		Active:   query.Active,
		Favorite: query.Favorite,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list templates", "error", err)
		return nil, toAppError(err)
	}

	ids := make([]uint, 0, len(templates))
	for _, t := range templates {
		ids = append(ids, t.ID())
	}
	counts, err := uc.templateRepo.CountVariables(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to count template variables", "error", err)
		return nil, toAppError(err)
	}

	items := make([]*dto.TemplateDTO, 0, len(templates))
	for _, t := range templates {
		items = append(items, dto.ToTemplateDTO(t, counts[t.ID()]))
	}

	return &ListTemplatesResult{
		Templates: items,
		Total:     total,
		Page:      query.Page,
		PageSize:  query.PageSize,
	}, nil
}

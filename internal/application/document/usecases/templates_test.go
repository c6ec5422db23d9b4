package usecases

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/logger"
	"github.com/orris-inc/docforge/internal/shared/services/markdown"
)

func strPtr(s string) *string { return &s }

func TestCreateTemplateUseCase_Execute(t *testing.T) {
	var saved *document.Template
	repo := &mockTemplateRepository{
		CreateFunc: func(_ context.Context, tpl *document.Template) error {
			saved = tpl
			return tpl.SetID(10)
		},
	}
	tx := &mockTxRunner{}

	uc := NewCreateTemplateUseCase(repo, &mockVariableRepository{}, tx, logger.Nop())
	result, err := uc.Execute(context.Background(), CreateTemplateCommand{Name: "Offer", Body: "<p>{{name}}</p>"})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, saved.SID(), result.ID)
	assert.Equal(t, "Offer", result.Name)
	assert.True(t, result.Active)
	assert.Equal(t, "Offer.pdf", result.PDFFilename)
	assert.Equal(t, 0, result.VariableCount)
	assert.Equal(t, 1, tx.calls)
}

func TestCreateTemplateUseCase_Execute_InlineVariables(t *testing.T) {
	repo := &mockTemplateRepository{
		CreateFunc: func(_ context.Context, tpl *document.Template) error {
			return tpl.SetID(10)
		},
	}
	var batch []*document.VariableDefinition
	vars := &mockVariableRepository{
		CreateBatchFunc: func(_ context.Context, vs []*document.VariableDefinition) error {
			batch = vs
			return nil
		},
	}
	tx := &mockTxRunner{}

	optional := false
	uc := NewCreateTemplateUseCase(repo, vars, tx, logger.Nop())
	result, err := uc.Execute(context.Background(), CreateTemplateCommand{
		Name: "Contract",
		Body: "<p>{{customer_name}} {{plan}}</p>",
		Variables: []VariableInput{
			{Label: "Customer Name"},
			{Name: "plan", Type: "selection", Required: &optional, SelectOptions: []string{"basic", "pro"}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 2, result.VariableCount)
	require.Len(t, batch, 2)
	assert.Equal(t, "customer_name", batch[0].Name())
	assert.True(t, batch[0].Required())
	assert.Equal(t, "Plan", batch[1].Label())
	assert.False(t, batch[1].Required())
	for _, v := range batch {
		assert.Equal(t, uint(10), v.TemplateID())
	}
}

func TestCreateTemplateUseCase_Execute_InvalidInlineVariable(t *testing.T) {
	repo := &mockTemplateRepository{
		CreateFunc: func(_ context.Context, tpl *document.Template) error {
			return tpl.SetID(10)
		},
	}
	batched := false
	vars := &mockVariableRepository{
		CreateBatchFunc: func(context.Context, []*document.VariableDefinition) error {
			batched = true
			return nil
		},
	}

	uc := NewCreateTemplateUseCase(repo, vars, &mockTxRunner{}, logger.Nop())
	_, err := uc.Execute(context.Background(), CreateTemplateCommand{
		Name:      "Contract",
		Body:      "<p>x</p>",
		Variables: []VariableInput{{Name: "not-valid"}},
	})

	assert.True(t, errors.IsValidationError(err))
	assert.False(t, batched)
}

func TestCreateTemplateUseCase_Execute_Validation(t *testing.T) {
	uc := NewCreateTemplateUseCase(&mockTemplateRepository{}, &mockVariableRepository{}, &mockTxRunner{}, logger.Nop())

	_, err := uc.Execute(context.Background(), CreateTemplateCommand{Name: "  ", Body: "<p>x</p>"})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), CreateTemplateCommand{Name: "Offer", Body: "  "})
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, []string{"body"}, appErr.Fields)
}

func TestGetTemplateUseCase_Execute(t *testing.T) {
	tpl := testTemplate("<p>x</p>")
	tpl.SetSummary("**bold**")
	repo := templateRepoWith(tpl)
	repo.CountVariablesFunc = func(_ context.Context, ids []uint) (map[uint]int, error) {
		return map[uint]int{1: 3}, nil
	}

	uc := NewGetTemplateUseCase(repo, markdown.NewMarkdownService(), logger.Nop())
	result, err := uc.Execute(context.Background(), GetTemplateQuery{TemplateID: "tpl_test1"})

	require.NoError(t, err)
	assert.Equal(t, 3, result.VariableCount)
	assert.Contains(t, result.SummaryHTML, "<strong>bold</strong>")
}

func TestGetTemplateUseCase_Execute_NotFound(t *testing.T) {
	uc := NewGetTemplateUseCase(&mockTemplateRepository{}, markdown.NewMarkdownService(), logger.Nop())

	_, err := uc.Execute(context.Background(), GetTemplateQuery{TemplateID: "tpl_nothere"})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUpdateTemplateUseCase_Execute(t *testing.T) {
	tpl := testTemplate("<p>old</p>")
	repo := templateRepoWith(tpl)
	updated := 0
	repo.UpdateFunc = func(context.Context, *document.Template) error {
		updated++
		return nil
	}

	uc := NewUpdateTemplateUseCase(repo, logger.Nop())

	_, err := uc.Execute(context.Background(), UpdateTemplateCommand{TemplateID: "tpl_test1"})
	assert.True(t, errors.IsValidationError(err))

	result, err := uc.Execute(context.Background(), UpdateTemplateCommand{
		TemplateID: "tpl_test1",
		Name:       strPtr("New Name"),
		Body:       strPtr("<p>new</p>"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", result.Name)
	assert.Equal(t, "<p>new</p>", result.Body)
	assert.Equal(t, 1, updated)

	_, err = uc.Execute(context.Background(), UpdateTemplateCommand{TemplateID: "tpl_test1", Name: strPtr("")})
	assert.True(t, errors.IsValidationError(err))
}

func TestListTemplatesUseCase_Execute(t *testing.T) {
	var gotFilter document.TemplateFilter
	repo := &mockTemplateRepository{
		ListFunc: func(_ context.Context, f document.TemplateFilter) ([]*document.Template, int64, error) {
			gotFilter = f
			return []*document.Template{testTemplate("x")}, 1, nil
		},
		CountVariablesFunc: func(_ context.Context, ids []uint) (map[uint]int, error) {
			assert.Equal(t, []uint{1}, ids)
			return map[uint]int{1: 2}, nil
		},
	}

	uc := NewListTemplatesUseCase(repo, logger.Nop())
	result, err := uc.Execute(context.Background(), ListTemplatesQuery{PageSize: 1000, Search: "offer"})

	require.NoError(t, err)
	assert.Equal(t, 1, gotFilter.Page)
	assert.Equal(t, 100, gotFilter.PageSize)
	assert.Equal(t, "offer", gotFilter.Search)
	require.Len(t, result.Templates, 1)
	assert.Equal(t, 2, result.Templates[0].VariableCount)
	assert.Equal(t, int64(1), result.Total)
}

func TestDeleteTemplateUseCase_Execute(t *testing.T) {
	tpl := testTemplate("x")
	repo := templateRepoWith(tpl)
	var deleted uint
	repo.DeleteFunc = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}
	var artifactsDeleted uint
	artifacts := &mockArtifactRepository{
		DeleteByTemplateFunc: func(_ context.Context, id uint) error {
			artifactsDeleted = id
			return nil
		},
	}
	tx := &mockTxRunner{}

	uc := NewDeleteTemplateUseCase(repo, artifacts, tx, logger.Nop())
	require.NoError(t, uc.Execute(context.Background(), DeleteTemplateCommand{TemplateID: "tpl_test1"}))

	assert.Equal(t, uint(1), deleted)
	assert.Equal(t, uint(1), artifactsDeleted)
	assert.Equal(t, 1, tx.calls)
}

func TestDeleteTemplateUseCase_Execute_Failure(t *testing.T) {
	repo := templateRepoWith(testTemplate("x"))
	repo.DeleteFunc = func(context.Context, uint) error { return stderrors.New("db down") }

	uc := NewDeleteTemplateUseCase(repo, &mockArtifactRepository{}, &mockTxRunner{}, logger.Nop())
	err := uc.Execute(context.Background(), DeleteTemplateCommand{TemplateID: "tpl_test1"})

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeInternal, appErr.Type)
}

func TestDuplicateTemplateUseCase_Execute(t *testing.T) {
	tpl := testTemplate("<p>{{a}} {{b}}</p>")
	tpl.RecordGeneratedPDF("art_old")
	repo := templateRepoWith(tpl)
	var created *document.Template
	repo.CreateFunc = func(_ context.Context, c *document.Template) error {
		created = c
		return c.SetID(2)
	}

	var copies []*document.VariableDefinition
	vars := &mockVariableRepository{
		ListByTemplateFunc: func(context.Context, uint) ([]*document.VariableDefinition, error) {
			return []*document.VariableDefinition{testVariable(1, "a", 10, true), testVariable(2, "b", 20, false)}, nil
		},
		CreateBatchFunc: func(_ context.Context, vs []*document.VariableDefinition) error {
			copies = vs
			return nil
		},
	}

	uc := NewDuplicateTemplateUseCase(repo, vars, &mockTxRunner{}, logger.Nop())
	result, err := uc.Execute(context.Background(), DuplicateTemplateCommand{TemplateID: "tpl_test1"})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Offer Letter (Copy)", result.Name)
	assert.False(t, result.HasPDF)
	assert.Equal(t, 2, result.VariableCount)
	require.Len(t, copies, 2)
	for _, c := range copies {
		assert.Equal(t, uint(2), c.TemplateID())
	}
	assert.False(t, copies[1].Required())
}

func TestToggleFavoriteUseCase_Execute(t *testing.T) {
	tpl := testTemplate("x")
	uc := NewToggleFavoriteUseCase(templateRepoWith(tpl), logger.Nop())

	result, err := uc.Execute(context.Background(), ToggleFavoriteCommand{TemplateID: "tpl_test1"})
	require.NoError(t, err)
	assert.True(t, result.Favorite)

	result, err = uc.Execute(context.Background(), ToggleFavoriteCommand{TemplateID: "tpl_test1"})
	require.NoError(t, err)
	assert.False(t, result.Favorite)
}

func TestSetTemplateActiveUseCase_Execute(t *testing.T) {
	tpl := testTemplate("x")
	uc := NewSetTemplateActiveUseCase(templateRepoWith(tpl), logger.Nop())

	result, err := uc.Execute(context.Background(), SetTemplateActiveCommand{TemplateID: "tpl_test1", Active: false})
	require.NoError(t, err)
	assert.False(t, result.Active)

	result, err = uc.Execute(context.Background(), SetTemplateActiveCommand{TemplateID: "tpl_test1", Active: true})
	require.NoError(t, err)
	assert.True(t, result.Active)
}

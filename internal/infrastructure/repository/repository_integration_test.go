package repository

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orris-inc/docforge/internal/domain/artifact"
	"github.com/orris-inc/docforge/internal/domain/document"
	vo "github.com/orris-inc/docforge/internal/domain/document/valueobjects"
	"github.com/orris-inc/docforge/internal/infrastructure/database"
	"github.com/orris-inc/docforge/internal/infrastructure/migration"
	"github.com/orris-inc/docforge/internal/shared/config"
	"github.com/orris-inc/docforge/internal/shared/db"
	apperrors "github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/id"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := database.Open(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "repo.db"),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(migration.AutoMigrateModels()...))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func createTemplate(t *testing.T, repo document.TemplateRepository, name, body string) *document.Template {
	t.Helper()
	tpl, err := document.NewTemplate(name, "", body, id.NewTemplateID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tpl))
	return tpl
}

func newVariable(t *testing.T, templateID uint, name string, order int) *document.VariableDefinition {
	t.Helper()
	v, err := document.NewVariableDefinition(document.VariableParams{
		TemplateID: templateID,
		Name:       name,
		Required:   true,
		Order:      order,
	}, id.NewVariableID)
	require.NoError(t, err)
	return v
}

func TestTemplateRepository_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateRepository(setupDB(t), logger.Nop())

	tpl := createTemplate(t, repo, "Offer Letter", "<p>Hi {{name}}</p>")
	require.NotZero(t, tpl.ID())

	got, err := repo.GetBySID(ctx, tpl.SID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Offer Letter", got.Name())
	assert.True(t, got.Active())

	got.Archive()
	got.ToggleFavorite()
	got.RecordGeneratedPDF("art_123")
	require.NoError(t, repo.Update(ctx, got))

	reloaded, err := repo.GetByID(ctx, tpl.ID())
	require.NoError(t, err)
	assert.False(t, reloaded.Active())
	assert.True(t, reloaded.Favorite())
	assert.Equal(t, "art_123", reloaded.LastArtifactID())

	missing, err := repo.GetBySID(ctx, "tpl_missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTemplateRepository_ListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateRepository(setupDB(t), logger.Nop())

	first := createTemplate(t, repo, "Offer Letter", "")
	second := createTemplate(t, repo, "Invoice", "")
	third := createTemplate(t, repo, "Offer Renewal", "")

	third.Archive()
	require.NoError(t, repo.Update(ctx, third))

	all, total, err := repo.List(ctx, document.TemplateFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, third.SID(), all[0].SID())

	active := true
	activeOnly, total, err := repo.List(ctx, document.TemplateFilter{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{second.SID(), first.SID()}, []string{activeOnly[0].SID(), activeOnly[1].SID()})

	offers, total, err := repo.List(ctx, document.TemplateFilter{Search: "offer"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, offers, 2)

	page, total, err := repo.List(ctx, document.TemplateFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, first.SID(), page[0].SID())
}

func TestTemplateRepository_DeleteCascadesVariables(t *testing.T) {
	ctx := context.Background()
	gdb := setupDB(t)
	templates := NewTemplateRepository(gdb, logger.Nop())
	variables := NewVariableRepository(gdb, logger.Nop())

	tpl := createTemplate(t, templates, "Offer", "{{a}} {{b}}")
	require.NoError(t, variables.CreateBatch(ctx, []*document.VariableDefinition{
		newVariable(t, tpl.ID(), "a", 10),
		newVariable(t, tpl.ID(), "b", 20),
	}))

	counts, err := templates.CountVariables(ctx, []uint{tpl.ID()})
	require.NoError(t, err)
	assert.Equal(t, 2, counts[tpl.ID()])

	require.NoError(t, templates.Delete(ctx, tpl.ID()))

	remaining, err := variables.ListByTemplate(ctx, tpl.ID())
	require.NoError(t, err)
	assert.Empty(t, remaining)

	err = templates.Delete(ctx, tpl.ID())
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestVariableRepository_DuplicateNamesRejected(t *testing.T) {
	ctx := context.Background()
	gdb := setupDB(t)
	templates := NewTemplateRepository(gdb, logger.Nop())
	variables := NewVariableRepository(gdb, logger.Nop())

	tpl := createTemplate(t, templates, "Offer", "")
	require.NoError(t, variables.Create(ctx, newVariable(t, tpl.ID(), "name", 10)))

	err := variables.Create(ctx, newVariable(t, tpl.ID(), "name", 20))
	var dup *document.DuplicateVariableNameError
	require.True(t, stderrors.As(err, &dup))
	assert.Equal(t, tpl.SID(), dup.TemplateID)
	assert.Equal(t, "name", dup.Name)

	// a batch containing one clash stores nothing
	err = variables.CreateBatch(ctx, []*document.VariableDefinition{
		newVariable(t, tpl.ID(), "fresh", 30),
		newVariable(t, tpl.ID(), "name", 40),
	})
	require.Error(t, err)

	list, err := variables.ListByTemplate(ctx, tpl.ID())
	require.NoError(t, err)
	require.Len(t, list, 1)

	other := createTemplate(t, templates, "Invoice", "")
	assert.NoError(t, variables.Create(ctx, newVariable(t, other.ID(), "name", 10)))
}

func TestVariableRepository_UpdateAndOrder(t *testing.T) {
	ctx := context.Background()
	gdb := setupDB(t)
	templates := NewTemplateRepository(gdb, logger.Nop())
	variables := NewVariableRepository(gdb, logger.Nop())

	tpl := createTemplate(t, templates, "Offer", "")
	late := newVariable(t, tpl.ID(), "late", 30)
	early := newVariable(t, tpl.ID(), "early", 10)
	require.NoError(t, variables.CreateBatch(ctx, []*document.VariableDefinition{late, early}))

	require.NoError(t, late.SetType(vo.VariableTypeSingleSelect))
	late.SetSelectOptions([]string{"x", "y"})
	late.SetOrder(5)
	require.NoError(t, variables.Update(ctx, late))

	list, err := variables.ListByTemplate(ctx, tpl.ID())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "late", list[0].Name())
	assert.Equal(t, []string{"x", "y"}, list[0].SelectOptions())
	assert.Equal(t, "early", list[1].Name())

	got, err := variables.GetBySID(ctx, early.SID())
	require.NoError(t, err)
	assert.Equal(t, early.ID(), got.ID())

	require.NoError(t, variables.Delete(ctx, early.ID()))
	assert.True(t, apperrors.IsNotFoundError(variables.Delete(ctx, early.ID())))
}

func TestArtifactRepository_StoreAndDeleteByTemplate(t *testing.T) {
	ctx := context.Background()
	repo := NewArtifactRepository(setupDB(t), logger.Nop())

	a, err := artifact.NewArtifact("offer.pdf", artifact.MimeTypePDF, []byte("%PDF-1.4"), 7, id.NewArtifactID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetBySID(ctx, a.SID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []byte("%PDF-1.4"), got.Data())
	assert.Equal(t, uint(7), got.TemplateID())

	require.NoError(t, repo.DeleteByTemplate(ctx, 7))
	got, err = repo.GetBySID(ctx, a.SID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTransactionManager_RollsBackRepositoryWrites(t *testing.T) {
	ctx := context.Background()
	gdb := setupDB(t)
	templates := NewTemplateRepository(gdb, logger.Nop())
	txm := db.NewTransactionManager(gdb)

	boom := stderrors.New("boom")
	var sid string
	err := txm.RunInTransaction(ctx, func(ctx context.Context) error {
		tpl, err := document.NewTemplate("Rolled back", "", "", id.NewTemplateID)
		require.NoError(t, err)
		require.NoError(t, templates.Create(ctx, tpl))
		sid = tpl.SID()
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := templates.GetBySID(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, got)
}

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

type exportFixture struct {
	tpl       *document.Template
	tplRepo   *mockTemplateRepository
	varRepo   *mockVariableRepository
	store     *memorySessionStore
	assembler *mockAssembler
	artifacts *mockArtifactRepository
}

func newExportFixture(body string, vars ...*document.VariableDefinition) *exportFixture {
	tpl := testTemplate(body)
	return &exportFixture{
		tpl:       tpl,
		tplRepo:   templateRepoWith(tpl),
		varRepo:   variableRepoWith(vars...),
		store:     newMemorySessionStore(),
		assembler: &mockAssembler{},
		artifacts: &mockArtifactRepository{},
	}
}

func (f *exportFixture) start(t *testing.T) string {
	t.Helper()
	svc := newTestExportService(f.tplRepo, f.assembler, f.artifacts)
	uc := NewStartExportUseCase(f.tplRepo, f.varRepo, f.store, svc, logger.Nop())

	result, err := uc.Execute(context.Background(), StartExportCommand{TemplateID: f.tpl.SID()})
	require.NoError(t, err)
	require.NotNil(t, result.Session)
	return result.Session.ID
}

func TestStartExportUseCase_Execute_OpensSession(t *testing.T) {
	f := newExportFixture("<h1>{{title}}</h1>", testVariable(2, "title", 20, true), testVariable(1, "name", 10, true))
	svc := newTestExportService(f.tplRepo, f.assembler, f.artifacts)
	uc := NewStartExportUseCase(f.tplRepo, f.varRepo, f.store, svc, logger.Nop())

	result, err := uc.Execute(context.Background(), StartExportCommand{TemplateID: "tpl_test1"})
	require.NoError(t, err)

	require.NotNil(t, result.Session)
	assert.Nil(t, result.Artifact)
	require.Len(t, result.Session.Lines, 2)
	assert.Equal(t, "name", result.Session.Lines[0].Name)
	assert.Equal(t, "title", result.Session.Lines[1].Name)
	assert.Contains(t, f.store.sessions, result.Session.ID)
	assert.Empty(t, f.assembler.bodies)
}

func TestStartExportUseCase_Execute_NoVariablesGeneratesAtOnce(t *testing.T) {
	f := newExportFixture("<p>Static</p>")
	svc := newTestExportService(f.tplRepo, f.assembler, f.artifacts)
	uc := NewStartExportUseCase(f.tplRepo, f.varRepo, f.store, svc, logger.Nop())

	result, err := uc.Execute(context.Background(), StartExportCommand{TemplateID: "tpl_test1"})
	require.NoError(t, err)

	assert.Nil(t, result.Session)
	require.NotNil(t, result.Artifact)
	assert.Equal(t, "Offer Letter.pdf", result.Artifact.Name)
	assert.Equal(t, "application/pdf", result.Artifact.Mimetype)
	assert.Equal(t, []string{"<p>Static</p>"}, f.assembler.bodies)
	assert.Equal(t, result.Artifact.ID, f.tpl.LastArtifactID())
	assert.Empty(t, f.store.sessions)
}

func TestStartExportUseCase_Execute_EmptyBody(t *testing.T) {
	f := newExportFixture(" ")
	svc := newTestExportService(f.tplRepo, f.assembler, f.artifacts)
	uc := NewStartExportUseCase(f.tplRepo, f.varRepo, f.store, svc, logger.Nop())

	_, err := uc.Execute(context.Background(), StartExportCommand{TemplateID: "tpl_test1"})
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "Cannot generate PDF from empty document.", appErr.Message)
}

func TestExportSessionFlow(t *testing.T) {
	f := newExportFixture("<h1>{{title}}</h1><p>Dear {{name}},</p>",
		testVariable(1, "name", 10, true), testVariable(2, "title", 20, true))
	sessionID := f.start(t)
	ctx := context.Background()

	validate := NewValidateSessionUseCase(f.store, logger.Nop())
	check, err := validate.Execute(ctx, ValidateSessionQuery{SessionID: sessionID})
	require.NoError(t, err)
	assert.False(t, check.Valid)
	assert.Equal(t, []string{"Name", "Title"}, check.Missing)

	generate := NewGenerateSessionUseCase(f.tplRepo, f.store, newTestExportService(f.tplRepo, f.assembler, f.artifacts), logger.Nop())
	_, err = generate.Execute(ctx, GenerateSessionCommand{SessionID: sessionID})
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, []string{"Name", "Title"}, appErr.Fields)
	assert.Contains(t, f.store.sessions, sessionID)

	setValues := NewSetSessionValuesUseCase(f.store, logger.Nop())
	_, err = setValues.Execute(ctx, SetSessionValuesCommand{SessionID: sessionID, Values: map[string]string{"nope": "x"}})
	assert.True(t, errors.IsNotFoundError(err))

	updated, err := setValues.Execute(ctx, SetSessionValuesCommand{
		SessionID: sessionID,
		Values:    map[string]string{"title": "Notice", "name": "Jane"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane", updated.Lines[0].Value)

	preview := NewPreviewSessionUseCase(f.store, markdown.NewMarkdownService(), logger.Nop())
	p, err := preview.Execute(ctx, PreviewSessionQuery{SessionID: sessionID})
	require.NoError(t, err)
	assert.Equal(t, "<h1>Notice</h1><p>Dear Jane,</p>", p.Preview)
	assert.Contains(t, p.SanitizedHTML, "Notice")

	check, err = validate.Execute(ctx, ValidateSessionQuery{SessionID: sessionID})
	require.NoError(t, err)
	assert.True(t, check.Valid)
	assert.Empty(t, check.Missing)

	art, err := generate.Execute(ctx, GenerateSessionCommand{SessionID: sessionID})
	require.NoError(t, err)
	assert.Equal(t, []string{"<h1>Notice</h1><p>Dear Jane,</p>"}, f.assembler.bodies)
	assert.Equal(t, "Offer Letter.pdf", art.Name)
	assert.Equal(t, "application/pdf", art.Mimetype)
	assert.Contains(t, art.DownloadURL, "/api/v1/artifacts/"+art.ID+"/")
	assert.NotContains(t, f.store.sessions, sessionID)
	assert.Equal(t, art.ID, f.tpl.LastArtifactID())
}

func TestGenerateSessionUseCase_Execute_RenderingFailure(t *testing.T) {
	f := newExportFixture("<p>{{a}}</p>", testVariable(1, "a", 10, false))
	f.assembler.err = stderrors.New("rasterizer crashed")
	sessionID := f.start(t)

	generate := NewGenerateSessionUseCase(f.tplRepo, f.store, newTestExportService(f.tplRepo, f.assembler, f.artifacts), logger.Nop())
	_, err := generate.Execute(context.Background(), GenerateSessionCommand{SessionID: sessionID})

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeBadGateway, appErr.Type)
	assert.Contains(t, f.store.sessions, sessionID)
}

func TestGenerateSessionUseCase_Execute_TemplateGone(t *testing.T) {
	f := newExportFixture("<p>{{a}}</p>", testVariable(1, "a", 10, false))
	sessionID := f.start(t)

	generate := NewGenerateSessionUseCase(&mockTemplateRepository{}, f.store, newTestExportService(f.tplRepo, f.assembler, f.artifacts), logger.Nop())
	_, err := generate.Execute(context.Background(), GenerateSessionCommand{SessionID: sessionID})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestSessionLookup(t *testing.T) {
	store := newMemorySessionStore()
	get := NewGetExportSessionUseCase(store, logger.Nop())

	_, err := get.Execute(context.Background(), GetExportSessionQuery{SessionID: "not-a-uuid"})
	assert.True(t, errors.IsValidationError(err))

	_, err = get.Execute(context.Background(), GetExportSessionQuery{SessionID: "9b2f2c9e-4f39-4a53-9d8e-1f1d7a6a9c11"})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDiscardSessionUseCase_Execute(t *testing.T) {
	f := newExportFixture("<p>{{a}}</p>", testVariable(1, "a", 10, true))
	sessionID := f.start(t)

	discard := NewDiscardSessionUseCase(f.store, logger.Nop())
	require.NoError(t, discard.Execute(context.Background(), DiscardSessionCommand{SessionID: sessionID}))
	assert.Empty(t, f.store.sessions)

	err := discard.Execute(context.Background(), DiscardSessionCommand{SessionID: sessionID})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestPreviewSessionUseCase_Execute_EmptyBody(t *testing.T) {
	store := newMemorySessionStore()
	tpl := testTemplate("")
	s, err := document.NewExportSession("0d7c7f5e-57a4-4d3c-8a53-2b8d2c2f5e10", tpl, nil)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), s))

	uc := NewPreviewSessionUseCase(store, markdown.NewMarkdownService(), logger.Nop())
	result, err := uc.Execute(context.Background(), PreviewSessionQuery{SessionID: s.ID()})
	require.NoError(t, err)
	assert.Equal(t, document.NoPreviewContent, result.Preview)
}

package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/docforge/internal/application/document/services"
	"github.com/orris-inc/docforge/internal/domain/artifact"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

type mockTemplateRepository struct {
	CreateFunc         func(ctx context.Context, t *document.Template) error
	UpdateFunc         func(ctx context.Context, t *document.Template) error
	DeleteFunc         func(ctx context.Context, id uint) error
	GetByIDFunc        func(ctx context.Context, id uint) (*document.Template, error)
	GetBySIDFunc       func(ctx context.Context, sid string) (*document.Template, error)
	ListFunc           func(ctx context.Context, filter document.TemplateFilter) ([]*document.Template, int64, error)
	CountVariablesFunc func(ctx context.Context, templateIDs []uint) (map[uint]int, error)
}

func (m *mockTemplateRepository) Create(ctx context.Context, t *document.Template) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTemplateRepository) Update(ctx context.Context, t *document.Template) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTemplateRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTemplateRepository) GetByID(ctx context.Context, id uint) (*document.Template, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTemplateRepository) GetBySID(ctx context.Context, sid string) (*document.Template, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockTemplateRepository) List(ctx context.Context, filter document.TemplateFilter) ([]*document.Template, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTemplateRepository) CountVariables(ctx context.Context, templateIDs []uint) (map[uint]int, error) {
	if m.CountVariablesFunc != nil {
		return m.CountVariablesFunc(ctx, templateIDs)
	}
	return map[uint]int{}, nil
}

type mockVariableRepository struct {
	CreateFunc         func(ctx context.Context, v *document.VariableDefinition) error
	CreateBatchFunc    func(ctx context.Context, vars []*document.VariableDefinition) error
	UpdateFunc         func(ctx context.Context, v *document.VariableDefinition) error
	DeleteFunc         func(ctx context.Context, id uint) error
	GetBySIDFunc       func(ctx context.Context, sid string) (*document.VariableDefinition, error)
	ListByTemplateFunc func(ctx context.Context, templateID uint) ([]*document.VariableDefinition, error)
}

func (m *mockVariableRepository) Create(ctx context.Context, v *document.VariableDefinition) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return nil
}

func (m *mockVariableRepository) CreateBatch(ctx context.Context, vars []*document.VariableDefinition) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, vars)
	}
	return nil
}

func (m *mockVariableRepository) Update(ctx context.Context, v *document.VariableDefinition) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, v)
	}
	return nil
}

func (m *mockVariableRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockVariableRepository) GetBySID(ctx context.Context, sid string) (*document.VariableDefinition, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockVariableRepository) ListByTemplate(ctx context.Context, templateID uint) ([]*document.VariableDefinition, error) {
	if m.ListByTemplateFunc != nil {
		return m.ListByTemplateFunc(ctx, templateID)
	}
	return nil, nil
}

type mockArtifactRepository struct {
	CreateFunc           func(ctx context.Context, a *artifact.Artifact) error
	GetBySIDFunc         func(ctx context.Context, sid string) (*artifact.Artifact, error)
	DeleteByTemplateFunc func(ctx context.Context, templateID uint) error
}

func (m *mockArtifactRepository) DeleteCreatedBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (m *mockArtifactRepository) Create(ctx context.Context, a *artifact.Artifact) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return a.SetID(1)
}

func (m *mockArtifactRepository) GetBySID(ctx context.Context, sid string) (*artifact.Artifact, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockArtifactRepository) DeleteByTemplate(ctx context.Context, templateID uint) error {
	if m.DeleteByTemplateFunc != nil {
		return m.DeleteByTemplateFunc(ctx, templateID)
	}
	return nil
}

type memorySessionStore struct {
	sessions map[string]*document.ExportSession
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: map[string]*document.ExportSession{}}
}

func (s *memorySessionStore) Save(_ context.Context, session *document.ExportSession) error {
	s.sessions[session.ID()] = session
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (*document.ExportSession, error) {
	return s.sessions[id], nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockAssembler struct {
	bodies []string
	err    error
}

func (m *mockAssembler) Assemble(_ context.Context, bodyHTML string, _ document.Branding) ([]byte, error) {
	m.bodies = append(m.bodies, bodyHTML)
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF-1.4 test"), nil
}

type mockMailer struct {
	to       []string
	subject  string
	filename string
	err      error
}

func (m *mockMailer) SendAttachment(to []string, subject, _ string, filename string, _ []byte) error {
	m.to = to
	m.subject = subject
	m.filename = filename
	return m.err
}

// testTemplate returns a stored template with ID 1 and SID "tpl_test1".
func testTemplate(body string) *document.Template {
	now := time.Now()
	tpl, _ := document.ReconstructTemplate(1, "tpl_test1", "Offer Letter", "", body, true, false, "", now, now)
	return tpl
}

func testVariable(id uint, name string, order int, required bool) *document.VariableDefinition {
	now := time.Now()
	v, _ := document.ReconstructVariableDefinition(id, "var_"+name, document.VariableParams{
		TemplateID: 1,
		Name:       name,
		Label:      document.InferLabel(name),
		Required:   required,
		Order:      order,
	}, now, now)
	return v
}

func templateRepoWith(tpl *document.Template) *mockTemplateRepository {
	return &mockTemplateRepository{
		GetBySIDFunc: func(_ context.Context, sid string) (*document.Template, error) {
			if sid == tpl.SID() {
				return tpl, nil
			}
			return nil, nil
		},
		GetByIDFunc: func(_ context.Context, id uint) (*document.Template, error) {
			if id == tpl.ID() {
				return tpl, nil
			}
			return nil, nil
		},
	}
}

func newTestExportService(tplRepo document.TemplateRepository, asm document.DocumentAssembler, artifacts artifact.Repository) *services.ExportService {
	publisher := services.NewArtifactPublisher(artifacts, "/api/v1/artifacts", logger.Nop())
	return services.NewExportService(tplRepo, asm, publisher, document.Branding{Name: "Acme"}, logger.Nop())
}

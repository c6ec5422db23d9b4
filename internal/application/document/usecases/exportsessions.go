package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/orris-inc/docforge/internal/application/document/dto"
	"github.com/orris-inc/docforge/internal/application/document/services"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/logger"
	"github.com/orris-inc/docforge/internal/shared/services/markdown"
)

// loadSession resolves an export session ID.
func loadSession(ctx context.Context, store document.ExportSessionStore, sessionID string) (*document.ExportSession, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, errors.NewValidationError("invalid export session ID")
	}

	s, err := store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.NewNotFoundError("export session not found", sessionID)
	}
	return s, nil
}

type StartExportCommand struct {
	TemplateID string
}

type StartExportUseCase struct {
	templateRepo  document.TemplateRepository
	variableRepo  document.VariableRepository
	sessionStore  document.ExportSessionStore
	exportService *services.ExportService
	logger        logger.Interface
}

func NewStartExportUseCase(
	templateRepo document.TemplateRepository,
	variableRepo document.VariableRepository,
	sessionStore document.ExportSessionStore,
	exportService *services.ExportService,
	logger logger.Interface,
) *StartExportUseCase {
	return &StartExportUseCase{
		templateRepo:  templateRepo,
		variableRepo:  variableRepo,
		sessionStore:  sessionStore,
		exportService: exportService,
		logger:        logger,
	}
}

// Execute opens an export session for the template. A template without
// variables needs no input, so its PDF is generated and published at once.
func (uc *StartExportUseCase) Execute(ctx context.Context, cmd StartExportCommand) (*dto.ExportResultDTO, error) {
	uc.logger.Infow("executing start export use case", "template_id", cmd.TemplateID)

	tpl, err := loadTemplate(ctx, uc.templateRepo, cmd.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}
	if !tpl.HasContent() {
		return nil, toAppError(document.ErrEmptyContent)
	}

	vars, err := uc.variableRepo.ListByTemplate(ctx, tpl.ID())
	if err != nil {
		uc.logger.Errorw("failed to list variables", "template_id", tpl.SID(), "error", err)
		return nil, toAppError(err)
	}

	session, err := document.NewExportSession(uuid.NewString(), tpl, vars)
	if err != nil {
		return nil, toAppError(err)
	}

	if len(vars) == 0 {
		published, err := uc.exportService.Export(ctx, tpl, session, "")
		if err != nil {
			uc.logger.Errorw("failed to export template", "template_id", tpl.SID(), "error", err)
			return nil, toAppError(err)
		}
		uc.logger.Infow("template exported without variables", "template_id", tpl.SID(), "artifact_id", published.Artifact.SID())
		return &dto.ExportResultDTO{Artifact: dto.ToArtifactDTO(published.Artifact, published.DownloadRef)}, nil
	}

	if err := uc.sessionStore.Save(ctx, session); err != nil {
		uc.logger.Errorw("failed to store export session", "template_id", tpl.SID(), "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("export session created",
		"template_id", tpl.SID(),
		"session_id", session.ID(),
		"line_count", len(vars),
	)
	return &dto.ExportResultDTO{Session: dto.ToExportSessionDTO(session)}, nil
}

type GetExportSessionQuery struct {
	SessionID string
}

type GetExportSessionUseCase struct {
	sessionStore document.ExportSessionStore
	logger       logger.Interface
}

func NewGetExportSessionUseCase(
	sessionStore document.ExportSessionStore,
	logger logger.Interface,
) *GetExportSessionUseCase {
	return &GetExportSessionUseCase{
		sessionStore: sessionStore,
		logger:       logger,
	}
}

func (uc *GetExportSessionUseCase) Execute(ctx context.Context, query GetExportSessionQuery) (*dto.ExportSessionDTO, error) {
	s, err := loadSession(ctx, uc.sessionStore, query.SessionID)
	if err != nil {
		return nil, toAppError(err)
	}
	return dto.ToExportSessionDTO(s), nil
}

type SetSessionValuesCommand struct {
	SessionID string
	Values    map[string]string
}

type SetSessionValuesUseCase struct {
	sessionStore document.ExportSessionStore
	logger       logger.Interface
}

func NewSetSessionValuesUseCase(
	sessionStore document.ExportSessionStore,
	logger logger.Interface,
) *SetSessionValuesUseCase {
	return &SetSessionValuesUseCase{
		sessionStore: sessionStore,
		logger:       logger,
	}
}

// Execute applies all values or none of them.
func (uc *SetSessionValuesUseCase) Execute(ctx context.Context, cmd SetSessionValuesCommand) (*dto.ExportSessionDTO, error) {
	s, err := loadSession(ctx, uc.sessionStore, cmd.SessionID)
	if err != nil {
		return nil, toAppError(err)
	}

	if err := s.SetLineValues(cmd.Values); err != nil {
		return nil, toAppError(err)
	}

	if err := uc.sessionStore.Save(ctx, s); err != nil {
		uc.logger.Errorw("failed to store export session", "session_id", s.ID(), "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Debugw("export session values updated", "session_id", s.ID(), "value_count", len(cmd.Values))
	return dto.ToExportSessionDTO(s), nil
}

type PreviewSessionQuery struct {
	SessionID string
}

type PreviewSessionUseCase struct {
	sessionStore document.ExportSessionStore
	markdown     markdown.MarkdownService
	logger       logger.Interface
}

func NewPreviewSessionUseCase(
	sessionStore document.ExportSessionStore,
	markdownService markdown.MarkdownService,
	logger logger.Interface,
) *PreviewSessionUseCase {
	return &PreviewSessionUseCase{
		sessionStore: sessionStore,
		markdown:     markdownService,
		logger:       logger,
	}
}

func (uc *PreviewSessionUseCase) Execute(ctx context.Context, query PreviewSessionQuery) (*dto.PreviewDTO, error) {
	s, err := loadSession(ctx, uc.sessionStore, query.SessionID)
	if err != nil {
		return nil, toAppError(err)
	}

	preview := s.Preview()
	return &dto.PreviewDTO{
		SessionID:     s.ID(),
		Preview:       preview,
		SanitizedHTML: uc.markdown.Sanitize(preview),
	}, nil
}

type ValidateSessionQuery struct {
	SessionID string
}

type ValidateSessionUseCase struct {
	sessionStore document.ExportSessionStore
	logger       logger.Interface
}

func NewValidateSessionUseCase(
	sessionStore document.ExportSessionStore,
	logger logger.Interface,
) *ValidateSessionUseCase {
	return &ValidateSessionUseCase{
		sessionStore: sessionStore,
		logger:       logger,
	}
}

func (uc *ValidateSessionUseCase) Execute(ctx context.Context, query ValidateSessionQuery) (*dto.ValidationResultDTO, error) {
	s, err := loadSession(ctx, uc.sessionStore, query.SessionID)
	if err != nil {
		return nil, toAppError(err)
	}

	missing := s.Validate()
	if missing == nil {
		missing = []string{}
	}
	return &dto.ValidationResultDTO{
		Valid:   len(missing) == 0,
		Missing: missing,
	}, nil
}

type GenerateSessionCommand struct {
	SessionID string
}

type GenerateSessionUseCase struct {
	templateRepo  document.TemplateRepository
	sessionStore  document.ExportSessionStore
	exportService *services.ExportService
	logger        logger.Interface
}

func NewGenerateSessionUseCase(
	templateRepo document.TemplateRepository,
	sessionStore document.ExportSessionStore,
	exportService *services.ExportService,
	logger logger.Interface,
) *GenerateSessionUseCase {
	return &GenerateSessionUseCase{
		templateRepo:  templateRepo,
		sessionStore:  sessionStore,
		exportService: exportService,
		logger:        logger,
	}
}

// Execute generates and publishes the session PDF and then discards the
// session. A failed attempt leaves the session in place so it can be fixed and
// generated again.
func (uc *GenerateSessionUseCase) Execute(ctx context.Context, cmd GenerateSessionCommand) (*dto.ArtifactDTO, error) {
	uc.logger.Infow("executing generate session use case", "session_id", cmd.SessionID)

	s, err := loadSession(ctx, uc.sessionStore, cmd.SessionID)
	if err != nil {
		return nil, toAppError(err)
	}

	tpl, err := uc.templateRepo.GetByID(ctx, s.TemplateID())
	if err != nil {
		return nil, toAppError(err)
	}
	if tpl == nil {
		return nil, toAppError(&document.UnknownTemplateError{ID: s.TemplateSID()})
	}

	published, err := uc.exportService.Export(ctx, tpl, s, "")
	if err != nil {
		uc.logger.Errorw("failed to generate export session", "session_id", s.ID(), "template_id", tpl.SID(), "error", err)
		return nil, toAppError(err)
	}

	if err := uc.sessionStore.Delete(ctx, s.ID()); err != nil {
		uc.logger.Warnw("failed to discard export session", "session_id", s.ID(), "error", err)
	}

	uc.logger.Infow("export session generated",
		"session_id", s.ID(),
		"template_id", tpl.SID(),
		"artifact_id", published.Artifact.SID(),
	)
	return dto.ToArtifactDTO(published.Artifact, published.DownloadRef), nil
}

type DiscardSessionCommand struct {
	SessionID string
}

type DiscardSessionUseCase struct {
	sessionStore document.ExportSessionStore
	logger       logger.Interface
}

func NewDiscardSessionUseCase(
	sessionStore document.ExportSessionStore,
	logger logger.Interface,
) *DiscardSessionUseCase {
	return &DiscardSessionUseCase{
		sessionStore: sessionStore,
		logger:       logger,
	}
}

func (uc *DiscardSessionUseCase) Execute(ctx context.Context, cmd DiscardSessionCommand) error {
	s, err := loadSession(ctx, uc.sessionStore, cmd.SessionID)
	if err != nil {
		return toAppError(err)
	}

	if err := uc.sessionStore.Delete(ctx, s.ID()); err != nil {
		uc.logger.Errorw("failed to discard export session", "session_id", s.ID(), "error", err)
		return toAppError(err)
	}

	uc.logger.Infow("export session discarded", "session_id", s.ID())
	return nil
}

package usecases

import (
	"context"

	"github.com/orris-inc/docforge/internal/domain/artifact"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/id"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// ArtifactContent is a downloadable file.
type ArtifactContent struct {
	ID       string
	Filename string
	Mimetype string
	Data     []byte
}

func toArtifactContent(a *artifact.Artifact) *ArtifactContent {
	return &ArtifactContent{
		ID:       a.SID(),
		Filename: a.Name(),
		Mimetype: a.Mimetype(),
		Data:     a.Data(),
	}
}

func loadArtifact(ctx context.Context, repo artifact.Repository, sid string) (*artifact.Artifact, error) {
	if err := id.ValidatePrefix(sid, id.PrefixArtifact); err != nil {
		return nil, errors.NewValidationError("invalid artifact ID", err.Error())
	}

	a, err := repo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errors.NewNotFoundError("artifact not found", sid)
	}
	return a, nil
}

type GetArtifactQuery struct {
	ArtifactID string
}

type GetArtifactUseCase struct {
	artifactRepo artifact.Repository
	logger       logger.Interface
}

func NewGetArtifactUseCase(
	artifactRepo artifact.Repository,
	logger logger.Interface,
) *GetArtifactUseCase {
	return &GetArtifactUseCase{
		artifactRepo: artifactRepo,
		logger:       logger,
	}
}

func (uc *GetArtifactUseCase) Execute(ctx context.Context, query GetArtifactQuery) (*ArtifactContent, error) {
	a, err := loadArtifact(ctx, uc.artifactRepo, query.ArtifactID)
	if err != nil {
		return nil, toAppError(err)
	}
	return toArtifactContent(a), nil
}

type DownloadTemplatePDFQuery struct {
	TemplateID string
}

// DownloadTemplatePDFUseCase returns the last PDF generated from a template.
type DownloadTemplatePDFUseCase struct {
	templateRepo document.TemplateRepository
	artifactRepo artifact.Repository
	logger       logger.Interface
}

func NewDownloadTemplatePDFUseCase(
	templateRepo document.TemplateRepository,
	artifactRepo artifact.Repository,
	logger logger.Interface,
) *DownloadTemplatePDFUseCase {
	return &DownloadTemplatePDFUseCase{
		templateRepo: templateRepo,
		artifactRepo: artifactRepo,
		logger:       logger,
	}
}

func (uc *DownloadTemplatePDFUseCase) Execute(ctx context.Context, query DownloadTemplatePDFQuery) (*ArtifactContent, error) {
	tpl, err := loadTemplate(ctx, uc.templateRepo, query.TemplateID)
	if err != nil {
		return nil, toAppError(err)
	}
	if !tpl.HasPDF() {
		return nil, errors.NewValidationError(msgNoPDF)
	}

	a, err := uc.artifactRepo.GetBySID(ctx, tpl.LastArtifactID())
	if err != nil {
		return nil, toAppError(err)
	}
	if a == nil {
		uc.logger.Warnw("last artifact of template is gone", "template_id", tpl.SID(), "artifact_id", tpl.LastArtifactID())
		return nil, errors.NewValidationError(msgNoPDF)
	}

	content := toArtifactContent(a)
	content.Filename = tpl.PDFFilename()
	return content, nil
}

// ArtifactMailer delivers a file as an email attachment.
type ArtifactMailer interface {
	SendAttachment(to []string, subject, body, filename string, data []byte) error
}

type SendArtifactCommand struct {
	ArtifactID string
	To         []string
	Subject    string
	Message    string
}

type SendArtifactUseCase struct {
	artifactRepo artifact.Repository
	mailer       ArtifactMailer
	logger       logger.Interface
}

func NewSendArtifactUseCase(
	artifactRepo artifact.Repository,
	mailer ArtifactMailer,
	logger logger.Interface,
) *SendArtifactUseCase {
	return &SendArtifactUseCase{
		artifactRepo: artifactRepo,
		mailer:       mailer,
		logger:       logger,
	}
}

func (uc *SendArtifactUseCase) Execute(ctx context.Context, cmd SendArtifactCommand) error {
	uc.logger.Infow("executing send artifact use case", "artifact_id", cmd.ArtifactID, "recipient_count", len(cmd.To))

	if len(cmd.To) == 0 {
		return errors.NewValidationError("at least one recipient is required")
	}

	a, err := loadArtifact(ctx, uc.artifactRepo, cmd.ArtifactID)
	if err != nil {
		return toAppError(err)
	}

	subject := cmd.Subject
	if subject == "" {
		subject = a.Name()
	}
	body := cmd.Message
	if body == "" {
		body = "Please find the requested document attached."
	}

	if err := uc.mailer.SendAttachment(cmd.To, subject, body, a.Name(), a.Data()); err != nil {
		uc.logger.Errorw("failed to send artifact", "artifact_id", a.SID(), "error", err)
		return errors.NewBadGatewayError("failed to send email")
	}

	uc.logger.Infow("artifact sent", "artifact_id", a.SID(), "recipient_count", len(cmd.To))
	return nil
}

package services

import (
	"context"

	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// ExportService runs the last stage of an export: it generates the PDF for a
// filled session, publishes it and records it on the template.
type ExportService struct {
	templateRepo document.TemplateRepository
	assembler    document.DocumentAssembler
	publisher    *ArtifactPublisher
	branding     document.Branding
	logger       logger.Interface
}

func NewExportService(
	templateRepo document.TemplateRepository,
	assembler document.DocumentAssembler,
	publisher *ArtifactPublisher,
	branding document.Branding,
	logger logger.Interface,
) *ExportService {
	return &ExportService{
		templateRepo: templateRepo,
		assembler:    assembler,
		publisher:    publisher,
		branding:     branding,
		logger:       logger,
	}
}

// Export generates session and publishes the result as filename. An empty
// filename falls back to the template's PDF filename.
func (s *ExportService) Export(ctx context.Context, tpl *document.Template, session *document.ExportSession, filename string) (*PublishResult, error) {
	pdf, err := session.Generate(ctx, s.assembler, s.branding)
	if err != nil {
		return nil, err
	}

	if filename == "" {
		filename = tpl.PDFFilename()
	}
	result, err := s.publisher.Publish(ctx, pdf, filename, tpl.ID())
	if err != nil {
		return nil, err
	}

	tpl.RecordGeneratedPDF(result.Artifact.SID())
	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		s.logger.Errorw("failed to record generated pdf on template",
			"template_id", tpl.SID(),
			"artifact_id", result.Artifact.SID(),
			"error", err,
		)
		return nil, err
	}

	return result, nil
}


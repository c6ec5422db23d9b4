// Package services holds the application services shared by the document use
// cases: artifact publishing and the generate-then-publish export pipeline.
package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/orris-inc/docforge/internal/domain/artifact"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/id"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// PublishResult identifies a stored artifact and where to download it.
type PublishResult struct {
	Artifact    *artifact.Artifact
	Filename    string
	DownloadRef string
}

// ArtifactPublisher stores generated PDFs as downloadable artifacts.
type ArtifactPublisher struct {
	artifactRepo     artifact.Repository
	downloadBasePath string
	logger           logger.Interface
}

func NewArtifactPublisher(
	artifactRepo artifact.Repository,
	downloadBasePath string,
	logger logger.Interface,
) *ArtifactPublisher {
	return &ArtifactPublisher{
		artifactRepo:     artifactRepo,
		downloadBasePath: strings.TrimRight(downloadBasePath, "/"),
		logger:           logger,
	}
}

// Publish stores data under a safe ".pdf" filename with the PDF mimetype.
func (p *ArtifactPublisher) Publish(ctx context.Context, data []byte, filename string, templateID uint) (*PublishResult, error) {
	name := document.SafeFilename(filename)

	a, err := artifact.NewArtifact(name, artifact.MimeTypePDF, data, templateID, id.NewArtifactID)
	if err != nil {
		return nil, fmt.Errorf("failed to build artifact: %w", err)
	}

	if err := p.artifactRepo.Create(ctx, a); err != nil {
		p.logger.Errorw("failed to store artifact", "filename", name, "error", err)
		return nil, fmt.Errorf("failed to store artifact: %w", err)
	}

	p.logger.Infow("artifact published",
		"artifact_id", a.SID(),
		"filename", name,
		"size", a.Size(),
	)

	return &PublishResult{
		Artifact:    a,
		Filename:    name,
		DownloadRef: p.DownloadRef(a),
	}, nil
}

// DownloadRef builds "<base>/{id}/{name}?download=true" for a.
func (p *ArtifactPublisher) DownloadRef(a *artifact.Artifact) string {
	return fmt.Sprintf("%s/%s/%s?download=true", p.downloadBasePath, a.SID(), url.PathEscape(a.Name()))
}

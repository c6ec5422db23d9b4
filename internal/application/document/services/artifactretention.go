package services

import (
	"context"
	"time"

	"github.com/orris-inc/docforge/internal/domain/artifact"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// ArtifactRetention removes published artifacts once they are older than
// maxAge. A template whose last PDF was removed reports it as missing.
type ArtifactRetention struct {
	artifactRepo artifact.Repository
	maxAge       time.Duration
	now          func() time.Time
	logger       logger.Interface
}

func NewArtifactRetention(artifactRepo artifact.Repository, maxAge time.Duration, logger logger.Interface) *ArtifactRetention {
	return &ArtifactRetention{
		artifactRepo: artifactRepo,
		maxAge:       maxAge,
		now:          time.Now,
		logger:       logger,
	}
}

// Execute runs one purge and returns the number of artifacts removed. It is
// a no-op when maxAge is not positive.
func (r *ArtifactRetention) Execute(ctx context.Context) (int, error) {
	if r.maxAge <= 0 {
		return 0, nil
	}

	cutoff := r.now().Add(-r.maxAge)
	removed, err := r.artifactRepo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		r.logger.Infow("expired artifacts removed", "count", removed, "cutoff", cutoff)
	}
	return int(removed), nil
}

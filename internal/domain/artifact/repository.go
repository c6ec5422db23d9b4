package artifact

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, artifact *Artifact) error
	GetBySID(ctx context.Context, sid string) (*Artifact, error)
	// DeleteByTemplate removes every artifact produced from the template.
	DeleteByTemplate(ctx context.Context, templateID uint) error
	// DeleteCreatedBefore removes artifacts older than cutoff and returns
	// how many were removed.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

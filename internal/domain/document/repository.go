package document

import (
	"context"
)

type TemplateRepository interface {
	Create(ctx context.Context, template *Template) error
	Update(ctx context.Context, template *Template) error
	// Delete removes the template and all of its variables in one transaction.
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Template, error)
	GetBySID(ctx context.Context, sid string) (*Template, error)
	List(ctx context.Context, filter TemplateFilter) ([]*Template, int64, error)
	CountVariables(ctx context.Context, templateIDs []uint) (map[uint]int, error)
}

type TemplateFilter struct {
	Active   *bool
	Favorite *bool
	Search   string
	Page     int
	PageSize int
}

type VariableRepository interface {
	// Create fails with *DuplicateVariableNameError when the template already
	// has a variable with the same name.
	Create(ctx context.Context, variable *VariableDefinition) error
	// CreateBatch inserts all variables or none of them.
	CreateBatch(ctx context.Context, variables []*VariableDefinition) error
	Update(ctx context.Context, variable *VariableDefinition) error
	Delete(ctx context.Context, id uint) error
	GetBySID(ctx context.Context, sid string) (*VariableDefinition, error)
	// ListByTemplate returns the template's variables ordered by order, then id.
	ListByTemplate(ctx context.Context, templateID uint) ([]*VariableDefinition, error)
}

// ExportSessionStore keeps open export sessions between requests.
type ExportSessionStore interface {
	Save(ctx context.Context, session *ExportSession) error
	// Get returns nil, nil when the session does not exist or has expired.
	Get(ctx context.Context, id string) (*ExportSession, error)
	Delete(ctx context.Context, id string) error
}

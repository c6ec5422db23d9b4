package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/docforge/internal/domain/artifact"
	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/infrastructure/repository"
	"github.com/orris-inc/docforge/internal/shared/db"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	templateRepo document.TemplateRepository
	variableRepo document.VariableRepository
	artifactRepo artifact.Repository
	txManager    *db.TransactionManager
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(gdb *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		templateRepo: repository.NewTemplateRepository(gdb, log),
		variableRepo: repository.NewVariableRepository(gdb, log),
		artifactRepo: repository.NewArtifactRepository(gdb, log),
		txManager:    db.NewTransactionManager(gdb),
	}
}

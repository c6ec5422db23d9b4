package migration

import (
	"github.com/orris-inc/docforge/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the models the goose scripts create, for
// development databases and tests.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.DocumentTemplateModel{},
		&models.TemplateVariableModel{},
		&models.ArtifactModel{},
	}
}

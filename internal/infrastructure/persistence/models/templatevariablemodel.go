package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/orris-inc/docforge/internal/shared/constants"
)

// TemplateVariableModel is the persistence model for variable definitions.
// Names are unique per template.
type TemplateVariableModel struct {
	ID            uint           `gorm:"primaryKey"`
	SID           string         `gorm:"column:sid;uniqueIndex;size:50;not null"`
	TemplateID    uint           `gorm:"not null;uniqueIndex:idx_template_variable_name,priority:1"`
	Name          string         `gorm:"size:100;not null;uniqueIndex:idx_template_variable_name,priority:2"`
	Label         string         `gorm:"size:255;not null"`
	VariableType  string         `gorm:"size:30;not null"`
	DefaultValue  string         `gorm:"type:text"`
	Required      bool           `gorm:"not null"`
	SortOrder     int            `gorm:"not null;index"`
	SelectOptions datatypes.JSON
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (TemplateVariableModel) TableName() string {
	return constants.TableTemplateVariables
}

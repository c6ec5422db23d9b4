package models

import (
	"time"

	"github.com/orris-inc/docforge/internal/shared/constants"
)

// DocumentTemplateModel is the persistence model for templates.
type DocumentTemplateModel struct {
	ID             uint   `gorm:"primaryKey"`
	SID            string `gorm:"column:sid;uniqueIndex;size:50;not null"`
	Name           string `gorm:"size:255;not null"`
	Summary        string `gorm:"type:text"`
	Body           string
	Active         bool   `gorm:"not null;index"`
	Favorite       bool   `gorm:"not null;index"`
	LastArtifactID string `gorm:"size:50;not null;default:''"`
	CreatedAt      time.Time
	UpdatedAt      time.Time `gorm:"index"`
}

func (DocumentTemplateModel) TableName() string {
	return constants.TableDocumentTemplates
}

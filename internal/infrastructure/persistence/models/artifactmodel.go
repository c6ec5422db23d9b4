package models

import (
	"time"

	"github.com/orris-inc/docforge/internal/shared/constants"
)

type ArtifactModel struct {
	ID         uint   `gorm:"primaryKey"`
	SID        string `gorm:"column:sid;uniqueIndex;size:50;not null"`
	Name       string `gorm:"size:255;not null"`
	Mimetype   string `gorm:"size:100;not null"`
	Size       int64  `gorm:"not null"`
	Data       []byte `gorm:"not null"`
	TemplateID uint   `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"index:idx_artifacts_created_at"`
}

func (ArtifactModel) TableName() string {
	return constants.TableArtifacts
}

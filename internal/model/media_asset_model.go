package model

import (
	"time"

	"github.com/google/uuid"
)

type MediaAsset struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileName   string    `gorm:"type:varchar(255);not null"`
	FilePath   string    `gorm:"type:text;not null"`
	OwnerId    uuid.UUID `gorm:"type:uuid;not null;index"`
	UploadedAt time.Time `gorm:"autoCreateTime"`
}

func (MediaAsset) TableName() string {
	return "media_assets"
}

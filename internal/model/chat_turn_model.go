package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatTurn struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID  `gorm:"type:uuid;not null;index:idx_chat_turns_user_created,priority:1"`
	Role         string     `gorm:"type:varchar(50);not null"`
	Content      string     `gorm:"type:text;not null"`
	MediaAssetId *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;index:idx_chat_turns_user_created,priority:2"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}

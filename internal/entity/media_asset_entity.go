package entity

import (
	"time"

	"github.com/google/uuid"
)

// MediaAsset is an immutable record of one uploaded binary. FileName is
// system-generated and never derived from the client-supplied name.
type MediaAsset struct {
	Id         uuid.UUID
	FileName   string
	FilePath   string
	OwnerId    uuid.UUID
	UploadedAt time.Time
}

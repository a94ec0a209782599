package dto

import (
	"time"

	"github.com/google/uuid"
)

// SendChatRequest carries one interaction's inputs. Question may be an
// empty string but the form field itself must be present; FileBytes is nil
// when no file was attached.
type SendChatRequest struct {
	Question      string
	FileBytes     []byte
	FileExtension string
}

type SendChatResponse struct {
	Response string     `json:"response"`
	ImageId  *uuid.UUID `json:"image_id"`
	// Reserved for annotated-image output; always null for now.
	AnnotatedImage *string `json:"annotated_image"`
}

type ChatTurnResponse struct {
	Id        uuid.UUID  `json:"id"`
	UserId    uuid.UUID  `json:"user_id"`
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ImageId   *uuid.UUID `json:"image_id"`
	CreatedAt time.Time  `json:"created_at"`
}

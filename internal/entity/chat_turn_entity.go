package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one immutable message in a user's conversation. A user turn
// and its ai reply are linked only by adjacency in creation-time order.
type ChatTurn struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Role         string // constant.ChatTurnRoleUser or constant.ChatTurnRoleAi
	Content      string
	MediaAssetId *uuid.UUID
	CreatedAt    time.Time
}

package contract

import (
	"context"

	"chimera-chat-be/internal/entity"
	"chimera-chat-be/internal/repository/specification"
)

// ChatTurnRepository is append-only by contract: no update or delete is
// exposed even though the underlying store is mutable.
type ChatTurnRepository interface {
	Create(ctx context.Context, turn *entity.ChatTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error)
}

package unitofwork

import (
	"context"

	"chimera-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	MediaAssetRepository() contract.MediaAssetRepository
	ChatTurnRepository() contract.ChatTurnRepository
}

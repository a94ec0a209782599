package contract

import (
	"context"

	"chimera-chat-be/internal/entity"
	"chimera-chat-be/internal/repository/specification"
)

type MediaAssetRepository interface {
	Create(ctx context.Context, asset *entity.MediaAsset) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MediaAsset, error)
}

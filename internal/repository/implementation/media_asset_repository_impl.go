package implementation

import (
	"context"
	"errors"

	"chimera-chat-be/internal/entity"
	"chimera-chat-be/internal/mapper"
	"chimera-chat-be/internal/model"
	"chimera-chat-be/internal/repository/contract"
	"chimera-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MediaAssetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MediaAssetMapper
}

func NewMediaAssetRepository(db *gorm.DB) contract.MediaAssetRepository {
	return &MediaAssetRepositoryImpl{
		db:     db,
		mapper: mapper.NewMediaAssetMapper(),
	}
}

func (r *MediaAssetRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MediaAssetRepositoryImpl) Create(ctx context.Context, asset *entity.MediaAsset) error {
	modelAsset := r.mapper.ToModel(asset)
	if err := r.db.WithContext(ctx).Create(modelAsset).Error; err != nil {
		return err
	}
	*asset = *r.mapper.ToEntity(modelAsset)
	return nil
}

func (r *MediaAssetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MediaAsset, error) {
	var modelAsset model.MediaAsset
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelAsset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelAsset), nil
}

package mapper

import (
	"chimera-chat-be/internal/entity"
	"chimera-chat-be/internal/model"
)

type MediaAssetMapper struct{}

func NewMediaAssetMapper() *MediaAssetMapper {
	return &MediaAssetMapper{}
}

func (m *MediaAssetMapper) ToEntity(a *model.MediaAsset) *entity.MediaAsset {
	if a == nil {
		return nil
	}
	return &entity.MediaAsset{
		Id:         a.Id,
		FileName:   a.FileName,
		FilePath:   a.FilePath,
		OwnerId:    a.OwnerId,
		UploadedAt: a.UploadedAt,
	}
}

func (m *MediaAssetMapper) ToModel(a *entity.MediaAsset) *model.MediaAsset {
	if a == nil {
		return nil
	}
	return &model.MediaAsset{
		Id:         a.Id,
		FileName:   a.FileName,
		FilePath:   a.FilePath,
		OwnerId:    a.OwnerId,
		UploadedAt: a.UploadedAt,
	}
}

package mapper

import (
	"chimera-chat-be/internal/entity"
	"chimera-chat-be/internal/model"
)

type ChatTurnMapper struct{}

func NewChatTurnMapper() *ChatTurnMapper {
	return &ChatTurnMapper{}
}

func (m *ChatTurnMapper) ToEntity(t *model.ChatTurn) *entity.ChatTurn {
	if t == nil {
		return nil
	}
	return &entity.ChatTurn{
		Id:           t.Id,
		UserId:       t.UserId,
		Role:         t.Role,
		Content:      t.Content,
		MediaAssetId: t.MediaAssetId,
		CreatedAt:    t.CreatedAt,
	}
}

func (m *ChatTurnMapper) ToModel(t *entity.ChatTurn) *model.ChatTurn {
	if t == nil {
		return nil
	}
	return &model.ChatTurn{
		Id:           t.Id,
		UserId:       t.UserId,
		Role:         t.Role,
		Content:      t.Content,
		MediaAssetId: t.MediaAssetId,
		CreatedAt:    t.CreatedAt,
	}
}

func (m *ChatTurnMapper) ToEntities(turns []*model.ChatTurn) []*entity.ChatTurn {
	entities := make([]*entity.ChatTurn, len(turns))
	for i, t := range turns {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

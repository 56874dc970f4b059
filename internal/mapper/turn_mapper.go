package mapper

import (
	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/model"
)

type TurnMapper struct{}

func NewTurnMapper() *TurnMapper {
	return &TurnMapper{}
}

func (m *TurnMapper) ToEntity(t *model.ChatTurn) *entity.ChatTurn {
	if t == nil {
		return nil
	}
	return &entity.ChatTurn{
		Id:        t.Id,
		SessionID: t.SessionID,
		ActorID:   t.ActorID,
		Role:      t.Role,
		Text:      t.Text,
		State:     t.State,
		CreatedAt: t.CreatedAt,
	}
}

func (m *TurnMapper) ToModel(t *entity.ChatTurn) *model.ChatTurn {
	if t == nil {
		return nil
	}
	return &model.ChatTurn{
		Id:        t.Id,
		SessionID: t.SessionID,
		ActorID:   t.ActorID,
		Role:      t.Role,
		Text:      t.Text,
		State:     t.State,
		CreatedAt: t.CreatedAt,
	}
}

func (m *TurnMapper) ToEntities(turns []*model.ChatTurn) []*entity.ChatTurn {
	entities := make([]*entity.ChatTurn, len(turns))
	for i, t := range turns {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

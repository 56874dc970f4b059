package mapper

import (
	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/model"
)

type ActorMapper struct{}

func NewActorMapper() *ActorMapper {
	return &ActorMapper{}
}

func (m *ActorMapper) ToEntity(a *model.Actor) *entity.Actor {
	if a == nil {
		return nil
	}
	return &entity.Actor{
		Id:           a.Id,
		EmployeeID:   a.EmployeeID,
		Email:        a.Email,
		FullName:     a.FullName,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		Department:   a.Department,
		Status:       entity.ActorStatus(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *ActorMapper) ToModel(a *entity.Actor) *model.Actor {
	if a == nil {
		return nil
	}
	return &model.Actor{
		Id:           a.Id,
		EmployeeID:   a.EmployeeID,
		Email:        a.Email,
		FullName:     a.FullName,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		Department:   a.Department,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *ActorMapper) ToEntities(actors []*model.Actor) []*entity.Actor {
	entities := make([]*entity.Actor, len(actors))
	for i, a := range actors {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

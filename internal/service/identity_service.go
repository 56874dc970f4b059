package service

import (
	"context"

	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/repository/specification"
	"ai-recorddesk-be/internal/repository/unitofwork"
	"ai-recorddesk-be/pkg/authz"
)

// ActorDirectory resolves actor identities for the authorization engine
// straight from the database. No caching: a role change or suspension takes
// effect on the very next authorization check.
type ActorDirectory struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewActorDirectory(uowFactory unitofwork.RepositoryFactory) *ActorDirectory {
	return &ActorDirectory{uowFactory: uowFactory}
}

func (d *ActorDirectory) Resolve(ctx context.Context, actorID string) (*authz.Identity, error) {
	uow := d.uowFactory.NewUnitOfWork(ctx)

	actor, err := uow.ActorRepository().FindOne(ctx, specification.ByEmployeeID{EmployeeID: actorID})
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, authz.ErrUnknownActor
	}

	return &authz.Identity{
		ActorID:    actor.EmployeeID,
		Role:       actor.Role,
		Department: actor.Department,
		Active:     actor.Status == entity.ActorStatusActive,
	}, nil
}

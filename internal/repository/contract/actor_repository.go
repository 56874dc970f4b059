package contract

import (
	"context"

	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/repository/specification"
)

type ActorRepository interface {
	Create(ctx context.Context, actor *entity.Actor) error
	Update(ctx context.Context, actor *entity.Actor) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Actor, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Actor, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

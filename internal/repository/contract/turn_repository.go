package contract

import (
	"context"

	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/repository/specification"
)

type TurnRepository interface {
	Create(ctx context.Context, turn *entity.ChatTurn) error
	CreateBulk(ctx context.Context, turns []*entity.ChatTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error)
}

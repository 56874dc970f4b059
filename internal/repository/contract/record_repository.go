package contract

import (
	"context"

	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/repository/specification"
)

type RecordRepository interface {
	Create(ctx context.Context, record *entity.Record) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Record, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Record, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

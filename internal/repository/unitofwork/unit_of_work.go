package unitofwork

import (
	"context"

	"ai-recorddesk-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ActorRepository() contract.ActorRepository
	RecordRepository() contract.RecordRepository
	TurnRepository() contract.TurnRepository
}

package implementation

import (
	"context"

	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/mapper"
	"ai-recorddesk-be/internal/model"
	"ai-recorddesk-be/internal/repository/contract"
	"ai-recorddesk-be/internal/repository/specification"

	"gorm.io/gorm"
)

type TurnRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TurnMapper
}

func NewTurnRepository(db *gorm.DB) contract.TurnRepository {
	return &TurnRepositoryImpl{
		db:     db,
		mapper: mapper.NewTurnMapper(),
	}
}

func (r *TurnRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TurnRepositoryImpl) Create(ctx context.Context, turn *entity.ChatTurn) error {
	modelTurn := r.mapper.ToModel(turn)
	if err := r.db.WithContext(ctx).Create(modelTurn).Error; err != nil {
		return err
	}
	*turn = *r.mapper.ToEntity(modelTurn)
	return nil
}

func (r *TurnRepositoryImpl) CreateBulk(ctx context.Context, turns []*entity.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}
	modelTurns := make([]*model.ChatTurn, len(turns))
	for i, t := range turns {
		modelTurns[i] = r.mapper.ToModel(t)
	}
	return r.db.WithContext(ctx).Create(&modelTurns).Error
}

func (r *TurnRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error) {
	var modelTurns []*model.ChatTurn
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelTurns).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelTurns), nil
}

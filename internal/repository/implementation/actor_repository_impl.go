package implementation

import (
	"context"
	"errors"

	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/mapper"
	"ai-recorddesk-be/internal/model"
	"ai-recorddesk-be/internal/repository/contract"
	"ai-recorddesk-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ActorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActorMapper
}

func NewActorRepository(db *gorm.DB) contract.ActorRepository {
	return &ActorRepositoryImpl{
		db:     db,
		mapper: mapper.NewActorMapper(),
	}
}

func (r *ActorRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ActorRepositoryImpl) Create(ctx context.Context, actor *entity.Actor) error {
	modelActor := r.mapper.ToModel(actor)
	if err := r.db.WithContext(ctx).Create(modelActor).Error; err != nil {
		return err
	}
	*actor = *r.mapper.ToEntity(modelActor)
	return nil
}

func (r *ActorRepositoryImpl) Update(ctx context.Context, actor *entity.Actor) error {
	modelActor := r.mapper.ToModel(actor)
	if err := r.db.WithContext(ctx).Save(modelActor).Error; err != nil {
		return err
	}
	*actor = *r.mapper.ToEntity(modelActor)
	return nil
}

func (r *ActorRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Actor, error) {
	var modelActor model.Actor
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelActor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelActor), nil
}

func (r *ActorRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Actor, error) {
	var modelActors []*model.Actor
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelActors).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelActors), nil
}

func (r *ActorRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Actor{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package implementation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/mapper"
	"ai-recorddesk-be/internal/model"
	"ai-recorddesk-be/internal/repository/contract"
	"ai-recorddesk-be/internal/repository/specification"

	"gorm.io/gorm"
)

type RecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecordMapper
}

func NewRecordRepository(db *gorm.DB) contract.RecordRepository {
	return &RecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecordMapper(),
	}
}

// newRecordID returns a 24-character hex identifier, the token shape the
// query translator recognizes in user text.
func newRecordID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (r *RecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RecordRepositoryImpl) Create(ctx context.Context, record *entity.Record) error {
	if record.Id == "" {
		record.Id = newRecordID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	modelRecord, err := r.mapper.ToModel(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(modelRecord).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(modelRecord)
	return nil
}

func (r *RecordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Record, error) {
	var modelRecord model.Record
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelRecord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelRecord), nil
}

func (r *RecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Record, error) {
	var modelRecords []*model.Record
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelRecords).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelRecords), nil
}

func (r *RecordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Record{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

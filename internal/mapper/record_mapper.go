package mapper

import (
	"encoding/json"

	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/model"
)

type RecordMapper struct{}

func NewRecordMapper() *RecordMapper {
	return &RecordMapper{}
}

func (m *RecordMapper) ToEntity(r *model.Record) *entity.Record {
	if r == nil {
		return nil
	}
	doc := map[string]string{}
	if len(r.Document) > 0 {
		// A document written by this system is always a flat string map;
		// anything else in the column is ignored rather than fatal.
		_ = json.Unmarshal(r.Document, &doc)
	}
	return &entity.Record{
		Id:         r.Id,
		Collection: r.Collection,
		Document:   doc,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *RecordMapper) ToModel(r *entity.Record) (*model.Record, error) {
	if r == nil {
		return nil, nil
	}
	doc, err := json.Marshal(r.Document)
	if err != nil {
		return nil, err
	}
	return &model.Record{
		Id:         r.Id,
		Collection: r.Collection,
		Document:   doc,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
	}, nil
}

func (m *RecordMapper) ToEntities(records []*model.Record) []*entity.Record {
	entities := make([]*entity.Record, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

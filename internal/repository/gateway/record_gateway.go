package gateway

import (
	"context"
	"fmt"

	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/repository/specification"
	"ai-recorddesk-be/internal/repository/unitofwork"
	"ai-recorddesk-be/pkg/store"
)

// RecordGateway adapts the record repository to the store.Gateway contract
// consumed by the conversation engine. Database failures surface as
// store.ErrUnavailable so callers treat them as outages, not bad input.
type RecordGateway struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewRecordGateway(uowFactory unitofwork.RepositoryFactory) *RecordGateway {
	return &RecordGateway{uowFactory: uowFactory}
}

func (g *RecordGateway) Insert(ctx context.Context, collection string, fields map[string]string) (string, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	actorID := ""
	if v, ok := fields["_created_by"]; ok {
		actorID = v
		delete(fields, "_created_by")
	}

	record := &entity.Record{
		Collection: collection,
		Document:   fields,
		CreatedBy:  actorID,
	}
	if err := uow.RecordRepository().Create(ctx, record); err != nil {
		return "", fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return record.Id, nil
}

func (g *RecordGateway) Query(ctx context.Context, collection string, q *store.StructuredQuery) ([]store.Document, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByCollection{Name: collection},
	}
	for field, cond := range q.Filter {
		if field == "_id" {
			specs = append(specs, specification.ByRecordID{ID: cond.Value})
			continue
		}
		specs = append(specs, specification.DocumentField{Field: field, Value: cond.Value})
	}
	if q.Sort != nil {
		specs = append(specs, sortSpec(q.Sort))
	}
	limit := q.Limit
	if limit <= 0 || limit > store.DefaultQueryLimit {
		limit = store.DefaultQueryLimit
	}
	specs = append(specs, specification.Pagination{Limit: limit})

	records, err := uow.RecordRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	docs := make([]store.Document, 0, len(records))
	for _, r := range records {
		docs = append(docs, store.Document{
			ID:         r.Id,
			Collection: r.Collection,
			Fields:     r.Document,
		})
	}
	return docs, nil
}

func sortSpec(s *store.Sort) specification.Specification {
	if s.Field == "created_at" {
		return specification.OrderBy{Field: "created_at", Desc: s.Desc}
	}
	// Sort fields come from the schema registry, never from raw user input,
	// so interpolating the JSONB path is safe here.
	return specification.OrderBy{Field: fmt.Sprintf("document ->> '%s'", s.Field), Desc: s.Desc}
}

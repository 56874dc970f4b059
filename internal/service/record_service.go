package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ai-recorddesk-be/internal/dto"
	"ai-recorddesk-be/internal/pkg/logger"
	"ai-recorddesk-be/pkg/authz"
	"ai-recorddesk-be/pkg/events"
	pktNats "ai-recorddesk-be/pkg/nats"
	"ai-recorddesk-be/pkg/schema"
	"ai-recorddesk-be/pkg/store"
)

// ErrDenied wraps an authorization refusal so the controller can answer 403.
var ErrDenied = errors.New("operation not permitted")

type IRecordService interface {
	Create(ctx context.Context, actorID string, req *dto.CreateRecordRequest) (*dto.CreateRecordResponse, error)
	Query(ctx context.Context, actorID string, req *dto.QueryRecordRequest) (*dto.QueryRecordResponse, error)
	Collections() []string
}

type recordService struct {
	registry         *schema.Registry
	auth             *authz.Engine
	gateway          store.Gateway
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewRecordService(
	registry *schema.Registry,
	auth *authz.Engine,
	gateway store.Gateway,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IRecordService {
	return &recordService{
		registry:         registry,
		auth:             auth,
		gateway:          gateway,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *recordService) Collections() []string {
	return s.registry.Names()
}

func (s *recordService) Create(ctx context.Context, actorID string, req *dto.CreateRecordRequest) (*dto.CreateRecordResponse, error) {
	if err := s.authorize(ctx, actorID, req.Collection, store.OperationCreate); err != nil {
		return nil, err
	}

	for field, value := range req.Fields {
		if err := s.registry.ValidateField(req.Collection, field, value); err != nil {
			return nil, err
		}
	}
	missing, err := s.registry.MissingRequired(req.Collection, req.Fields)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields: %v", missing)
	}

	fields := make(map[string]string, len(req.Fields)+1)
	for k, v := range req.Fields {
		fields[k] = v
	}
	if actorID != "" {
		fields["_created_by"] = actorID
	}

	id, err := s.gateway.Insert(ctx, req.Collection, fields)
	if err != nil {
		return nil, err
	}

	s.emitAudit(ctx, dto.AuditMessage{
		ActorID:    actorID,
		Collection: req.Collection,
		Operation:  store.OperationCreate,
		RecordID:   id,
		Outcome:    "saved",
	})
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events.RecordCreated(actorID, req.Collection, id))
	}

	return &dto.CreateRecordResponse{RecordID: id, Collection: req.Collection}, nil
}

func (s *recordService) Query(ctx context.Context, actorID string, req *dto.QueryRecordRequest) (*dto.QueryRecordResponse, error) {
	if err := s.authorize(ctx, actorID, req.Collection, store.OperationRead); err != nil {
		return nil, err
	}

	q := &store.StructuredQuery{
		Filter: map[string]store.Condition{},
		Sort:   &store.Sort{Field: "created_at", Desc: true},
		Limit:  req.Limit,
	}
	if q.Limit <= 0 || q.Limit > store.DefaultQueryLimit {
		q.Limit = store.DefaultQueryLimit
	}
	for field, value := range req.Filter {
		if field != "_id" {
			if err := s.registry.ValidateField(req.Collection, field, value); err != nil {
				return nil, err
			}
		}
		q.Filter[field] = store.Condition{Op: store.OpEquals, Value: value}
	}

	docs, err := s.gateway.Query(ctx, req.Collection, q)
	if err != nil {
		return nil, err
	}

	s.emitAudit(ctx, dto.AuditMessage{
		ActorID:    actorID,
		Collection: req.Collection,
		Operation:  store.OperationRead,
		Matches:    len(docs),
		Outcome:    "returned",
	})
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events.RecordQueried(actorID, req.Collection, len(docs)))
	}

	return &dto.QueryRecordResponse{
		Collection: req.Collection,
		Matches:    len(docs),
		Documents:  docs,
	}, nil
}

func (s *recordService) authorize(ctx context.Context, actorID, collection, op string) error {
	decision, err := s.auth.Authorize(ctx, actorID, collection, op)
	if err != nil {
		return err
	}
	if decision.Allowed {
		return nil
	}

	s.log.Warn("record", "access denied", map[string]interface{}{
		"actor_id":   actorID,
		"collection": collection,
		"operation":  op,
		"reason":     decision.Reason,
	})
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events.AccessDenied(actorID, collection, op, decision.Reason))
	}
	s.emitAudit(ctx, dto.AuditMessage{
		ActorID:    actorID,
		Collection: collection,
		Operation:  op,
		Outcome:    "denied",
	})
	return fmt.Errorf("%w: %s", ErrDenied, decision.Reason)
}

func (s *recordService) emitAudit(ctx context.Context, msg dto.AuditMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("record", "audit publish failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

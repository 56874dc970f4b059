package service

import (
	"context"
	"encoding/json"

	"ai-recorddesk-be/internal/dto"
	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/pkg/logger"
	"ai-recorddesk-be/internal/repository/specification"
	"ai-recorddesk-be/internal/repository/unitofwork"
	"ai-recorddesk-be/pkg/conversation"
	"ai-recorddesk-be/pkg/events"
	pktNats "ai-recorddesk-be/pkg/nats"
	"ai-recorddesk-be/pkg/store"

	"github.com/google/uuid"
)

type IChatService interface {
	HandleMessage(ctx context.Context, actorID string, req *dto.ChatRequest) (*dto.ChatResponse, error)
	History(ctx context.Context, sessionID string) ([]dto.ChatTurnDTO, error)
}

type chatService struct {
	machine          *conversation.Machine
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewChatService(
	machine *conversation.Machine,
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		machine:          machine,
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *chatService) HandleMessage(ctx context.Context, actorID string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	reply, err := s.machine.HandleTurn(ctx, req.SessionID, actorID, req.Message)
	if err != nil {
		s.log.Error("chat", "turn failed", map[string]interface{}{
			"session_id": req.SessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	if reply.RecordID != "" {
		s.emitAudit(ctx, dto.AuditMessage{
			ActorID:    actorID,
			Collection: reply.Collection,
			Operation:  store.OperationCreate,
			RecordID:   reply.RecordID,
			Outcome:    "saved",
		})
		if s.eventPublisher != nil {
			_ = s.eventPublisher.Publish(ctx, events.RecordCreated(actorID, reply.Collection, reply.RecordID))
		}
	}
	if reply.Documents != nil {
		s.emitAudit(ctx, dto.AuditMessage{
			ActorID:    actorID,
			Collection: reply.Collection,
			Operation:  store.OperationRead,
			Matches:    len(reply.Documents),
			Outcome:    "returned",
		})
		if s.eventPublisher != nil {
			_ = s.eventPublisher.Publish(ctx, events.RecordQueried(actorID, reply.Collection, len(reply.Documents)))
		}
	}

	s.journalTurns(ctx, actorID, req, reply)

	return &dto.ChatResponse{
		SessionID: req.SessionID,
		Reply:     reply.Text,
		State:     reply.State,
		RecordID:  reply.RecordID,
		Documents: reply.Documents,
	}, nil
}

func (s *chatService) History(ctx context.Context, sessionID string) ([]dto.ChatTurnDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.TurnRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ChatTurnDTO, 0, len(turns))
	for _, t := range turns {
		out = append(out, dto.ChatTurnDTO{
			Role:      t.Role,
			Text:      t.Text,
			State:     t.State,
			CreatedAt: t.CreatedAt,
		})
	}
	return out, nil
}

// journalTurns writes the exchange to the durable chat_turns table. Best
// effort: a journal failure never fails the user's turn.
func (s *chatService) journalTurns(ctx context.Context, actorID string, req *dto.ChatRequest, reply *conversation.Reply) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns := []*entity.ChatTurn{
		{Id: uuid.New(), SessionID: req.SessionID, ActorID: actorID, Role: "user", Text: req.Message, State: reply.State},
		{Id: uuid.New(), SessionID: req.SessionID, ActorID: actorID, Role: "assistant", Text: reply.Text, State: reply.State},
	}
	if err := uow.TurnRepository().CreateBulk(ctx, turns); err != nil {
		s.log.Warn("chat", "turn journal failed", map[string]interface{}{
			"session_id": req.SessionID,
			"error":      err.Error(),
		})
	}
}

func (s *chatService) emitAudit(ctx context.Context, msg dto.AuditMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("chat", "audit publish failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ai-recorddesk-be/internal/dto"
	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// auditCollection is where completed operations are journaled. It is a
// normal collection, readable through the same query paths as any other.
const auditCollection = "audit_log_viewer"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.AuditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	actorID := payload.ActorID
	if actorID == "" {
		actorID = "anonymous"
	}

	document := map[string]string{
		"log_id":    uuid.New().String(),
		"timestamp": time.Now().Format(time.RFC3339),
		"action":    fmt.Sprintf("%s %s (%s)", payload.Operation, payload.Collection, payload.Outcome),
		"user_id":   actorID,
	}
	if payload.RecordID != "" {
		document["device_info"] = fmt.Sprintf("record=%s", payload.RecordID)
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	record := &entity.Record{
		Collection: auditCollection,
		Document:   document,
		CreatedBy:  actorID,
	}
	if err := uow.RecordRepository().Create(ctx, record); err != nil {
		log.Printf("[ERROR] Failed to journal audit entry: %v", err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}

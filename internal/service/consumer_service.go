package service

import (
	"context"

	"chameleon-be/internal/pkg/logger"
	"chameleon-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// SessionEventHandler receives decoded session events; the websocket hub implements it.
type SessionEventHandler interface {
	HandleSessionEvent(ctx context.Context, evt events.Event)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	handler    SessionEventHandler
	logger     logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, topicName string, handler SessionEventHandler, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		handler:    handler,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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
	evt, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal session event", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.handler.HandleSessionEvent(ctx, evt)
	msg.Ack()
}

package service

import (
	"context"
	"time"

	"chameleon-be/internal/pkg/logger"
	"chameleon-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const SessionEventsTopic = "session_events"

// RemotePublisher is satisfied by the NATS publisher.
type RemotePublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IPublisherService interface {
	// PublishSession goes to the in-process bus and, when available, to NATS.
	PublishSession(ctx context.Context, event events.Event) error
	// PublishAnalytics goes to NATS only and never blocks the caller.
	PublishAnalytics(event events.Event)
}

type publisherService struct {
	bus    message.Publisher
	remote RemotePublisher
	logger logger.ILogger
}

// NewPublisherService accepts a nil remote when NATS is not configured.
func NewPublisherService(bus message.Publisher, remote RemotePublisher, log logger.ILogger) IPublisherService {
	return &publisherService{bus: bus, remote: remote, logger: log}
}

func (s *publisherService) PublishSession(ctx context.Context, event events.Event) error {
	payload, err := events.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", event.EventType())
	if err := s.bus.Publish(SessionEventsTopic, msg); err != nil {
		return err
	}

	if s.remote != nil {
		if err := s.remote.Publish(ctx, event); err != nil {
			s.logger.Warn("PublisherService", "NATS publish failed", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}
	return nil
}

func (s *publisherService) PublishAnalytics(event events.Event) {
	if s.remote == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.remote.Publish(ctx, event); err != nil {
			s.logger.Warn("PublisherService", "NATS publish failed", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}()
}

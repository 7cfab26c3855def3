package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/lodging-service/internal/events"
)

// EventPublisher forwards events to an external broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  EventPublisher
	logger     *zap.Logger
}

// NewNotificationService creates the service. Publisher may be nil.
func NewNotificationService(dispatcher events.Dispatcher, publisher EventPublisher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventBookingCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventBookingUpdated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventPaymentProcessed, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.Int64("user_id", event.UserID),
		zap.Any("payload", event.Payload))
	if n.publisher == nil {
		return nil
	}
	return n.publisher.Publish(ctx, string(event.Type), event)
}

package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fusaf/role-request-service/internal/config"
	"github.com/fusaf/role-request-service/internal/events"
)

// NotificationService emits member notifications for role request events.
// Delivery is best effort: a failed or skipped notification is logged and
// never surfaces to the operation that triggered it.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRoleRequestSubmitted, n.handleSubmitted)
	n.dispatcher.Subscribe(events.EventRoleRequestReviewed, n.handleReviewed)
}

func (n *NotificationService) handleSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("RoleRequestSubmitted", zap.String("request_id", event.RequestID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReviewed(ctx context.Context, event events.Event) error {
	n.logger.Info("RoleRequestReviewed", zap.String("request_id", event.RequestID), zap.Any("payload", event.Payload))
	payload, ok := event.Payload.(events.RoleRequestReviewedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for reviewed event", zap.String("request_id", event.RequestID))
		return nil
	}
	n.sendEmailNotificationStub(ctx, event, payload.UserEmail)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event, to string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", to),
		zap.String("request_id", event.RequestID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("request_id", event.RequestID),
		zap.String("event_type", string(event.Type)))
}

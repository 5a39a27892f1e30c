package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/workforce-directory/internal/config"
	"github.com/spec-kit/workforce-directory/internal/events"
)

// NotificationService handles emitting notifications for domain events.
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
	n.dispatcher.Subscribe(events.EventAdminDeactivated, n.handleLifecycleEvent)
	n.dispatcher.Subscribe(events.EventAdminRestored, n.handleLifecycleEvent)
	n.dispatcher.Subscribe(events.EventDepartmentDeleted, n.handleLifecycleEvent)
	n.dispatcher.Subscribe(events.EventDepartmentRestored, n.handleLifecycleEvent)
	n.dispatcher.Subscribe(events.EventEmployeeDeactivated, n.handleLifecycleEvent)
	n.dispatcher.Subscribe(events.EventEmployeeRestored, n.handleLifecycleEvent)
	n.dispatcher.Subscribe(events.EventVerificationCodeIssued, n.handleVerificationCode)
}

func (n *NotificationService) handleLifecycleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("lifecycle event", zap.String("event_type", string(event.Type)), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleVerificationCode(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.VerificationCodePayload)
	if !ok {
		n.logger.Warn("unexpected verification payload", zap.Any("payload", event.Payload))
		return nil
	}
	// The code itself is never logged.
	n.logger.Info("verification code issued", zap.String("email", payload.Email))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}

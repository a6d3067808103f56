package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"commission-backend/internal/domains/notification/model"
	"commission-backend/internal/domains/notification/repository"
	settingsModel "commission-backend/internal/domains/settings/model"
	"commission-backend/internal/shared"
)

// =====================================================
// NOTIFICATION SERVICE INTERFACE
// =====================================================

// NotificationService persists inbox rows and queues external delivery.
// It implements the dispatcher contract the commission service depends on.
type NotificationService interface {
	NotifyAdmins(ctx context.Context, message string, commissionID *string) error
	NotifyUser(ctx context.Context, userID uuid.UUID, message string, commissionID *string) error

	ListForActor(ctx context.Context, actor shared.Actor, page, limit int) ([]model.Notification, int, error)
	UnreadCount(ctx context.Context, actor shared.Actor) (int, error)
	MarkAllRead(ctx context.Context, actor shared.Actor) error

	CleanupOld(ctx context.Context, olderThanDays int) (int64, error)
}

// TemplateStore renders stored telegram templates (settings domain)
type TemplateStore interface {
	Template(ctx context.Context, key string) (string, bool)
}

// =====================================================
// IMPLEMENTATION
// =====================================================
type notificationService struct {
	repo      repository.NotificationRepository
	templates TemplateStore
	asynq     *asynq.Client
}

// NewNotificationService creates a new notification service.
// asynqClient may be nil, in which case telegram delivery is skipped.
func NewNotificationService(
	repo repository.NotificationRepository,
	templates TemplateStore,
	asynqClient *asynq.Client,
) NotificationService {
	return &notificationService{
		repo:      repo,
		templates: templates,
		asynq:     asynqClient,
	}
}

// =====================================================
// DISPATCH
// =====================================================

func (s *notificationService) NotifyAdmins(ctx context.Context, message string, commissionID *string) error {
	notification := &model.Notification{
		ID:                  uuid.New(),
		UserID:              nil,
		Message:             message,
		IsRead:              false,
		CreatedAt:           time.Now().UTC(),
		RelatedCommissionID: commissionID,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	log.Info().
		Str("notification_id", notification.ID.String()).
		Msg("[NotificationService] Admin notification created")

	// Telegram mirrors admin notifications only, best-effort
	s.enqueueTelegram(ctx, message, commissionID)

	return nil
}

func (s *notificationService) NotifyUser(ctx context.Context, userID uuid.UUID, message string, commissionID *string) error {
	notification := &model.Notification{
		ID:                  uuid.New(),
		UserID:              &userID,
		Message:             message,
		IsRead:              false,
		CreatedAt:           time.Now().UTC(),
		RelatedCommissionID: commissionID,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	log.Info().
		Str("notification_id", notification.ID.String()).
		Str("user_id", userID.String()).
		Msg("[NotificationService] User notification created")

	return nil
}

// enqueueTelegram hands the message to the worker. Failures are logged
// and never surfaced: telegram is an optional mirror of the inbox.
func (s *notificationService) enqueueTelegram(ctx context.Context, message string, commissionID *string) {
	if s.asynq == nil {
		return
	}

	text := message
	if template, ok := s.templates.Template(ctx, settingsModel.KeyTelegramTemplateNewOrder); ok {
		text = strings.ReplaceAll(template, "{message}", message)
		if commissionID != nil {
			text = strings.ReplaceAll(text, "{commission_id}", *commissionID)
		}
	}

	payload, err := json.Marshal(shared.SendTelegramPayload{Text: text})
	if err != nil {
		log.Warn().Err(err).Msg("[NotificationService] Failed to marshal telegram payload")
		return
	}

	task := asynq.NewTask(shared.TypeSendTelegramMessage, payload)
	if _, err := s.asynq.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueNotification),
		asynq.MaxRetry(3),
	); err != nil {
		log.Warn().Err(err).Msg("[NotificationService] Failed to enqueue telegram delivery")
	}
}

// =====================================================
// INBOX QUERIES
// =====================================================

func (s *notificationService) ListForActor(ctx context.Context, actor shared.Actor, page, limit int) ([]model.Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	if actor.IsAdmin {
		return s.repo.ListForAdmins(ctx, page, limit)
	}
	return s.repo.ListForUser(ctx, actor.UserID, page, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, actor shared.Actor) (int, error) {
	if actor.IsAdmin {
		return s.repo.CountUnreadForAdmins(ctx)
	}
	return s.repo.CountUnreadForUser(ctx, actor.UserID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor shared.Actor) error {
	if actor.IsAdmin {
		return s.repo.MarkAllReadForAdmins(ctx)
	}
	return s.repo.MarkAllReadForUser(ctx, actor.UserID)
}

// =====================================================
// MAINTENANCE
// =====================================================

func (s *notificationService) CleanupOld(ctx context.Context, olderThanDays int) (int64, error) {
	removed, err := s.repo.DeleteReadOlderThan(ctx, olderThanDays)
	if err != nil {
		return 0, err
	}

	log.Info().
		Int64("removed", removed).
		Int("older_than_days", olderThanDays).
		Msg("[NotificationService] Old notifications cleaned up")

	return removed, nil
}

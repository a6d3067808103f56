package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"commission-backend/internal/config"
	"commission-backend/internal/domains/notification/service"
	"commission-backend/internal/shared"
	"commission-backend/internal/shared/utils"
	"commission-backend/pkg/logger"
)

// ================================================
// CLEANUP OLD READ NOTIFICATIONS JOB HANDLER
// ================================================

type CleanupOldNotificationsHandler struct {
	notificationService service.NotificationService
	jobConfig           config.JobConfig
}

func NewCleanupOldNotificationsHandler(
	notificationService service.NotificationService,
	jobConfig config.JobConfig,
) *CleanupOldNotificationsHandler {
	return &CleanupOldNotificationsHandler{
		notificationService: notificationService,
		jobConfig:           jobConfig,
	}
}

func (h *CleanupOldNotificationsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.CleanupOldNotificationsPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		logger.Error("Failed to unmarshal cleanup payload, using configured retention", err)
	}

	days := payload.OlderThanDays
	if days <= 0 {
		days = h.jobConfig.CleanupRetentionDays
	}

	logger.Info("Starting CleanupOldNotifications job", map[string]interface{}{
		"older_than_days": days,
	})

	deleted, err := h.notificationService.CleanupOld(ctx, days)
	if err != nil {
		return fmt.Errorf("cleanup old read notifications: %w", err)
	}

	logger.Info("Completed CleanupOldNotifications job", map[string]interface{}{
		"older_than_days": days,
		"deleted_count":   deleted,
	})

	return nil
}

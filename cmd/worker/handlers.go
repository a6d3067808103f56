package main

import (
	"github.com/hibiken/asynq"

	notificationJob "commission-backend/internal/domains/notification/job"
	"commission-backend/internal/shared"
	"commission-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	sendTelegram *notificationJob.SendTelegramHandler
	cleanupOld   *notificationJob.CleanupOldNotificationsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		sendTelegram: notificationJob.NewSendTelegramHandler(c.TelegramClient),
		cleanupOld: notificationJob.NewCleanupOldNotificationsHandler(
			c.NotificationService,
			c.Config.Job,
		),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendTelegramMessage, h.sendTelegram.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupOldNotifications, h.cleanupOld.ProcessTask)
}

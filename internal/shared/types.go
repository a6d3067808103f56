package shared

// Asynq task types
const (
	TypeSendTelegramMessage     = "telegram:send_message"
	TypeCleanupOldNotifications = "notification:cleanup_old"
)

// Asynq queues
const (
	QueueHigh         = "high"
	QueueDefault      = "default"
	QueueNotification = "low"
)

// SendTelegramPayload carries a rendered message for the worker to deliver
type SendTelegramPayload struct {
	Text string `json:"text"`
}

// CleanupOldNotificationsPayload configures the scheduled cleanup job
type CleanupOldNotificationsPayload struct {
	OlderThanDays int `json:"older_than_days"`
}

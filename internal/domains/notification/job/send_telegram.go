package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"commission-backend/internal/infrastructure/telegram"
	"commission-backend/internal/shared"
	"commission-backend/internal/shared/utils"
	"commission-backend/pkg/logger"
)

// ================================================
// SEND TELEGRAM MESSAGE JOB HANDLER
// ================================================

type SendTelegramHandler struct {
	client *telegram.Client
}

func NewSendTelegramHandler(client *telegram.Client) *SendTelegramHandler {
	return &SendTelegramHandler{client: client}
}

func (h *SendTelegramHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.SendTelegramPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	// Delivery is config-gated: without credentials the task succeeds
	// as a no-op so it is not retried forever
	if !h.client.Enabled() {
		logger.Info("Telegram disabled, skipping delivery", map[string]interface{}{})
		return nil
	}

	if err := h.client.SendMessage(ctx, payload.Text); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	logger.Info("Telegram message delivered", map[string]interface{}{
		"length": len(payload.Text),
	})

	return nil
}

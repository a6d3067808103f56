package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"commission-backend/internal/domains/notification/service"
	"commission-backend/internal/shared/middleware"
	"commission-backend/internal/shared/response"
)

// =====================================================
// NOTIFICATION HANDLER
// =====================================================
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterRoutes registers notification routes behind auth middleware.
// Admins see the broadcast inbox, clients see their own rows.
func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.POST("/mark-all-read", h.MarkAllRead)
	}
}

// List godoc
// @Summary List own notifications
// @Tags Notifications
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response{data=[]model.Notification}
// @Router /v1/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	notifications, total, err := h.notificationService.ListForActor(c.Request.Context(), actor, page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "OK", notifications, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// UnreadCount godoc
// @Summary Count own unread notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Response
// @Router /v1/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", gin.H{"unread": count})
}

// MarkAllRead godoc
// @Summary Mark all own notifications as read
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Response
// @Router /v1/notifications/mark-all-read [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), actor); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Notificações marcadas como lidas.", nil)
}

func (h *NotificationHandler) fail(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Msg("[NotificationHandler] Unexpected service error")
	response.InternalServerError(c, "Ocorreu um erro inesperado.")
}

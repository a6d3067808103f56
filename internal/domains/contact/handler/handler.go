package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"commission-backend/internal/domains/contact/model"
	"commission-backend/internal/domains/contact/service"
	"commission-backend/internal/shared/response"
)

// =====================================================
// CONTACT HANDLER
// =====================================================
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// RegisterPublicRoutes registers the public contact form endpoint
func (h *ContactHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/contact", h.Create)
}

// RegisterAdminRoutes registers the admin inbox routes
func (h *ContactHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	messages := router.Group("/messages")
	{
		messages.GET("", h.List)
		messages.GET("/unread-count", h.CountUnread)
		messages.POST("/:id/mark-read", h.MarkRead)
		messages.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary Submit a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body model.CreateContactMessageRequest true "Message"
// @Success 201 {object} response.Response{data=model.ContactMessage}
// @Router /v1/contact [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req model.CreateContactMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos.")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	message, err := h.contactService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Mensagem enviada com sucesso.", message)
}

// List godoc
// @Summary List contact messages
// @Tags Contact
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response{data=[]model.ContactMessage}
// @Router /v1/admin/messages [get]
func (h *ContactHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	messages, total, err := h.contactService.List(c.Request.Context(), page, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "OK", messages, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// CountUnread godoc
// @Summary Count unread contact messages
// @Tags Contact
// @Produce json
// @Success 200 {object} response.Response
// @Router /v1/admin/messages/unread-count [get]
func (h *ContactHandler) CountUnread(c *gin.Context) {
	count, err := h.contactService.CountUnread(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", gin.H{"unread": count})
}

// MarkRead godoc
// @Summary Mark a contact message as read
// @Tags Contact
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} response.Response
// @Router /v1/admin/messages/{id}/mark-read [post]
func (h *ContactHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Identificador inválido.")
		return
	}

	if err := h.contactService.MarkRead(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Mensagem marcada como lida.", nil)
}

// Delete godoc
// @Summary Delete a contact message
// @Tags Contact
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} response.Response
// @Router /v1/admin/messages/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Identificador inválido.")
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Mensagem removida.", nil)
}

func (h *ContactHandler) handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrContactMessageNotFound) {
		response.NotFound(c, "Mensagem não encontrada.")
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Msg("[ContactHandler] Unexpected service error")
	response.InternalServerError(c, "Ocorreu um erro inesperado.")
}

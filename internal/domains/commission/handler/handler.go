package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"commission-backend/internal/domains/commission/model"
	"commission-backend/internal/domains/commission/service"
	"commission-backend/internal/shared"
	"commission-backend/internal/shared/middleware"
	"commission-backend/internal/shared/response"
)

// =====================================================
// COMMISSION HANDLER
// =====================================================
type CommissionHandler struct {
	commissionService service.CommissionService
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(commissionService service.CommissionService) *CommissionHandler {
	return &CommissionHandler{
		commissionService: commissionService,
	}
}

// =====================================================
// ROUTES REGISTRATION
// =====================================================

// RegisterAdminRoutes registers the artist-facing routes.
// The router mounts this group behind auth + admin middleware.
func (h *CommissionHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/comissoes")
	{
		admin.POST("", h.Create)
		admin.GET("", h.ListAll)
		admin.GET("/:id", h.Get)
		admin.PUT("/:id", h.UpdateDetails)
		admin.POST("/:id/update_status", h.UpdateStatus)
		admin.POST("/:id/confirm_payment", h.AdminConfirmPayment)
		admin.POST("/:id/previews", h.AddPreview)
		admin.POST("/:id/comments", h.AddComment)
		admin.DELETE("/:id", h.Delete)
	}
}

// RegisterClientRoutes registers the client-facing routes.
// The router mounts this group behind auth middleware.
func (h *CommissionHandler) RegisterClientRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.ListMine)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/confirm_payment", h.ConfirmPayment)
		orders.POST("/:id/approve_phase", h.ApprovePhase)
		orders.POST("/:id/request_revision", h.RequestRevision)
		orders.POST("/:id/cancel", h.Cancel)
		orders.POST("/:id/comments", h.AddComment)
	}
}

// =====================================================
// CREATE
// =====================================================

// Create godoc
// @Summary Create commission
// @Description Creates a commission with phases resolved from the type catalog
// @Tags Commissions
// @Accept json
// @Produce json
// @Param request body model.CreateCommissionRequest true "Create commission request"
// @Success 201 {object} response.Response{data=model.Commission}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /v1/client/orders [post]
func (h *CommissionHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	commission, err := h.commissionService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Pedido criado com sucesso.", commission)
}

// =====================================================
// QUERIES
// =====================================================

// Get godoc
// @Summary Get commission detail
// @Tags Commissions
// @Produce json
// @Param id path string true "Commission ID"
// @Success 200 {object} response.Response{data=model.Commission}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /v1/client/orders/{id} [get]
func (h *CommissionHandler) Get(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	commission, err := h.commissionService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", commission)
}

// ListAll godoc
// @Summary List commissions (admin)
// @Tags Commissions
// @Produce json
// @Param status query string false "Filter by lifecycle status"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response{data=[]model.Commission}
// @Router /v1/admin/comissoes [get]
func (h *CommissionHandler) ListAll(c *gin.Context) {
	page, limit := parsePagination(c)

	commissions, total, err := h.commissionService.List(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "OK", commissions, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// ListMine godoc
// @Summary List own commissions (client)
// @Tags Commissions
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Commission}
// @Router /v1/client/orders [get]
func (h *CommissionHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	page, limit := parsePagination(c)

	commissions, total, err := h.commissionService.ListMine(c.Request.Context(), actor, page, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "OK", commissions, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// =====================================================
// LIFECYCLE OPERATIONS
// =====================================================

// ConfirmPayment godoc
// @Summary Client confirms they sent the payment
// @Tags Commissions
// @Produce json
// @Param id path string true "Commission ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /v1/client/orders/{id}/confirm_payment [post]
func (h *CommissionHandler) ConfirmPayment(c *gin.Context) {
	h.runLifecycleOp(c, "Pagamento informado. Aguardando confirmação do artista.",
		func(actor shared.Actor, id string) error {
			return h.commissionService.ConfirmPayment(c.Request.Context(), actor, id)
		})
}

// AdminConfirmPayment godoc
// @Summary Artist confirms the payment was received
// @Tags Commissions
// @Produce json
// @Param id path string true "Commission ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /v1/admin/comissoes/{id}/confirm_payment [post]
func (h *CommissionHandler) AdminConfirmPayment(c *gin.Context) {
	h.runLifecycleOp(c, "Pagamento confirmado. Pedido em progresso.",
		func(actor shared.Actor, id string) error {
			return h.commissionService.AdminConfirmPayment(c.Request.Context(), actor, id)
		})
}

// AddPreview godoc
// @Summary Send a preview for the current phase
// @Tags Commissions
// @Accept json
// @Produce json
// @Param id path string true "Commission ID"
// @Param request body model.AddPreviewRequest true "Preview"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /v1/admin/comissoes/{id}/previews [post]
func (h *CommissionHandler) AddPreview(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.AddPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.commissionService.AddPreview(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Prévia enviada.", nil)
}

// ApprovePhase godoc
// @Summary Approve the current phase
// @Tags Commissions
// @Produce json
// @Param id path string true "Commission ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /v1/client/orders/{id}/approve_phase [post]
func (h *CommissionHandler) ApprovePhase(c *gin.Context) {
	h.runLifecycleOp(c, "Fase aprovada.",
		func(actor shared.Actor, id string) error {
			return h.commissionService.ApprovePhase(c.Request.Context(), actor, id)
		})
}

// RequestRevision godoc
// @Summary Request a revision within the current phase quota
// @Tags Commissions
// @Accept json
// @Produce json
// @Param id path string true "Commission ID"
// @Param request body model.RequestRevisionRequest true "Revision comment"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /v1/client/orders/{id}/request_revision [post]
func (h *CommissionHandler) RequestRevision(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.RequestRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.commissionService.RequestRevision(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Revisão solicitada.", nil)
}

// UpdateStatus godoc
// @Summary Override the lifecycle status (admin)
// @Tags Commissions
// @Accept json
// @Produce json
// @Param id path string true "Commission ID"
// @Param request body model.UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /v1/admin/comissoes/{id}/update_status [post]
func (h *CommissionHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.commissionService.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Status atualizado.", nil)
}

// Cancel godoc
// @Summary Cancel own commission
// @Tags Commissions
// @Produce json
// @Param id path string true "Commission ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /v1/client/orders/{id}/cancel [post]
func (h *CommissionHandler) Cancel(c *gin.Context) {
	h.runLifecycleOp(c, "Pedido cancelado.",
		func(actor shared.Actor, id string) error {
			return h.commissionService.Cancel(c.Request.Context(), actor, id)
		})
}

// Delete godoc
// @Summary Delete a commission (admin)
// @Tags Commissions
// @Produce json
// @Param id path string true "Commission ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /v1/admin/comissoes/{id} [delete]
func (h *CommissionHandler) Delete(c *gin.Context) {
	h.runLifecycleOp(c, "Pedido removido.",
		func(actor shared.Actor, id string) error {
			return h.commissionService.Delete(c.Request.Context(), actor, id)
		})
}

// =====================================================
// APPENDS
// =====================================================

// AddComment godoc
// @Summary Add a comment to a commission
// @Tags Commissions
// @Accept json
// @Produce json
// @Param id path string true "Commission ID"
// @Param request body model.AddCommentRequest true "Comment"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /v1/client/orders/{id}/comments [post]
func (h *CommissionHandler) AddComment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.commissionService.AddComment(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Comentário adicionado.", nil)
}

// UpdateDetails godoc
// @Summary Edit general commission details (admin)
// @Tags Commissions
// @Accept json
// @Produce json
// @Param id path string true "Commission ID"
// @Param request body model.UpdateDetailsRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /v1/admin/comissoes/{id} [put]
func (h *CommissionHandler) UpdateDetails(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.commissionService.UpdateDetails(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Detalhes atualizados.", nil)
}

// =====================================================
// HELPERS
// =====================================================

func (h *CommissionHandler) runLifecycleOp(c *gin.Context, successMessage string, op func(shared.Actor, string) error) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if err := op(actor, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, successMessage, nil)
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

// handleServiceError maps domain errors to HTTP responses.
// Unknown errors are logged server-side and surfaced as a generic 500.
func (h *CommissionHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		response.NotFound(c, "Pedido não encontrado.")
	case errors.Is(err, model.ErrNotOwner):
		response.Forbidden(c, "Acesso negado.")
	case errors.Is(err, model.ErrQuotaExceeded):
		response.Forbidden(c, "Limite de revisões para esta fase atingido.")
	case errors.Is(err, model.ErrTerminalState):
		response.BadRequest(c, "Este pedido já foi finalizado ou cancelado.")
	case errors.Is(err, model.ErrCannotCancel):
		response.BadRequest(c, "Este pedido não pode ser cancelado.")
	case errors.Is(err, model.ErrAllPhasesCleared):
		response.BadRequest(c, "Todas as fases já foram aprovadas.")
	case errors.Is(err, model.ErrInvalidStatus):
		response.BadRequest(c, "Status inválido.")
	case errors.Is(err, model.ErrInvalidType):
		response.BadRequest(c, "Tipo de comissão inválido.")
	default:
		var cmsErr *model.CommissionError
		if errors.As(err, &cmsErr) && cmsErr.Code == model.ErrCodeInvalidRequest {
			response.BadRequest(c, cmsErr.Message)
			return
		}

		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Msg("[CommissionHandler] Unexpected service error")
		response.InternalServerError(c, "Ocorreu um erro inesperado.")
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"commission-backend/internal/domains/faq/model"
	"commission-backend/internal/domains/faq/service"
	"commission-backend/internal/shared/response"
)

// =====================================================
// FAQ HANDLER
// =====================================================
type FaqHandler struct {
	faqService service.FaqService
}

// NewFaqHandler creates a new faq handler
func NewFaqHandler(faqService service.FaqService) *FaqHandler {
	return &FaqHandler{faqService: faqService}
}

// RegisterAdminRoutes registers the full-list sync endpoint
func (h *FaqHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.PUT("/faqs", h.Sync)
}

// RegisterPublicRoutes registers the public ordered listing
func (h *FaqHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/faqs", h.List)
}

// List godoc
// @Summary List FAQs in display order
// @Tags FAQs
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Faq}
// @Router /v1/faqs [get]
func (h *FaqHandler) List(c *gin.Context) {
	faqs, err := h.faqService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", faqs)
}

// Sync godoc
// @Summary Replace the FAQ list
// @Tags FAQs
// @Accept json
// @Produce json
// @Param request body model.SyncFaqsRequest true "Full FAQ list"
// @Success 200 {object} response.Response{data=[]model.Faq}
// @Router /v1/admin/faqs [put]
func (h *FaqHandler) Sync(c *gin.Context) {
	var req model.SyncFaqsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos.")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	for _, item := range req.Faqs {
		if err := item.Validate(); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	faqs, err := h.faqService.Sync(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "FAQs atualizadas.", faqs)
}

func (h *FaqHandler) handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrFaqNotFound) {
		response.NotFound(c, "FAQ não encontrada.")
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Msg("[FaqHandler] Unexpected service error")
	response.InternalServerError(c, "Ocorreu um erro inesperado.")
}

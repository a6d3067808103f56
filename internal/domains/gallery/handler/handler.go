package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"commission-backend/internal/domains/gallery/model"
	"commission-backend/internal/domains/gallery/service"
	"commission-backend/internal/shared/response"
)

// =====================================================
// GALLERY HANDLER
// =====================================================
type GalleryHandler struct {
	galleryService service.GalleryService
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(galleryService service.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

// RegisterAdminRoutes registers admin CRUD routes
func (h *GalleryHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	gallery := router.Group("/gallery")
	{
		gallery.GET("", h.ListAll)
		gallery.POST("", h.Create)
		gallery.PUT("/:id", h.Update)
		gallery.DELETE("/:id", h.Delete)
	}
}

// RegisterPublicRoutes registers the public listing
func (h *GalleryHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/gallery", h.ListVisible)
}

// Create godoc
// @Summary Create a gallery item
// @Tags Gallery
// @Accept json
// @Produce json
// @Param request body model.CreateGalleryItemRequest true "Item"
// @Success 201 {object} response.Response{data=model.GalleryItem}
// @Router /v1/admin/gallery [post]
func (h *GalleryHandler) Create(c *gin.Context) {
	var req model.CreateGalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos.")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.galleryService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Item adicionado à galeria.", item)
}

// Update godoc
// @Summary Update a gallery item
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body model.UpdateGalleryItemRequest true "Changes"
// @Success 200 {object} response.Response{data=model.GalleryItem}
// @Router /v1/admin/gallery/{id} [put]
func (h *GalleryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Identificador inválido.")
		return
	}

	var req model.UpdateGalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos.")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.galleryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Item atualizado.", item)
}

// Delete godoc
// @Summary Delete a gallery item
// @Tags Gallery
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Response
// @Router /v1/admin/gallery/{id} [delete]
func (h *GalleryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Identificador inválido.")
		return
	}

	if err := h.galleryService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Item removido da galeria.", nil)
}

// ListAll godoc
// @Summary List all gallery items
// @Tags Gallery
// @Produce json
// @Success 200 {object} response.Response{data=[]model.GalleryItem}
// @Router /v1/admin/gallery [get]
func (h *GalleryHandler) ListAll(c *gin.Context) {
	items, err := h.galleryService.ListAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", items)
}

// ListVisible godoc
// @Summary List visible gallery items
// @Tags Gallery
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} response.Response{data=[]model.GalleryItem}
// @Router /v1/gallery [get]
func (h *GalleryHandler) ListVisible(c *gin.Context) {
	items, err := h.galleryService.ListVisible(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", items)
}

func (h *GalleryHandler) handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrGalleryItemNotFound) {
		response.NotFound(c, "Item não encontrado.")
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Msg("[GalleryHandler] Unexpected service error")
	response.InternalServerError(c, "Ocorreu um erro inesperado.")
}

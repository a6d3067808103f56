package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"commission-backend/internal/domains/settings/model"
	"commission-backend/internal/domains/settings/service"
	"commission-backend/internal/shared/response"
)

// =====================================================
// SETTINGS HANDLER
// =====================================================
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// RegisterRoutes registers settings routes.
// The router mounts the admin group behind auth + admin middleware.
func (h *SettingsHandler) RegisterRoutes(admin, public *gin.RouterGroup) {
	settings := admin.Group("/settings")
	{
		settings.GET("", h.GetAll)
		settings.GET("/:key", h.Get)
		settings.PUT("", h.Update)
	}

	// Public catalog endpoints used by the request form
	public.GET("/settings/:key", h.GetPublic)
}

// GetAll godoc
// @Summary List all settings (admin)
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Setting}
// @Router /v1/admin/settings [get]
func (h *SettingsHandler) GetAll(c *gin.Context) {
	settings, err := h.settingsService.GetAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", settings)
}

// Get godoc
// @Summary Get one setting (admin)
// @Tags Settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} response.Response{data=model.Setting}
// @Failure 404 {object} response.Response
// @Router /v1/admin/settings/{key} [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.settingsService.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", setting)
}

// publicKeys are the settings exposed without authentication
var publicKeys = map[string]bool{
	model.KeyCommissionTypes:  true,
	model.KeyCommissionExtras: true,
	model.KeySocialLinks:      true,
	model.KeySupportContacts:  true,
}

// GetPublic godoc
// @Summary Get a public catalog setting
// @Tags Settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} response.Response{data=model.Setting}
// @Failure 404 {object} response.Response
// @Router /v1/settings/{key} [get]
func (h *SettingsHandler) GetPublic(c *gin.Context) {
	key := c.Param("key")
	if !publicKeys[key] {
		response.NotFound(c, "Configuração não encontrada.")
		return
	}

	setting, err := h.settingsService.Get(c.Request.Context(), key)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", setting)
}

// Update godoc
// @Summary Replace settings values (admin)
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body model.UpdateSettingsRequest true "Key-value pairs"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /v1/admin/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req model.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.settingsService.Update(c.Request.Context(), req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Configurações atualizadas.", nil)
}

func (h *SettingsHandler) handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrSettingNotFound) {
		response.NotFound(c, "Configuração não encontrada.")
		return
	}
	if errors.Is(err, model.ErrInvalidValue) {
		response.BadRequest(c, "Valor de configuração inválido.")
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Msg("[SettingsHandler] Unexpected service error")
	response.InternalServerError(c, "Ocorreu um erro inesperado.")
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"commission-backend/internal/domains/user/model"
	"commission-backend/internal/domains/user/service"
	"commission-backend/internal/shared/middleware"
	"commission-backend/internal/shared/response"
)

// =====================================================
// USER HANDLER
// =====================================================
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterPublicRoutes registers unauthenticated auth routes
func (h *UserHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.RefreshToken)
	}

	router.GET("/artists", h.ListPublicArtists)
}

// RegisterAccountRoutes registers routes for the authenticated account
func (h *UserHandler) RegisterAccountRoutes(router *gin.RouterGroup) {
	account := router.Group("/account")
	{
		account.GET("/profile", h.GetProfile)
		account.POST("/change-password", h.ChangePassword)
		account.PUT("/preferences", h.UpdatePreferences)
		account.DELETE("", h.DeleteAccount)
	}
}

// RegisterAdminRoutes registers admin-only user management routes
func (h *UserHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	clients := router.Group("/clients")
	{
		clients.GET("", h.ListClients)
		clients.POST("/:id/set-admin", h.SetAdmin)
		clients.POST("/:id/set-blocked", h.SetBlocked)
		clients.POST("/:id/set-banned", h.SetBanned)
		clients.POST("/:id/reset-password", h.ResetPassword)
	}

	router.PUT("/artist-profile", h.UpdateArtistProfile)
}

// =====================================================
// AUTH
// =====================================================

// Register godoc
// @Summary Register a new client account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Credentials"
// @Success 201 {object} response.Response{data=model.User}
// @Router /v1/auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos.")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Conta criada com sucesso.", user)
}

// Login godoc
// @Summary Authenticate and issue a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=model.TokenPair}
// @Router /v1/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos.")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pair, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login efetuado com sucesso.", pair)
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Response{data=model.TokenPair}
// @Router /v1/auth/refresh [post]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos.")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pair, err := h.userService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Token renovado.", pair)
}

// =====================================================
// OWN ACCOUNT
// =====================================================

// GetProfile godoc
// @Summary Get own profile
// @Tags Account
// @Produce json
// @Success 200 {object} response.Response{data=model.User}
// @Router /v1/account/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", user)
}

// ChangePassword godoc
// @Summary Change own password
// @Tags Account
// @Accept json
// @Produce json
// @Param request body model.ChangePasswordRequest true "Passwords"
// @Success 200 {object} response.Response
// @Router /v1/account/change-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos.")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), actor, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Senha alterada com sucesso.", nil)
}

// UpdatePreferences godoc
// @Summary Update own notification preferences
// @Tags Account
// @Accept json
// @Produce json
// @Param request body model.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} response.Response{data=model.User}
// @Router /v1/account/preferences [put]
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos.")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdatePreferences(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Preferências atualizadas.", user)
}

// DeleteAccount godoc
// @Summary Delete own account
// @Tags Account
// @Produce json
// @Success 200 {object} response.Response
// @Router /v1/account [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), actor); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Conta removida.", nil)
}

// =====================================================
// ADMIN CLIENT MANAGEMENT
// =====================================================

// ListClients godoc
// @Summary List client accounts
// @Tags Clients
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response{data=[]model.User}
// @Router /v1/admin/clients [get]
func (h *UserHandler) ListClients(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	clients, total, err := h.userService.ListClients(c.Request.Context(), page, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "OK", clients, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *UserHandler) SetAdmin(c *gin.Context) {
	h.setFlag(c, h.userService.SetAdmin, "Permissões atualizadas.")
}

func (h *UserHandler) SetBlocked(c *gin.Context) {
	h.setFlag(c, h.userService.SetBlocked, "Bloqueio atualizado.")
}

func (h *UserHandler) SetBanned(c *gin.Context) {
	h.setFlag(c, h.userService.SetBanned, "Banimento atualizado.")
}

func (h *UserHandler) setFlag(
	c *gin.Context,
	op func(ctx context.Context, id uuid.UUID, value bool) (*model.User, error),
	message string,
) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Identificador inválido.")
		return
	}

	var req model.SetFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos.")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := op(c.Request.Context(), userID, *req.Value)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, message, user)
}

// ResetPassword godoc
// @Summary Reset a client's password
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body model.ResetPasswordRequest true "New password"
// @Success 200 {object} response.Response
// @Router /v1/admin/clients/{id}/reset-password [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Identificador inválido.")
		return
	}

	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos.")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Senha redefinida.", nil)
}

// =====================================================
// ARTIST PROFILES
// =====================================================

// UpdateArtistProfile godoc
// @Summary Update own artist profile
// @Tags Artists
// @Accept json
// @Produce json
// @Param request body model.UpdateArtistProfileRequest true "Profile"
// @Success 200 {object} response.Response{data=model.User}
// @Router /v1/admin/artist-profile [put]
func (h *UserHandler) UpdateArtistProfile(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.UpdateArtistProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dados inválidos.")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateArtistProfile(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Perfil atualizado.", user)
}

// ListPublicArtists godoc
// @Summary List visible artist profiles
// @Tags Artists
// @Produce json
// @Success 200 {object} response.Response{data=[]model.PublicArtist}
// @Router /v1/artists [get]
func (h *UserHandler) ListPublicArtists(c *gin.Context) {
	artists, err := h.userService.ListPublicArtists(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", artists)
}

// =====================================================
// ERROR MAPPING
// =====================================================

func (h *UserHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, "Usuário não encontrado.")
	case errors.Is(err, model.ErrUsernameTaken):
		response.Conflict(c, "Este nome de usuário já está em uso.")
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, "Credenciais inválidas.")
	case errors.Is(err, model.ErrAccountBlocked):
		response.Forbidden(c, "Esta conta está bloqueada.")
	case errors.Is(err, model.ErrWeakPassword):
		response.BadRequest(c, "A senha deve ter no mínimo 8 caracteres, com letras maiúsculas, minúsculas e números.")
	case errors.Is(err, model.ErrWrongPassword):
		response.BadRequest(c, "A senha atual não confere.")
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Msg("[UserHandler] Unexpected service error")
		response.InternalServerError(c, "Ocorreu um erro inesperado.")
	}
}

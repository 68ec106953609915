package handler

import (
	"github.com/gin-gonic/gin"

	"agency-hub/internal/dto"
	"agency-hub/internal/service"
	"agency-hub/pkg/utils"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login
// @Summary Log in
// @Description Local password login, or LDAP when authType is ldap
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} utils.Response
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Register
// @Summary Register a member account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "new account"
// @Success 201 {object} dto.LoginResponse
// @Failure 409 {object} utils.Response
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, resp)
}

// Refresh
// @Summary Rotate a refresh token
// @Description Returns a new token pair built from the user's current record
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "refresh token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} utils.Response
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// GetMe
// @Summary Current user
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.UserInfo
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	info, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, info)
}

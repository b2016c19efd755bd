package handlers

import (
	"net/http"

	"fleet-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	authService service.AuthServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /auth/register
// @Summary Register a new account
// @Description Register a driver account in the caller's company. Admin or superadmin only.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterRequest true "Registration data"
// @Success 201 {object} service.UserResponse "Account created"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Security BearerAuth
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.authService.Register(actor, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Verify credentials and issue an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginRequest true "Credentials"
// @Success 200 {object} service.LoginResponse "Token pair issued"
// @Failure 401 {object} ErrorResponse "Invalid credentials or inactive account"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.authService.Login(&req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RefreshBody represents the expected request body for POST /auth/refresh
type RefreshBody struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh handles POST /auth/refresh
// @Summary Refresh the session
// @Description Exchange a valid refresh token for a fresh token pair. The old session is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshBody true "Refresh token"
// @Success 200 {object} service.LoginResponse "New token pair issued"
// @Failure 401 {object} ErrorResponse "Invalid or revoked refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var body RefreshBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.authService.Refresh(body.RefreshToken, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles GET /auth/logout
// @Summary Log out
// @Description Revoke the session behind the refresh token passed in the X-Refresh-Token header
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Session revoked"
// @Failure 401 {object} ErrorResponse "Missing refresh token"
// @Security BearerAuth
// @Router /auth/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetHeader("X-Refresh-Token")
	if token == "" {
		token = c.Query("refresh_token")
	}
	if err := h.authService.Logout(token); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me handles GET /auth/me
// @Summary Get own profile
// @Description Return the account behind the bearer token
// @Tags auth
// @Produce json
// @Success 200 {object} service.UserResponse "Own account"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	user, err := h.authService.Profile(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ForgotPasswordBody represents the expected request body for POST /auth/forgot-password
type ForgotPasswordBody struct {
	Username string `json:"username" binding:"required"`
}

// ForgotPassword handles POST /auth/forgot-password
// @Summary Request a password reset
// @Description Issue a reset token for the account. Always succeeds, so usernames cannot be probed.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordBody true "Account username"
// @Success 200 {object} map[string]string "Reset requested"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var body ForgotPasswordBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.authService.ForgotPassword(body.Username); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset link has been sent"})
}

// ResetPasswordBody represents the expected request body for POST /auth/reset-password
type ResetPasswordBody struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// ResetPassword handles POST /auth/reset-password
// @Summary Reset the password
// @Description Consume a reset token and set a new password. All sessions are revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordBody true "Reset token and new password"
// @Success 200 {object} map[string]string "Password updated"
// @Failure 400 {object} ErrorResponse "Invalid or expired token"
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var body ResetPasswordBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.authService.ResetPassword(body.Token, body.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

package handlers

import (
	"net/http"

	"fleet-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for user accounts
type UserHandler struct {
	userService service.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Create handles POST /users
// @Summary Create a user account
// @Description Create an account in the actor's company. Elevated roles and foreign companies require superadmin.
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.CreateUserRequest true "User data"
// @Success 201 {object} service.UserResponse "Account created"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.Create(actor, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Get handles GET /users/:id
// @Summary Get a user account
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} service.UserResponse "User account"
// @Failure 403 {object} ErrorResponse "Out of scope"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// List handles GET /users
// @Summary List user accounts
// @Description List the accounts within the actor's visibility scope
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.UserListResponse "Accounts in scope"
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	resp, err := h.userService.List(actor, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListDrivers handles GET /users/drivers
// @Summary List driver accounts
// @Description List the driver accounts within the actor's visibility scope
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.UserListResponse "Driver accounts in scope"
// @Security BearerAuth
// @Router /users/drivers [get]
func (h *UserHandler) ListDrivers(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	resp, err := h.userService.ListDrivers(actor, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /users/:id
// @Summary Update a user account
// @Description Partial update. Fields outside the actor's permission are dropped; restricted fields are rejected.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body service.UpdateUserRequest true "Fields to update"
// @Success 200 {object} service.UserResponse "Updated account"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.Update(actor, id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfileBody represents the expected request body for POST /users/:id/profile
type UpdateProfileBody struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	License    *string `json:"license"`
	Experience *int    `json:"experience"`
}

// UpdateProfile handles POST /users/:id/profile
// @Summary Update profile fields of a user account
// @Description Profile-only variant of update: name, phone, license and experience. Same permission filter applies.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param profile body UpdateProfileBody true "Profile fields"
// @Success 200 {object} service.UserResponse "Updated account"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id}/profile [post]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var body UpdateProfileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	req := service.UpdateUserRequest{
		Name:       body.Name,
		Phone:      body.Phone,
		License:    body.License,
		Experience: body.Experience,
	}
	user, err := h.userService.Update(actor, id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id
// @Summary Delete a user account
// @Description Superadmin only. Self-deletion is always rejected.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string "Account deleted"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(actor, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

package handlers

import (
	"net/http"

	"fleet-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TowHandler handles HTTP requests for tow records
type TowHandler struct {
	towService service.TowServiceInterface
}

// NewTowHandler creates a new tow handler
func NewTowHandler(towService service.TowServiceInterface) *TowHandler {
	return &TowHandler{
		towService: towService,
	}
}

// Create handles POST /tows
// @Summary Record a tow
// @Description The record is owned by the acting user and created in their company.
// @Tags tows
// @Accept json
// @Produce json
// @Param tow body service.CreateTowRequest true "Tow data"
// @Success 201 {object} service.TowResponse "Tow recorded"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Security BearerAuth
// @Router /tows [post]
func (h *TowHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req service.CreateTowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tow, err := h.towService.Create(actor, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tow)
}

// Get handles GET /tows/:id
// @Summary Get a tow record
// @Description Drivers only see their own records; admins see their company's.
// @Tags tows
// @Produce json
// @Param id path string true "Tow ID"
// @Success 200 {object} service.TowResponse "Tow record"
// @Failure 403 {object} ErrorResponse "Out of scope"
// @Failure 404 {object} ErrorResponse "Tow record not found"
// @Security BearerAuth
// @Router /tows/{id} [get]
func (h *TowHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	tow, err := h.towService.GetByID(actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tow)
}

// List handles GET /tows
// @Summary List tow records
// @Tags tows
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.TowListResponse "Tow records in scope"
// @Security BearerAuth
// @Router /tows [get]
func (h *TowHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	resp, err := h.towService.List(actor, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /tows/:id
// @Summary Update a tow record
// @Tags tows
// @Accept json
// @Produce json
// @Param id path string true "Tow ID"
// @Param tow body service.UpdateTowRequest true "Fields to update"
// @Success 200 {object} service.TowResponse "Updated tow record"
// @Failure 403 {object} ErrorResponse "Out of scope"
// @Failure 404 {object} ErrorResponse "Tow record not found"
// @Security BearerAuth
// @Router /tows/{id} [put]
func (h *TowHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.UpdateTowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tow, err := h.towService.Update(actor, id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tow)
}

// Delete handles DELETE /tows/:id
// @Summary Delete a tow record
// @Description Superadmin only
// @Tags tows
// @Produce json
// @Param id path string true "Tow ID"
// @Success 200 {object} map[string]string "Tow record deleted"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Failure 404 {object} ErrorResponse "Tow record not found"
// @Security BearerAuth
// @Router /tows/{id} [delete]
func (h *TowHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.towService.Delete(actor, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tow record deleted"})
}

package handlers

import (
	"net/http"

	"fleet-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DriverHandler handles HTTP requests for the driver roster
type DriverHandler struct {
	driverService service.DriverServiceInterface
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(driverService service.DriverServiceInterface) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
	}
}

// Create handles POST /drivers
// @Summary Create a roster driver
// @Description The driver is created in the actor's company; only superadmin may name another company.
// @Tags drivers
// @Accept json
// @Produce json
// @Param driver body service.CreateDriverRequest true "Driver data"
// @Success 201 {object} service.DriverResponse "Driver created"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Security BearerAuth
// @Router /drivers [post]
func (h *DriverHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req service.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	driver, err := h.driverService.Create(actor, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

// Get handles GET /drivers/:id
// @Summary Get a roster driver
// @Tags drivers
// @Produce json
// @Param id path string true "Driver ID"
// @Success 200 {object} service.DriverResponse "Driver"
// @Failure 403 {object} ErrorResponse "Out of scope"
// @Failure 404 {object} ErrorResponse "Driver not found"
// @Security BearerAuth
// @Router /drivers/{id} [get]
func (h *DriverHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	driver, err := h.driverService.GetByID(actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// List handles GET /drivers
// @Summary List roster drivers
// @Tags drivers
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.DriverListResponse "Drivers in scope"
// @Security BearerAuth
// @Router /drivers [get]
func (h *DriverHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	resp, err := h.driverService.List(actor, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /drivers/:id
// @Summary Update a roster driver
// @Tags drivers
// @Accept json
// @Produce json
// @Param id path string true "Driver ID"
// @Param driver body service.UpdateDriverRequest true "Fields to update"
// @Success 200 {object} service.DriverResponse "Updated driver"
// @Failure 403 {object} ErrorResponse "Out of scope"
// @Failure 404 {object} ErrorResponse "Driver not found"
// @Security BearerAuth
// @Router /drivers/{id} [put]
func (h *DriverHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	driver, err := h.driverService.Update(actor, id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// Delete handles DELETE /drivers/:id
// @Summary Delete a roster driver
// @Tags drivers
// @Produce json
// @Param id path string true "Driver ID"
// @Success 200 {object} map[string]string "Driver deleted"
// @Failure 403 {object} ErrorResponse "Out of scope"
// @Failure 404 {object} ErrorResponse "Driver not found"
// @Security BearerAuth
// @Router /drivers/{id} [delete]
func (h *DriverHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.driverService.Delete(actor, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}

package handlers

import (
	"net/http"

	"fleet-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// VehicleHandler handles HTTP requests for vehicles
type VehicleHandler struct {
	vehicleService service.VehicleServiceInterface
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService service.VehicleServiceInterface) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// Create handles POST /vehicles
// @Summary Create a vehicle
// @Description The vehicle is created in the actor's company; only superadmin may name another company.
// @Tags vehicles
// @Accept json
// @Produce json
// @Param vehicle body service.CreateVehicleRequest true "Vehicle data"
// @Success 201 {object} service.VehicleResponse "Vehicle created"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Failure 409 {object} ErrorResponse "License plate already registered"
// @Security BearerAuth
// @Router /vehicles [post]
func (h *VehicleHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req service.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	vehicle, err := h.vehicleService.Create(actor, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

// Get handles GET /vehicles/:id
// @Summary Get a vehicle
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} service.VehicleResponse "Vehicle"
// @Failure 403 {object} ErrorResponse "Out of scope"
// @Failure 404 {object} ErrorResponse "Vehicle not found"
// @Security BearerAuth
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.GetByID(actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// List handles GET /vehicles
// @Summary List vehicles
// @Tags vehicles
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.VehicleListResponse "Vehicles in scope"
// @Security BearerAuth
// @Router /vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	resp, err := h.vehicleService.List(actor, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /vehicles/:id
// @Summary Update a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param vehicle body service.UpdateVehicleRequest true "Fields to update"
// @Success 200 {object} service.VehicleResponse "Updated vehicle"
// @Failure 403 {object} ErrorResponse "Out of scope"
// @Failure 404 {object} ErrorResponse "Vehicle not found"
// @Failure 409 {object} ErrorResponse "License plate already registered"
// @Security BearerAuth
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	vehicle, err := h.vehicleService.Update(actor, id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// Delete handles DELETE /vehicles/:id
// @Summary Delete a vehicle
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} map[string]string "Vehicle deleted"
// @Failure 403 {object} ErrorResponse "Out of scope"
// @Failure 404 {object} ErrorResponse "Vehicle not found"
// @Security BearerAuth
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.vehicleService.Delete(actor, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}

package handlers

import (
	"net/http"

	"fleet-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CompanyHandler handles HTTP requests for companies
type CompanyHandler struct {
	companyService service.CompanyServiceInterface
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService service.CompanyServiceInterface) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// Create handles POST /companies
// @Summary Create a company
// @Description Superadmin only
// @Tags companies
// @Accept json
// @Produce json
// @Param company body service.CreateCompanyRequest true "Company data"
// @Success 201 {object} service.CompanyResponse "Company created"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Failure 409 {object} ErrorResponse "Email already in use"
// @Security BearerAuth
// @Router /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req service.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	company, err := h.companyService.Create(actor, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// Get handles GET /companies/:id
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} service.CompanyResponse "Company"
// @Failure 403 {object} ErrorResponse "Out of scope"
// @Failure 404 {object} ErrorResponse "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetByID(actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// List handles GET /companies
// @Summary List companies
// @Description Superadmin sees all companies; everyone else sees only their own
// @Tags companies
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.CompanyListResponse "Companies in scope"
// @Security BearerAuth
// @Router /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	resp, err := h.companyService.List(actor, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /companies/:id
// @Summary Update a company
// @Description Partial update. Admins may change contact fields of their own company; superadmin may change everything.
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Param company body service.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} service.CompanyResponse "Updated company"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Failure 404 {object} ErrorResponse "Company not found"
// @Failure 409 {object} ErrorResponse "Email already in use"
// @Security BearerAuth
// @Router /companies/{id} [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	company, err := h.companyService.Update(actor, id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// Delete handles DELETE /companies/:id
// @Summary Delete a company
// @Description Superadmin only
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} map[string]string "Company deleted"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Failure 404 {object} ErrorResponse "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.companyService.Delete(actor, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "company deleted"})
}

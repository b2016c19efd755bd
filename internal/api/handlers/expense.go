package handlers

import (
	"net/http"

	"fleet-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles HTTP requests for expenses
type ExpenseHandler struct {
	expenseService service.ExpenseServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService service.ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Create handles POST /expenses
// @Summary Record an expense
// @Description The expense is owned by the acting user and created in their company.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body service.CreateExpenseRequest true "Expense data"
// @Success 201 {object} service.ExpenseResponse "Expense recorded"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Security BearerAuth
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req service.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	expense, err := h.expenseService.Create(actor, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// Get handles GET /expenses/:id
// @Summary Get an expense
// @Description Expenses are visible company-wide.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} service.ExpenseResponse "Expense"
// @Failure 403 {object} ErrorResponse "Out of scope"
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetByID(actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

// List handles GET /expenses
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.ExpenseListResponse "Expenses in scope"
// @Security BearerAuth
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	resp, err := h.expenseService.List(actor, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /expenses/:id
// @Summary Update an expense
// @Description Admin or superadmin only; drivers cannot edit expenses.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body service.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} service.ExpenseResponse "Updated expense"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	expense, err := h.expenseService.Update(actor, id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

// Delete handles DELETE /expenses/:id
// @Summary Delete an expense
// @Description Superadmin only
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} map[string]string "Expense deleted"
// @Failure 403 {object} ErrorResponse "Insufficient privileges"
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.expenseService.Delete(actor, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}

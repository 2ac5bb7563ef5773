package handlers

import (
	"net/http"
	"strconv"

	"staff-backoffice-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EmployeeHandler handles HTTP requests for employee records
type EmployeeHandler struct {
	employeeService service.EmployeeServiceInterface
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService service.EmployeeServiceInterface) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// CreateEmployee handles POST /employees
// @Summary Create an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body service.CreateEmployeeRequest true "Employee data"
// @Success 201 {object} service.EmployeeResponse "Successfully created employee"
// @Failure 400 {object} ErrorResponse "Invalid request or unknown position"
// @Failure 409 {object} ErrorResponse "National ID already registered"
// @Security BearerAuth
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req service.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// GetEmployee handles GET /employees/:id
// @Summary Get employee by ID
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID (UUID)"
// @Success 200 {object} service.EmployeeResponse "Successfully retrieved employee"
// @Failure 400 {object} ErrorResponse "Invalid employee ID"
// @Failure 404 {object} ErrorResponse "Employee not found"
// @Security BearerAuth
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := pathID(c, "employee")
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get employee")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// ListEmployees handles GET /employees
// @Summary List employees of the caller's branch
// @Tags employees
// @Produce json
// @Param activeOnly query bool false "Only active employees"
// @Param positionId query string false "Only employees holding this position (UUID)"
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} service.PagedResponse[service.EmployeeResponse] "Page of employees"
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	var filter service.EmployeeListFilter
	if raw := c.Query("activeOnly"); raw != "" {
		activeOnly, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activeOnly"})
			return
		}
		filter.ActiveOnly = activeOnly
	}
	if raw := c.Query("positionId"); raw != "" {
		positionID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid position ID"})
			return
		}
		filter.PositionID = &positionID
	}

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err, "Failed to list employees")
		return
	}

	c.JSON(http.StatusOK, employees)
}

// UpdateEmployee handles PUT /employees/:id
// @Summary Update an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID (UUID)"
// @Param employee body service.UpdateEmployeeRequest true "Fields to change"
// @Success 200 {object} service.EmployeeResponse "Successfully updated employee"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Employee not found"
// @Failure 409 {object} ErrorResponse "National ID already registered"
// @Security BearerAuth
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := pathID(c, "employee")
	if !ok {
		return
	}

	var req service.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// TerminateEmployee handles POST /employees/:id/terminate
// @Summary Terminate an employee
// @Description Deactivates the employee and records the termination date
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID (UUID)"
// @Param termination body service.TerminateEmployeeRequest true "Termination date"
// @Success 200 {object} service.EmployeeResponse "Terminated employee"
// @Failure 400 {object} ErrorResponse "Invalid request or already inactive"
// @Failure 404 {object} ErrorResponse "Employee not found"
// @Security BearerAuth
// @Router /employees/{id}/terminate [post]
func (h *EmployeeHandler) TerminateEmployee(c *gin.Context) {
	id, ok := pathID(c, "employee")
	if !ok {
		return
	}

	var req service.TerminateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.TerminateEmployee(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to terminate employee")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles DELETE /employees/:id
// @Summary Delete an employee
// @Tags employees
// @Param id path string true "Employee ID (UUID)"
// @Success 204 "Successfully deleted employee"
// @Failure 400 {object} ErrorResponse "Invalid employee ID"
// @Failure 404 {object} ErrorResponse "Employee not found"
// @Security BearerAuth
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := pathID(c, "employee")
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete employee")
		return
	}

	c.Status(http.StatusNoContent)
}

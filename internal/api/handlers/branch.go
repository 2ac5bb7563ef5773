package handlers

import (
	"net/http"

	"staff-backoffice-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// BranchHandler handles HTTP requests for branch operations
type BranchHandler struct {
	branchService service.BranchServiceInterface
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService service.BranchServiceInterface) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// CreateBranch handles POST /branches
// @Summary Create a branch
// @Description Create a new branch (tenant)
// @Tags branches
// @Accept json
// @Produce json
// @Param branch body service.CreateBranchRequest true "Branch data"
// @Success 201 {object} service.BranchResponse "Successfully created branch"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Branch code already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /branches [post]
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req service.CreateBranchRequest
	if !bindJSON(c, &req) {
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create branch")
		return
	}

	c.JSON(http.StatusCreated, branch)
}

// GetBranch handles GET /branches/:id
// @Summary Get branch by ID
// @Tags branches
// @Produce json
// @Param id path string true "Branch ID (UUID)"
// @Success 200 {object} service.BranchResponse "Successfully retrieved branch"
// @Failure 400 {object} ErrorResponse "Invalid branch ID"
// @Failure 404 {object} ErrorResponse "Branch not found"
// @Security BearerAuth
// @Router /branches/{id} [get]
func (h *BranchHandler) GetBranch(c *gin.Context) {
	id, ok := pathID(c, "branch")
	if !ok {
		return
	}

	branch, err := h.branchService.GetBranchByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get branch")
		return
	}

	c.JSON(http.StatusOK, branch)
}

// ListBranches handles GET /branches
// @Summary List branches
// @Description Administrators see every branch, everyone else only their own
// @Tags branches
// @Produce json
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} service.PagedResponse[service.BranchResponse] "Page of branches"
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Security BearerAuth
// @Router /branches [get]
func (h *BranchHandler) ListBranches(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	branches, err := h.branchService.ListBranches(c.Request.Context(), page)
	if err != nil {
		respondError(c, err, "Failed to list branches")
		return
	}

	c.JSON(http.StatusOK, branches)
}

// UpdateBranch handles PUT /branches/:id
// @Summary Update a branch
// @Tags branches
// @Accept json
// @Produce json
// @Param id path string true "Branch ID (UUID)"
// @Param branch body service.UpdateBranchRequest true "Fields to change"
// @Success 200 {object} service.BranchResponse "Successfully updated branch"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Branch not found"
// @Failure 409 {object} ErrorResponse "Branch code already exists"
// @Security BearerAuth
// @Router /branches/{id} [put]
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	id, ok := pathID(c, "branch")
	if !ok {
		return
	}

	var req service.UpdateBranchRequest
	if !bindJSON(c, &req) {
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update branch")
		return
	}

	c.JSON(http.StatusOK, branch)
}

// DeleteBranch handles DELETE /branches/:id
// @Summary Delete a branch
// @Tags branches
// @Param id path string true "Branch ID (UUID)"
// @Success 204 "Successfully deleted branch"
// @Failure 400 {object} ErrorResponse "Invalid branch ID or own branch"
// @Failure 404 {object} ErrorResponse "Branch not found"
// @Security BearerAuth
// @Router /branches/{id} [delete]
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	id, ok := pathID(c, "branch")
	if !ok {
		return
	}

	if err := h.branchService.DeleteBranch(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete branch")
		return
	}

	c.Status(http.StatusNoContent)
}

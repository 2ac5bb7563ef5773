package handlers

import (
	"net/http"

	"staff-backoffice-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// PermissionHandler handles HTTP requests for permission operations
type PermissionHandler struct {
	permissionService service.PermissionServiceInterface
}

// NewPermissionHandler creates a new permission handler
func NewPermissionHandler(permissionService service.PermissionServiceInterface) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// CreatePermission handles POST /permissions
// @Summary Create a permission
// @Tags permissions
// @Accept json
// @Produce json
// @Param permission body service.CreatePermissionRequest true "Permission data"
// @Success 201 {object} service.PermissionResponse "Successfully created permission"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Permission code already exists"
// @Security BearerAuth
// @Router /permissions [post]
func (h *PermissionHandler) CreatePermission(c *gin.Context) {
	var req service.CreatePermissionRequest
	if !bindJSON(c, &req) {
		return
	}

	permission, err := h.permissionService.CreatePermission(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create permission")
		return
	}

	c.JSON(http.StatusCreated, permission)
}

// GetPermission handles GET /permissions/:id
// @Summary Get permission by ID
// @Tags permissions
// @Produce json
// @Param id path string true "Permission ID (UUID)"
// @Success 200 {object} service.PermissionResponse "Successfully retrieved permission"
// @Failure 400 {object} ErrorResponse "Invalid permission ID"
// @Failure 404 {object} ErrorResponse "Permission not found"
// @Security BearerAuth
// @Router /permissions/{id} [get]
func (h *PermissionHandler) GetPermission(c *gin.Context) {
	id, ok := pathID(c, "permission")
	if !ok {
		return
	}

	permission, err := h.permissionService.GetPermissionByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get permission")
		return
	}

	c.JSON(http.StatusOK, permission)
}

// ListPermissions handles GET /permissions
// @Summary List permissions of the caller's branch
// @Tags permissions
// @Produce json
// @Param category query string false "Only permissions of this category"
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} service.PagedResponse[service.PermissionResponse] "Page of permissions"
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Security BearerAuth
// @Router /permissions [get]
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	permissions, err := h.permissionService.ListPermissions(c.Request.Context(), c.Query("category"), page)
	if err != nil {
		respondError(c, err, "Failed to list permissions")
		return
	}

	c.JSON(http.StatusOK, permissions)
}

// UpdatePermission handles PUT /permissions/:id
// @Summary Update a permission
// @Tags permissions
// @Accept json
// @Produce json
// @Param id path string true "Permission ID (UUID)"
// @Param permission body service.UpdatePermissionRequest true "Fields to change"
// @Success 200 {object} service.PermissionResponse "Successfully updated permission"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Permission not found"
// @Failure 409 {object} ErrorResponse "Permission code already exists"
// @Security BearerAuth
// @Router /permissions/{id} [put]
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	id, ok := pathID(c, "permission")
	if !ok {
		return
	}

	var req service.UpdatePermissionRequest
	if !bindJSON(c, &req) {
		return
	}

	permission, err := h.permissionService.UpdatePermission(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update permission")
		return
	}

	c.JSON(http.StatusOK, permission)
}

// DeletePermission handles DELETE /permissions/:id
// @Summary Delete a permission
// @Tags permissions
// @Param id path string true "Permission ID (UUID)"
// @Success 204 "Successfully deleted permission"
// @Failure 400 {object} ErrorResponse "Invalid permission ID"
// @Failure 404 {object} ErrorResponse "Permission not found"
// @Security BearerAuth
// @Router /permissions/{id} [delete]
func (h *PermissionHandler) DeletePermission(c *gin.Context) {
	id, ok := pathID(c, "permission")
	if !ok {
		return
	}

	if err := h.permissionService.DeletePermission(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete permission")
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"staff-backoffice-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// RoleHandler handles HTTP requests for role operations
type RoleHandler struct {
	roleService service.RoleServiceInterface
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService service.RoleServiceInterface) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// CreateRole handles POST /roles
// @Summary Create a role
// @Tags roles
// @Accept json
// @Produce json
// @Param role body service.CreateRoleRequest true "Role data"
// @Success 201 {object} service.RoleResponse "Successfully created role"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Role name already exists"
// @Security BearerAuth
// @Router /roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req service.CreateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create role")
		return
	}

	c.JSON(http.StatusCreated, role)
}

// GetRole handles GET /roles/:id
// @Summary Get role by ID with its permissions
// @Tags roles
// @Produce json
// @Param id path string true "Role ID (UUID)"
// @Success 200 {object} service.RoleResponse "Successfully retrieved role"
// @Failure 400 {object} ErrorResponse "Invalid role ID"
// @Failure 404 {object} ErrorResponse "Role not found"
// @Security BearerAuth
// @Router /roles/{id} [get]
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := pathID(c, "role")
	if !ok {
		return
	}

	role, err := h.roleService.GetRoleByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get role")
		return
	}

	c.JSON(http.StatusOK, role)
}

// ListRoles handles GET /roles
// @Summary List roles of the caller's branch
// @Tags roles
// @Produce json
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} service.PagedResponse[service.RoleResponse] "Page of roles"
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Security BearerAuth
// @Router /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	roles, err := h.roleService.ListRoles(c.Request.Context(), page)
	if err != nil {
		respondError(c, err, "Failed to list roles")
		return
	}

	c.JSON(http.StatusOK, roles)
}

// UpdateRole handles PUT /roles/:id
// @Summary Update a role
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID (UUID)"
// @Param role body service.UpdateRoleRequest true "Fields to change"
// @Success 200 {object} service.RoleResponse "Successfully updated role"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Role not found"
// @Failure 409 {object} ErrorResponse "Role name already exists"
// @Security BearerAuth
// @Router /roles/{id} [put]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c, "role")
	if !ok {
		return
	}

	var req service.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update role")
		return
	}

	c.JSON(http.StatusOK, role)
}

// DeleteRole handles DELETE /roles/:id
// @Summary Delete a role
// @Tags roles
// @Param id path string true "Role ID (UUID)"
// @Success 204 "Successfully deleted role"
// @Failure 400 {object} ErrorResponse "Invalid role ID"
// @Failure 404 {object} ErrorResponse "Role not found"
// @Security BearerAuth
// @Router /roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := pathID(c, "role")
	if !ok {
		return
	}

	if err := h.roleService.DeleteRole(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete role")
		return
	}

	c.Status(http.StatusNoContent)
}

// SetPermissions handles PUT /roles/:id/permissions
// @Summary Replace a role's permissions
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID (UUID)"
// @Param permissions body service.SetPermissionsRequest true "Permission IDs"
// @Success 200 {object} service.RoleResponse "Role with the new permissions"
// @Failure 400 {object} ErrorResponse "Invalid request or unknown permission"
// @Failure 404 {object} ErrorResponse "Role not found"
// @Security BearerAuth
// @Router /roles/{id}/permissions [put]
func (h *RoleHandler) SetPermissions(c *gin.Context) {
	id, ok := pathID(c, "role")
	if !ok {
		return
	}

	var req service.SetPermissionsRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.roleService.SetPermissions(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to set role permissions")
		return
	}

	c.JSON(http.StatusOK, role)
}

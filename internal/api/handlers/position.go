package handlers

import (
	"net/http"

	"staff-backoffice-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// PositionHandler handles HTTP requests for job positions
type PositionHandler struct {
	positionService service.PositionServiceInterface
}

// NewPositionHandler creates a new position handler
func NewPositionHandler(positionService service.PositionServiceInterface) *PositionHandler {
	return &PositionHandler{positionService: positionService}
}

// CreatePosition handles POST /positions
// @Summary Create a position
// @Tags positions
// @Accept json
// @Produce json
// @Param position body service.CreatePositionRequest true "Position data"
// @Success 201 {object} service.PositionResponse "Successfully created position"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Position name already exists"
// @Security BearerAuth
// @Router /positions [post]
func (h *PositionHandler) CreatePosition(c *gin.Context) {
	var req service.CreatePositionRequest
	if !bindJSON(c, &req) {
		return
	}

	position, err := h.positionService.CreatePosition(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create position")
		return
	}

	c.JSON(http.StatusCreated, position)
}

// GetPosition handles GET /positions/:id
// @Summary Get position by ID
// @Tags positions
// @Produce json
// @Param id path string true "Position ID (UUID)"
// @Success 200 {object} service.PositionResponse "Successfully retrieved position"
// @Failure 400 {object} ErrorResponse "Invalid position ID"
// @Failure 404 {object} ErrorResponse "Position not found"
// @Security BearerAuth
// @Router /positions/{id} [get]
func (h *PositionHandler) GetPosition(c *gin.Context) {
	id, ok := pathID(c, "position")
	if !ok {
		return
	}

	position, err := h.positionService.GetPositionByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get position")
		return
	}

	c.JSON(http.StatusOK, position)
}

// ListPositions handles GET /positions
// @Summary List positions of the caller's branch
// @Tags positions
// @Produce json
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} service.PagedResponse[service.PositionResponse] "Page of positions"
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Security BearerAuth
// @Router /positions [get]
func (h *PositionHandler) ListPositions(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	positions, err := h.positionService.ListPositions(c.Request.Context(), page)
	if err != nil {
		respondError(c, err, "Failed to list positions")
		return
	}

	c.JSON(http.StatusOK, positions)
}

// UpdatePosition handles PUT /positions/:id
// @Summary Update a position
// @Tags positions
// @Accept json
// @Produce json
// @Param id path string true "Position ID (UUID)"
// @Param position body service.UpdatePositionRequest true "Fields to change"
// @Success 200 {object} service.PositionResponse "Successfully updated position"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Position not found"
// @Failure 409 {object} ErrorResponse "Position name already exists"
// @Security BearerAuth
// @Router /positions/{id} [put]
func (h *PositionHandler) UpdatePosition(c *gin.Context) {
	id, ok := pathID(c, "position")
	if !ok {
		return
	}

	var req service.UpdatePositionRequest
	if !bindJSON(c, &req) {
		return
	}

	position, err := h.positionService.UpdatePosition(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update position")
		return
	}

	c.JSON(http.StatusOK, position)
}

// DeletePosition handles DELETE /positions/:id
// @Summary Delete a position
// @Description Positions with employees assigned cannot be deleted
// @Tags positions
// @Param id path string true "Position ID (UUID)"
// @Success 204 "Successfully deleted position"
// @Failure 400 {object} ErrorResponse "Invalid position ID or position in use"
// @Failure 404 {object} ErrorResponse "Position not found"
// @Security BearerAuth
// @Router /positions/{id} [delete]
func (h *PositionHandler) DeletePosition(c *gin.Context) {
	id, ok := pathID(c, "position")
	if !ok {
		return
	}

	if err := h.positionService.DeletePosition(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete position")
		return
	}

	c.Status(http.StatusNoContent)
}

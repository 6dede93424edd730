package handlers

import (
	"anpere-portal/internal/core/services"
	"anpere-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the admin dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles dashboard statistics
// @Summary Dashboard statistics
// @Description Return member counts by status, unread notifications and recent registrations
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", fiber.Map{
		"stats": stats,
	})
}

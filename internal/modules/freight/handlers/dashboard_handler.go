package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/freightdesk/freightdesk-be/internal/core/stats"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/services"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Aggregated dashboard report: overview metrics, status breakdown, monthly revenue, top customers, branch distribution, recent activity and alerts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} stats.Report
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	report, err := h.dashboardService.Stats(time.Now())
	if err != nil {
		if errors.Is(err, stats.ErrInvalidTime) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("❌ Failed to compute dashboard stats: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

package services

import (
	"time"

	"github.com/freightdesk/freightdesk-be/internal/core/stats"
	"github.com/freightdesk/freightdesk-be/internal/shared/utils"
)

// DashboardService computes dashboard statistics server-side so every
// client sees the same numbers.
type DashboardService struct {
	engine *stats.Engine
}

func NewDashboardService(source stats.Source, opts stats.Options) *DashboardService {
	return &DashboardService{
		engine: stats.NewEngine(source, opts),
	}
}

// Stats builds the full dashboard report as of now.
func (s *DashboardService) Stats(now time.Time) (*stats.Report, error) {
	if now.IsZero() {
		now = time.Now()
	}
	return s.engine.Compute(now)
}

// LogAlertDigest evaluates the operational alerts and writes them to the
// log. Wired to the scheduler so staff get a morning summary without
// opening the dashboard.
func (s *DashboardService) LogAlertDigest() {
	alerts := s.engine.Alerts(time.Now())
	if len(alerts) == 0 {
		utils.LogInfo("alert digest: all clear", nil)
		return
	}

	for _, alert := range alerts {
		utils.LogWarn("alert digest", map[string]interface{}{
			"alert":    alert.Type,
			"severity": alert.Severity,
			"count":    alert.Count,
			"detail":   alert.Description,
		})
	}
}

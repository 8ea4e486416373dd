package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/httpresp"
	ucDashboard "github.com/ksrlabs/resource-booking/internal/usecase/dashboard"
)

type DashboardHandler struct {
	statsUC *ucDashboard.GetStats
}

func NewDashboardHandler(statsUC *ucDashboard.GetStats) *DashboardHandler {
	return &DashboardHandler{statsUC: statsUC}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.statsUC.Execute(c.Request.Context())
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, stats)
}

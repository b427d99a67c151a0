package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReportsController struct {
	stats StatsStore
}

func NewReportsController(stats StatsStore) *ReportsController {
	return &ReportsController{stats: stats}
}

// Summary reports catalog and circulation counters in one payload.
func (controller *ReportsController) Summary(c *gin.Context) {
	stats, err := controller.stats.Stats()
	if err != nil {
		respondInternalError(c, err, "report summary")
		return
	}
	c.JSON(http.StatusOK, stats)
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gobudget/pkg/ledger"
)

// dashboardHandler serves the aggregated stats and chart series for a
// budget. The payload is cached per budget; write handlers clear the entry,
// so a hit is at worst a snapshot from just before the latest write.
func dashboardHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, false)
	if !ok {
		return
	}
	if cached, ok := getCachedDashboard(budget.ID); ok {
		c.JSON(http.StatusOK, cached)
		return
	}
	dashboard, err := ledger.ComputeDashboard(db, budget, langCode())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	setCachedDashboard(budget.ID, dashboard)
	c.JSON(http.StatusOK, dashboard)
}

package api

import (
	"net/http"
	"slices"

	"scamwatch/security-api/dashboard"

	"github.com/gin-gonic/gin"
)

func (a *API) DashboardStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.Dashboard.Stats(),
	})
}

func (a *API) DashboardThreats(c *gin.Context) {
	period := c.DefaultQuery("period", dashboard.DefaultPeriod)
	if !slices.Contains(dashboard.ValidPeriods, period) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Query validation error",
			"errors":  "period must be one of: 1D 7D 30D 90D",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.Dashboard.ThreatHistory(period),
	})
}

func (a *API) DashboardStatsUpdate(c *gin.Context) {
	var upd dashboard.StatsUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation error",
			"errors":  "Invalid request body",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Dashboard stats updated successfully",
		"data":    a.Dashboard.UpdateStats(upd),
	})
}

func (a *API) DashboardRiskScore(c *gin.Context) {
	score := dashboard.RiskScore(a.Dashboard.Stats())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"riskScore": score,
			"riskLevel": dashboard.RiskLevel(score),
			"riskColor": dashboard.RiskColor(score),
		},
	})
}

func (a *API) DashboardResolutionRate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"resolutionRate": dashboard.ResolutionRate(a.Dashboard.Stats()),
		},
	})
}

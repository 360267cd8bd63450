package api

import (
	"errors"
	"net/http"

	"scamwatch/security-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) AlertResolve(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	alert, err := a.Alerts.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Alert not found",
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})

		zap.L().Error("Failed to resolve alert", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Alert resolved successfully",
		"data":    alert,
	})
}

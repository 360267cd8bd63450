package api

import (
	"errors"
	"net/http"

	"scamwatch/security-api/model"
	"scamwatch/security-api/store"
	"scamwatch/security-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type alertUpdateBody struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,min=1,max=1000"`
	Severity    *string `json:"severity" binding:"omitempty,oneof=low medium high critical"`
	Type        *string `json:"type" binding:"omitempty,oneof=spam malware fraud phishing other"`
	IsResolved  *bool   `json:"isResolved"`

	Location           *string        `json:"location" binding:"omitempty,max=200"`
	MalwareType        *string        `json:"malwareType" binding:"omitempty,max=100"`
	InfectedDeviceType *string        `json:"infectedDeviceType" binding:"omitempty,max=100"`
	OperatingSystem    *string        `json:"operatingSystem" binding:"omitempty,max=100"`
	DetectionMethod    *string        `json:"detectionMethod" binding:"omitempty,max=200"`
	FileName           *string        `json:"fileName" binding:"omitempty,max=200"`
	Name               *string        `json:"name" binding:"omitempty,max=100"`
	SystemAffected     *string        `json:"systemAffected" binding:"omitempty,max=200"`
	Metadata           map[string]any `json:"metadata"`
}

func (b *alertUpdateBody) toUpdate() model.AlertUpdate {
	upd := model.AlertUpdate{
		Title:              b.Title,
		Description:        b.Description,
		IsResolved:         b.IsResolved,
		Location:           b.Location,
		MalwareType:        b.MalwareType,
		InfectedDeviceType: b.InfectedDeviceType,
		OperatingSystem:    b.OperatingSystem,
		DetectionMethod:    b.DetectionMethod,
		FileName:           b.FileName,
		Name:               b.Name,
		SystemAffected:     b.SystemAffected,
		Metadata:           model.JSONMap(b.Metadata),
	}

	if b.Severity != nil {
		s := model.Severity(*b.Severity)
		upd.Severity = &s
	}
	if b.Type != nil {
		t := model.AlertType(*b.Type)
		upd.Type = &t
	}

	return upd
}

func (a *API) AlertUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data alertUpdateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation error",
			"errors":  validators.FieldErrors(err),
		})
		return
	}

	alert, err := a.Alerts.Update(c.Request.Context(), c.Param("id"), data.toUpdate())
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

		zap.L().Error("Failed to update alert", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Alert updated successfully",
		"data":    alert,
	})
}

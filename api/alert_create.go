package api

import (
	"net/http"

	"scamwatch/security-api/model"
	"scamwatch/security-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type alertCreateBody struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,min=1,max=1000"`
	Severity    string `json:"severity" binding:"required,oneof=low medium high critical"`
	Type        string `json:"type" binding:"required,oneof=spam malware fraud phishing other"`

	Location           string         `json:"location" binding:"omitempty,max=200"`
	MalwareType        string         `json:"malwareType" binding:"omitempty,max=100"`
	InfectedDeviceType string         `json:"infectedDeviceType" binding:"omitempty,max=100"`
	OperatingSystem    string         `json:"operatingSystem" binding:"omitempty,max=100"`
	DetectionMethod    string         `json:"detectionMethod" binding:"omitempty,max=200"`
	FileName           string         `json:"fileName" binding:"omitempty,max=200"`
	Name               string         `json:"name" binding:"omitempty,max=100"`
	SystemAffected     string         `json:"systemAffected" binding:"omitempty,max=200"`
	Metadata           map[string]any `json:"metadata"`
}

func (a *API) AlertCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data alertCreateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation error",
			"errors":  validators.FieldErrors(err),
		})
		return
	}

	alert := &model.SecurityAlert{
		UserID:             userID,
		Title:              data.Title,
		Description:        data.Description,
		Severity:           model.Severity(data.Severity),
		Type:               model.AlertType(data.Type),
		Location:           data.Location,
		MalwareType:        data.MalwareType,
		InfectedDeviceType: data.InfectedDeviceType,
		OperatingSystem:    data.OperatingSystem,
		DetectionMethod:    data.DetectionMethod,
		FileName:           data.FileName,
		Name:               data.Name,
		SystemAffected:     data.SystemAffected,
		Metadata:           model.JSONMap(data.Metadata),
	}

	if err := a.Alerts.Create(c.Request.Context(), alert); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})

		zap.L().Error("Failed to create alert", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Alert created successfully",
		"data":    alert,
	})
}

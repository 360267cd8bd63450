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

func (a *API) ProfileGet(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	user, err := a.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User not found",
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})

		zap.L().Error("Failed to load profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    userResponse(user),
	})
}

type profileUpdateBody struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

func (a *API) ProfileUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data profileUpdateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation error",
			"errors":  validators.FieldErrors(err),
		})
		return
	}

	user, err := a.Users.Update(c.Request.Context(), userID, model.UserUpdate{
		Username: data.Username,
		Email:    data.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "Username or email already exists",
			})
		case errors.Is(err, store.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User not found",
			})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Internal server error",
			})

			zap.L().Error("Failed to update profile", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"data":    userResponse(user),
	})
}

package api

import (
	"errors"
	"net/http"

	"scamwatch/security-api/security"
	"scamwatch/security-api/store"
	"scamwatch/security-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

func (a *API) AuthLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation error",
			"errors":  validators.FieldErrors(err),
		})
		return
	}

	user, err := a.Users.GetByUsername(c.Request.Context(), data.Username)
	if err != nil {
		// Unknown usernames and wrong passwords answer identically so
		// the endpoint can't be used to probe for accounts
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid username or password",
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !security.CheckPassword(data.Password, user.PasswordHash) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid username or password",
		})
		return
	}

	token, err := a.Tokens.Issue(user.ID)
	if err != nil {
		if errors.Is(err, security.ErrNoSigningKey) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Server configuration error: JWT secret not configured",
			})

			zap.L().Error("Login attempted without a configured JWT secret", zap.String("requestID", requestID))
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})

		zap.L().Error("Failed to sign token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"user":  userResponse(user),
			"token": token,
		},
	})
}

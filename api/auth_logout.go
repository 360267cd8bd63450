package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthLogout is a stateless confirmation. Tokens aren't blacklisted,
// they simply run out
func (a *API) AuthLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}

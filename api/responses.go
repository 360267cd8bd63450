package api

import (
	"scamwatch/security-api/model"

	"github.com/gin-gonic/gin"
)

// userResponse strips the password hash off a user record before it
// goes over the wire
func userResponse(u *model.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"createdAt": u.CreatedAt,
	}
}

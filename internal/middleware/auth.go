package middleware

import (
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/models"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/services"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	contextUserKey  = "user"
	contextTokenKey = "token"
)

const invalidTokenMessage = "Invalid or expired token"

func unauthorized(c *gin.Context, message string) {
	utils.AbortWithError(c, utils.Unauthorized(message))
}

// AuthMiddleware resolves the bearer token to a user. Every failure is a 401.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			unauthorized(c, "No authorization header")
			return
		}
		tokenString, err := utils.ExtractToken(c)
		if err != nil {
			unauthorized(c, invalidTokenMessage)
			return
		}

		isDenylisted, err := services.IsDenylisted(tokenString)
		if err != nil {
			utils.AbortWithError(c, utils.Upstream(err, "Failed to verify token"))
			return
		}
		if isDenylisted {
			unauthorized(c, "Token has been revoked")
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			unauthorized(c, invalidTokenMessage)
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			unauthorized(c, invalidTokenMessage)
			return
		}

		user, err := services.FindUserByID(uint(userIDFloat))
		if err != nil {
			unauthorized(c, invalidTokenMessage)
			return
		}

		c.Set(contextUserKey, user)
		c.Set(contextTokenKey, tokenString)
		c.Next()
	}
}

// CurrentUser returns the user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// CurrentToken returns the raw bearer token accepted by AuthMiddleware.
func CurrentToken(c *gin.Context) string {
	return c.GetString(contextTokenKey)
}

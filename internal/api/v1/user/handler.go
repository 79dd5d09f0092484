package user

import (
	"net/http"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/middleware"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/utils"
	"github.com/gin-gonic/gin"
)

// CurrentUser godoc
// @Summary Get current user
// @Description Get the signed-in user's identity
// @Tags user
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} user.UserResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/user [get]
func CurrentUser(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Invalid or expired token"))
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:       u.ID,
		Username: u.Username,
	})
}

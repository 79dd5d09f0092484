package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/api/v1/user"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/middleware"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/services"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/utils"
	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new user
// @Description Register a new user with a username and password
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   RegisterInput  true  "Register Input"
// @Success 201 {object} user.UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var input RegisterInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u, err := services.RegisterUser(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse("Username already taken"))
			return
		}
		utils.AbortWithError(c, utils.Upstream(err, "Failed to register user"))
		return
	}

	token, expiresAt, err := utils.GenerateToken(u.ID, u.Username)
	if err != nil {
		utils.AbortWithError(c, utils.Upstream(err, "Could not generate token"))
		return
	}

	c.JSON(http.StatusCreated, user.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Token:     token,
		ExpiresAt: &expiresAt,
	})
}

// Login godoc
// @Summary Log in a user
// @Description Exchange a username and password for a bearer token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   LoginInput  true  "Login Input"
// @Success 200 {object} user.UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	token, expiresAt, u, err := services.LoginUser(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Invalid username or password"))
			return
		}
		utils.AbortWithError(c, utils.Upstream(err, "Failed to log in"))
		return
	}

	c.JSON(http.StatusOK, user.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Token:     token,
		ExpiresAt: &expiresAt,
	})
}

// Logout godoc
// @Summary Log out a user
// @Description Revoke the caller's current token
// @Tags auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	tokenString := middleware.CurrentToken(c)

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Invalid or expired token"))
		return
	}

	expiresAt, err := utils.TokenExpiry(claims)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Invalid or expired token"))
		return
	}

	if err := services.AddToDenylist(tokenString, time.Until(expiresAt)); err != nil {
		utils.AbortWithError(c, utils.Upstream(err, "Failed to revoke token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully"))
}

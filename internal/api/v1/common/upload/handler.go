package upload

import (
	"errors"
	"net/http"

	"github.com/Sandeep010-hub/promptcraft-fusion/config"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/services"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/utils"
	"github.com/gin-gonic/gin"
)

// GetOSSToken godoc
// @Summary Get OSS STS Token
// @Description Get temporary credentials for uploading outputs straight to Alibaba Cloud OSS
// @Tags common
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} services.STSCredentials
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /common/upload/token [get]
func GetOSSToken(c *gin.Context) {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	token, err := services.GetOSSTSToken(cfg)
	if err != nil {
		if errors.Is(err, services.ErrSTSNotConfigured) {
			utils.AbortWithError(c, utils.Upstream(err, "Direct upload is not configured"))
			return
		}
		utils.AbortWithError(c, utils.Upstream(err, "Failed to get OSS token"))
		return
	}

	c.JSON(http.StatusOK, token)
}

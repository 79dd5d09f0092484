package prompt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/services"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/utils"
	"github.com/gin-gonic/gin"
)

// GeneratePrompt godoc
// @Summary Generate a refined prompt
// @Description Rewrite a prompt for one target model, or for Gemini, ChatGPT and Claude at once when targetModel is All
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body GeneratePromptRequest true "Prompt and target model"
// @Success 200 {object} GeneratePromptResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /prompts/generate [post]
func GeneratePrompt(c *gin.Context) {
	var req GeneratePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" || strings.TrimSpace(req.TargetModel) == "" {
		utils.AbortWithError(c, utils.Validation("Missing prompt or targetModel"))
		return
	}

	generated, err := services.GeneratePrompt(c.Request.Context(), req.Prompt, req.TargetModel)
	if err != nil {
		if errors.Is(err, services.ErrGeneratorNotConfigured) {
			utils.AbortWithError(c, utils.Upstream(err, "Text generation API key not configured"))
			return
		}
		utils.AbortWithError(c, utils.Upstream(err, utils.InternalErrorMessage))
		return
	}

	c.JSON(http.StatusOK, GeneratePromptResponse{GeneratedPrompt: generated})
}

package prompt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/middleware"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/services"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	msgMissingSaveFields = "Missing required fields: generatedPrompt, and targetModel"
	msgSaveFailed        = "Failed to save prompt to database"
	msgSaved             = "Prompt saved successfully"
	msgFetchFailed       = "Failed to fetch prompts"
	msgPromptNotFound    = "Prompt not found"
)

func callerID(c *gin.Context) (uint, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse("Invalid or expired token"))
		return 0, false
	}
	return user.ID, true
}

func abortPromptError(c *gin.Context, err error, message string) {
	if errors.Is(err, services.ErrPromptNotFound) {
		utils.AbortWithError(c, utils.NotFound(msgPromptNotFound))
		return
	}
	utils.AbortWithError(c, utils.Upstream(err, message))
}

// SavePrompt godoc
// @Summary Save a generated prompt
// @Description Store a generated prompt in the caller's vault
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body SavePromptRequest true "Prompt to save"
// @Success 200 {object} SavePromptResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /prompts/save [post]
func SavePrompt(c *gin.Context) {
	savePrompt(c, http.StatusOK)
}

// CreatePrompt godoc
// @Summary Create a prompt
// @Description Add a prompt written by hand to the caller's vault. Same body and semantics as the save endpoint.
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body SavePromptRequest true "Prompt to create"
// @Success 201 {object} SavePromptResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /prompts [post]
func CreatePrompt(c *gin.Context) {
	savePrompt(c, http.StatusCreated)
}

func savePrompt(c *gin.Context, status int) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req SavePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if strings.TrimSpace(req.GeneratedPrompt) == "" || strings.TrimSpace(req.TargetModel) == "" {
		utils.AbortWithError(c, utils.Validation(msgMissingSaveFields))
		return
	}

	p, err := services.CreatePrompt(c.Request.Context(), userID, services.CreatePromptInput{
		OriginalPrompt:  req.OriginalPrompt,
		GeneratedPrompt: req.GeneratedPrompt,
		TargetModel:     req.TargetModel,
		Tags:            req.Tags,
		Starred:         req.Starred,
	})
	if err != nil {
		utils.AbortWithError(c, utils.Upstream(err, msgSaveFailed))
		return
	}

	c.JSON(status, SavePromptResponse{
		Success:  true,
		PromptID: p.ID,
		Message:  msgSaved,
	})
}

// ListPrompts godoc
// @Summary List the caller's prompts
// @Description Newest first. search matches original prompt, generated prompt or target model case-insensitively; a category other than All restricts the target model.
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ListPromptsRequest false "Filters"
// @Success 200 {object} ListPromptsResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /prompts/list [post]
func ListPrompts(c *gin.Context) {
	var req ListPromptsRequest
	// an empty body means no filters
	if c.Request.ContentLength != 0 && !utils.BindAndValidate(c, &req) {
		return
	}
	listPrompts(c, req)
}

// SearchPrompts godoc
// @Summary List the caller's prompts
// @Description Query string variant of the list endpoint
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param search query string false "Substring to match"
// @Param category query string false "Target model, or All"
// @Success 200 {object} ListPromptsResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /prompts [get]
func SearchPrompts(c *gin.Context) {
	listPrompts(c, ListPromptsRequest{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
}

func listPrompts(c *gin.Context, req ListPromptsRequest) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if !utils.ValidateStruct(c, &req) {
		return
	}

	prompts, err := services.ListPrompts(c.Request.Context(), userID, services.PromptFilter{
		Search:   req.Search,
		Category: req.Category,
	})
	if err != nil {
		utils.AbortWithError(c, utils.Upstream(err, msgFetchFailed))
		return
	}

	views := services.ToPromptViews(prompts)
	c.JSON(http.StatusOK, ListPromptsResponse{
		Prompts: views,
		Total:   len(views),
	})
}

// GetPrompt godoc
// @Summary Get one prompt
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Prompt ID"
// @Success 200 {object} services.PromptView
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /prompts/{id} [get]
func GetPrompt(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	p, err := services.GetPrompt(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		abortPromptError(c, err, msgFetchFailed)
		return
	}
	c.JSON(http.StatusOK, services.ToPromptView(p))
}

// ToggleStar godoc
// @Summary Star or unstar a prompt
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Prompt ID"
// @Success 200 {object} services.PromptView
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /prompts/{id}/star [post]
func ToggleStar(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	p, err := services.ToggleStar(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		abortPromptError(c, err, "Failed to update prompt")
		return
	}
	c.JSON(http.StatusOK, services.ToPromptView(p))
}

// RecordUsage godoc
// @Summary Count one use of a prompt
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Prompt ID"
// @Success 200 {object} services.PromptView
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /prompts/{id}/use [post]
func RecordUsage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	p, err := services.RecordUsage(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		abortPromptError(c, err, "Failed to update prompt")
		return
	}
	c.JSON(http.StatusOK, services.ToPromptView(p))
}

package prompt

import (
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the prompt endpoints. Generation is public; every
// other route requires a bearer token.
func RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/prompts")
	group.POST("/generate", GeneratePrompt)

	authorized := group.Group("")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.POST("", CreatePrompt)
		authorized.GET("", SearchPrompts)
		authorized.POST("/save", SavePrompt)
		authorized.POST("/list", ListPrompts)
		authorized.POST("/upload", UploadOutput)
		authorized.GET("/:id", GetPrompt)
		authorized.POST("/:id/star", ToggleStar)
		authorized.POST("/:id/use", RecordUsage)
	}
}

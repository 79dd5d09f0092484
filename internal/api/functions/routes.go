// Package functions keeps the function-style endpoint names that existing
// browser clients call. Each route serves exactly the same handler as its
// /api/v1 counterpart.
package functions

import (
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/api/v1/prompt"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine) {
	group := router.Group("/functions/v1")
	group.POST("/generate-prompt", prompt.GeneratePrompt)

	authorized := group.Group("")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.POST("/save-prompt", prompt.SavePrompt)
		authorized.POST("/get-prompts", prompt.ListPrompts)
		authorized.POST("/upload-output", prompt.UploadOutput)
	}
}

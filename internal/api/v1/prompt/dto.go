package prompt

import "github.com/Sandeep010-hub/promptcraft-fusion/internal/services"

type GeneratePromptRequest struct {
	Prompt      string `json:"prompt" example:"write a cover letter"`
	TargetModel string `json:"targetModel" example:"Gemini"`
}

type GeneratePromptResponse struct {
	GeneratedPrompt string `json:"generatedPrompt"`
}

// SavePromptRequest is accepted by both the save action and the creation
// form.
type SavePromptRequest struct {
	OriginalPrompt  string   `json:"originalPrompt"`
	GeneratedPrompt string   `json:"generatedPrompt"`
	TargetModel     string   `json:"targetModel" binding:"max=64"`
	Tags            []string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
	Starred         bool     `json:"starred"`
}

type SavePromptResponse struct {
	Success  bool   `json:"success"`
	PromptID string `json:"promptId"`
	Message  string `json:"message"`
}

type ListPromptsRequest struct {
	Search   string `json:"search" form:"search" binding:"max=500"`
	Category string `json:"category" form:"category" binding:"max=64"`
}

type ListPromptsResponse struct {
	Prompts []services.PromptView `json:"prompts"`
	Total   int                   `json:"total"`
}

type UploadOutputResponse struct {
	Success   bool   `json:"success"`
	OutputURL string `json:"outputUrl"`
}

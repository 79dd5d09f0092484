package services

import "github.com/Sandeep010-hub/promptcraft-fusion/internal/models"

// DisplayDateLayout renders created_at as an en-US short date.
const DisplayDateLayout = "1/2/2006"

// PromptView is the shape the vault, the detail screen and the list endpoint
// share.
type PromptView struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	UsageCount     int      `json:"usage_count"`
	Starred        bool     `json:"starred"`
	CreatedAt      string   `json:"created_at"`
	OriginalPrompt string   `json:"original_prompt"`
	OutputURL      string   `json:"output_url,omitempty"`
	OutputType     string   `json:"output_type,omitempty"`
}

func ToPromptView(p *models.Prompt) PromptView {
	tags := []string(p.Tags)
	if len(tags) == 0 {
		tags = []string{p.TargetModel}
	}

	view := PromptView{
		ID:             p.ID,
		Title:          p.OriginalPrompt,
		Content:        p.GeneratedPrompt,
		Category:       p.TargetModel,
		Tags:           tags,
		UsageCount:     p.UsageCount,
		Starred:        p.Starred,
		CreatedAt:      p.CreatedAt.UTC().Format(DisplayDateLayout),
		OriginalPrompt: p.OriginalPrompt,
	}
	if p.HasOutput() {
		view.OutputURL = *p.OutputURL
		view.OutputType = *p.OutputType
	}
	return view
}

func ToPromptViews(prompts []models.Prompt) []PromptView {
	views := make([]PromptView, 0, len(prompts))
	for i := range prompts {
		views = append(views, ToPromptView(&prompts[i]))
	}
	return views
}

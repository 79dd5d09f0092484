package client

import "time"

// AuthResult is returned by Register and Login.
type AuthResult struct {
	ID        uint       `json:"id" yaml:"id"`
	Username  string     `json:"username" yaml:"username"`
	Token     string     `json:"token" yaml:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// User is the signed-in identity.
type User struct {
	ID       uint   `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
}

// Prompt is one vault entry in display form.
type Prompt struct {
	ID             string   `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Content        string   `json:"content" yaml:"content"`
	Category       string   `json:"category" yaml:"category"`
	Tags           []string `json:"tags" yaml:"tags"`
	UsageCount     int      `json:"usage_count" yaml:"usage_count"`
	Starred        bool     `json:"starred" yaml:"starred"`
	CreatedAt      string   `json:"created_at" yaml:"created_at"`
	OriginalPrompt string   `json:"original_prompt" yaml:"original_prompt"`
	OutputURL      string   `json:"output_url,omitempty" yaml:"output_url,omitempty"`
	OutputType     string   `json:"output_type,omitempty" yaml:"output_type,omitempty"`
}

type PromptList struct {
	Prompts []Prompt `json:"prompts" yaml:"prompts"`
	Total   int      `json:"total" yaml:"total"`
}

// ListFilter narrows ListPrompts. Empty fields mean no restriction.
type ListFilter struct {
	Search   string `json:"search,omitempty" yaml:"search,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// SaveRequest stores the generator's output.
type SaveRequest struct {
	OriginalPrompt  string   `json:"originalPrompt" yaml:"originalPrompt"`
	GeneratedPrompt string   `json:"generatedPrompt" yaml:"generatedPrompt"`
	TargetModel     string   `json:"targetModel" yaml:"targetModel"`
	Tags            []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Starred         bool     `json:"starred,omitempty" yaml:"starred,omitempty"`
}

// CreateRequest is the creation form. It is sent as a SaveRequest with
// title as the original prompt, content as the generated prompt and category
// as the target model.
type CreateRequest struct {
	Title    string
	Content  string
	Category string
	Tags     []string
	Starred  bool
}

type SaveResult struct {
	Success  bool   `json:"success" yaml:"success"`
	PromptID string `json:"promptId" yaml:"promptId"`
	Message  string `json:"message" yaml:"message"`
}

type uploadResult struct {
	Success   bool   `json:"success" yaml:"success"`
	OutputURL string `json:"outputUrl" yaml:"outputUrl"`
}

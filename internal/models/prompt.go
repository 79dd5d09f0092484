package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultOutputType is recorded when an uploaded file declares no MIME type.
const DefaultOutputType = "application/octet-stream"

// Prompt pairs a user's original text with its model-rewritten version and an
// optional output attachment.
type Prompt struct {
	ID              string                      `gorm:"primarykey;type:varchar(36)" json:"id"`
	UserID          uint                        `gorm:"index;not null" json:"user_id"`
	OriginalPrompt  string                      `gorm:"type:text" json:"original_prompt"`
	GeneratedPrompt string                      `gorm:"type:text;not null" json:"generated_prompt"`
	TargetModel     string                      `gorm:"index;not null" json:"target_model"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	Starred         bool                        `gorm:"not null;default:false" json:"starred"`
	UsageCount      int                         `gorm:"not null;default:1" json:"usage_count"`
	OutputURL       *string                     `json:"output_url,omitempty"`
	OutputType      *string                     `json:"output_type,omitempty"`
	CreatedAt       time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// TableName overrides the table name
func (Prompt) TableName() string {
	return "prompts"
}

// BeforeCreate assigns the identifier when the caller did not.
func (p *Prompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasOutput reports whether an output file is attached.
func (p *Prompt) HasOutput() bool {
	return p.OutputURL != nil && p.OutputType != nil
}

// Target model names accepted by the generator. TargetModelAll doubles as the
// list filter sentinel meaning "no category restriction".
const (
	TargetModelAll     = "All"
	TargetModelGemini  = "Gemini"
	TargetModelChatGPT = "ChatGPT"
	TargetModelClaude  = "Claude"
)

// TargetModels lists the values offered by the generator view.
var TargetModels = []string{TargetModelAll, TargetModelGemini, TargetModelChatGPT, TargetModelClaude}

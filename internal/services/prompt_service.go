package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/database"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/models"
	"github.com/avast/retry-go/v4"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

var (
	ErrPromptNotFound         = errors.New("prompt not found")
	ErrMissingGeneratedPrompt = errors.New("generated prompt must not be empty")
)

// CreatePromptInput is what both the generator's save action and the
// creation form submit.
type CreatePromptInput struct {
	OriginalPrompt  string
	GeneratedPrompt string
	TargetModel     string
	Tags            []string
	Starred         bool
}

// PromptFilter narrows a vault listing. Category "All" or empty means no
// category restriction.
type PromptFilter struct {
	Search   string
	Category string
}

// CreatePrompt inserts one prompt owned by userID. The insert is not retried.
func CreatePrompt(ctx context.Context, userID uint, in CreatePromptInput) (*models.Prompt, error) {
	if strings.TrimSpace(in.GeneratedPrompt) == "" {
		return nil, ErrMissingGeneratedPrompt
	}

	tags := in.Tags
	if len(tags) == 0 {
		tags = []string{in.TargetModel}
	}

	prompt := &models.Prompt{
		UserID:          userID,
		OriginalPrompt:  in.OriginalPrompt,
		GeneratedPrompt: in.GeneratedPrompt,
		TargetModel:     in.TargetModel,
		Tags:            tags,
		Starred:         in.Starred,
		UsageCount:      1,
	}

	ctx, cancel := context.WithTimeout(ctx, currentDBTimeout())
	defer cancel()

	if err := database.DB.WithContext(ctx).Create(prompt).Error; err != nil {
		return nil, fmt.Errorf("failed to insert prompt: %w", err)
	}
	return prompt, nil
}

// ListPrompts returns the caller's prompts, newest first. The search text is
// matched as a substring of the original prompt, generated prompt or target
// model under Unicode case folding, which SQLite's LOWER does not provide.
func ListPrompts(ctx context.Context, userID uint, filter PromptFilter) ([]models.Prompt, error) {
	ctx, cancel := context.WithTimeout(ctx, currentDBTimeout())
	defer cancel()

	query := database.DB.WithContext(ctx).Model(&models.Prompt{}).Where("user_id = ?", userID)
	if filter.Category != "" && filter.Category != models.TargetModelAll {
		query = query.Where("target_model = ?", filter.Category)
	}

	var prompts []models.Prompt
	if err := query.Order("created_at DESC").Order("id DESC").Find(&prompts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch prompts: %w", err)
	}

	if filter.Search == "" {
		return prompts, nil
	}
	fold := cases.Fold()
	needle := fold.String(filter.Search)
	matched := prompts[:0]
	for _, p := range prompts {
		if strings.Contains(fold.String(p.OriginalPrompt), needle) ||
			strings.Contains(fold.String(p.GeneratedPrompt), needle) ||
			strings.Contains(fold.String(p.TargetModel), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GetPrompt loads one prompt owned by userID.
func GetPrompt(ctx context.Context, userID uint, id string) (*models.Prompt, error) {
	ctx, cancel := context.WithTimeout(ctx, currentDBTimeout())
	defer cancel()
	return findOwnedPrompt(database.DB.WithContext(ctx), userID, id)
}

func findOwnedPrompt(db *gorm.DB, userID uint, id string) (*models.Prompt, error) {
	var prompt models.Prompt
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&prompt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPromptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

// updateOwnedPrompt applies updates to one owned row and reloads it.
func updateOwnedPrompt(ctx context.Context, userID uint, id string, updates map[string]interface{}) (*models.Prompt, error) {
	var updated *models.Prompt
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Prompt{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPromptNotFound
		}

		p, err := findOwnedPrompt(tx, userID, id)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ToggleStar flips the starred flag.
func ToggleStar(ctx context.Context, userID uint, id string) (*models.Prompt, error) {
	ctx, cancel := context.WithTimeout(ctx, currentDBTimeout())
	defer cancel()
	return updateOwnedPrompt(ctx, userID, id, map[string]interface{}{
		"starred": gorm.Expr("NOT starred"),
	})
}

// RecordUsage increments usage_count in the database, so concurrent uses are
// all counted.
func RecordUsage(ctx context.Context, userID uint, id string) (*models.Prompt, error) {
	ctx, cancel := context.WithTimeout(ctx, currentDBTimeout())
	defer cancel()
	return updateOwnedPrompt(ctx, userID, id, map[string]interface{}{
		"usage_count": gorm.Expr("usage_count + 1"),
	})
}

// AttachOutput records the uploaded output on the prompt. Both columns are
// written in one statement. The update is retried once.
func AttachOutput(ctx context.Context, userID uint, id, outputURL, outputType string) (*models.Prompt, error) {
	if outputType == "" {
		outputType = models.DefaultOutputType
	}

	var updated *models.Prompt
	err := withRetry(ctx, "attach_output", currentDBTimeout(), func(ctx context.Context) error {
		p, err := updateOwnedPrompt(ctx, userID, id, map[string]interface{}{
			"output_url":  outputURL,
			"output_type": outputType,
		})
		if errors.Is(err, ErrPromptNotFound) {
			return retry.Unrecoverable(err)
		}
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

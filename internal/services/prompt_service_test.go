package services

import (
	"context"
	"testing"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/database"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePrompt(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	p, err := CreatePrompt(ctx, 7, CreatePromptInput{
		OriginalPrompt:  "write a haiku",
		GeneratedPrompt: "Compose a haiku about autumn",
		TargetModel:     "Claude",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	var stored models.Prompt
	require.NoError(t, database.DB.First(&stored, "id = ?", p.ID).Error)
	assert.Equal(t, uint(7), stored.UserID)
	assert.Equal(t, []string{"Claude"}, []string(stored.Tags))
	assert.Equal(t, 1, stored.UsageCount)
	assert.False(t, stored.Starred)
	assert.Nil(t, stored.OutputURL)
	assert.Nil(t, stored.OutputType)
}

func TestCreatePromptWithTagsAndStar(t *testing.T) {
	setupTestDB(t)

	p, err := CreatePrompt(context.Background(), 1, CreatePromptInput{
		OriginalPrompt:  "Title",
		GeneratedPrompt: "Content",
		TargetModel:     "Gemini",
		Tags:            []string{"work", "email"},
		Starred:         true,
	})
	require.NoError(t, err)

	got, err := GetPrompt(context.Background(), 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "email"}, []string(got.Tags))
	assert.True(t, got.Starred)
}

func TestCreatePromptRejectsEmptyGenerated(t *testing.T) {
	setupTestDB(t)

	_, err := CreatePrompt(context.Background(), 1, CreatePromptInput{GeneratedPrompt: "  ", TargetModel: "Gemini"})
	assert.ErrorIs(t, err, ErrMissingGeneratedPrompt)

	var count int64
	database.DB.Model(&models.Prompt{}).Count(&count)
	assert.Zero(t, count)
}

func TestListPrompts(t *testing.T) {
	setupTestDB(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	seedPrompt(t, models.Prompt{UserID: 1, OriginalPrompt: "Email draft", GeneratedPrompt: "Write a formal EMAIL", TargetModel: "ChatGPT", CreatedAt: base})
	seedPrompt(t, models.Prompt{UserID: 1, OriginalPrompt: "poem", GeneratedPrompt: "A sonnet", TargetModel: "Gemini", CreatedAt: base.Add(time.Hour)})
	seedPrompt(t, models.Prompt{UserID: 1, OriginalPrompt: "100% sure", GeneratedPrompt: "under_score", TargetModel: "Claude", CreatedAt: base.Add(2 * time.Hour)})
	seedPrompt(t, models.Prompt{UserID: 1, OriginalPrompt: "Ébauche de CV", GeneratedPrompt: "Rédige un CV", TargetModel: "ChatGPT", CreatedAt: base.Add(-time.Hour)})
	seedPrompt(t, models.Prompt{UserID: 2, OriginalPrompt: "email of someone else", TargetModel: "ChatGPT", CreatedAt: base.Add(3 * time.Hour)})

	tests := []struct {
		name   string
		filter PromptFilter
		want   []string
	}{
		{"all newest first", PromptFilter{}, []string{"100% sure", "poem", "Email draft", "Ébauche de CV"}},
		{"category sentinel", PromptFilter{Category: "All"}, []string{"100% sure", "poem", "Email draft", "Ébauche de CV"}},
		{"case insensitive search", PromptFilter{Search: "email"}, []string{"Email draft"}},
		{"search matches target model", PromptFilter{Search: "gemini"}, []string{"poem"}},
		{"search matches generated prompt", PromptFilter{Search: "SONNET"}, []string{"poem"}},
		{"category filter", PromptFilter{Category: "Claude"}, []string{"100% sure"}},
		{"search and category", PromptFilter{Search: "email", Category: "Gemini"}, nil},
		{"percent matches literally", PromptFilter{Search: "%"}, []string{"100% sure"}},
		{"underscore matches literally", PromptFilter{Search: "_"}, []string{"100% sure"}},
		{"non-ascii lower case", PromptFilter{Search: "ébauche"}, []string{"Ébauche de CV"}},
		{"non-ascii upper case", PromptFilter{Search: "ÉBAUCHE"}, []string{"Ébauche de CV"}},
		{"non-ascii in generated prompt", PromptFilter{Search: "RÉDIGE"}, []string{"Ébauche de CV"}},
		{"search is not trimmed", PromptFilter{Search: " sure "}, nil},
		{"leading space matches", PromptFilter{Search: " sure"}, []string{"100% sure"}},
		{"no match", PromptFilter{Search: "zzz"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompts, err := ListPrompts(context.Background(), 1, tt.filter)
			require.NoError(t, err)

			var titles []string
			for _, p := range prompts {
				assert.Equal(t, uint(1), p.UserID)
				titles = append(titles, p.OriginalPrompt)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestGetPromptIsOwnerScoped(t *testing.T) {
	setupTestDB(t)
	p := seedPrompt(t, models.Prompt{UserID: 1})

	_, err := GetPrompt(context.Background(), 2, p.ID)
	assert.ErrorIs(t, err, ErrPromptNotFound)

	_, err = GetPrompt(context.Background(), 1, "missing")
	assert.ErrorIs(t, err, ErrPromptNotFound)

	got, err := GetPrompt(context.Background(), 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestToggleStarAndRecordUsage(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	p := seedPrompt(t, models.Prompt{UserID: 1, UsageCount: 1})

	starred, err := ToggleStar(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.True(t, starred.Starred)

	unstarred, err := ToggleStar(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.False(t, unstarred.Starred)

	for i := 0; i < 3; i++ {
		_, err = RecordUsage(ctx, 1, p.ID)
		require.NoError(t, err)
	}
	used, err := GetPrompt(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, used.UsageCount)

	_, err = ToggleStar(ctx, 2, p.ID)
	assert.ErrorIs(t, err, ErrPromptNotFound)
	_, err = RecordUsage(ctx, 2, p.ID)
	assert.ErrorIs(t, err, ErrPromptNotFound)
}

func TestAttachOutput(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	p := seedPrompt(t, models.Prompt{UserID: 1})

	updated, err := AttachOutput(ctx, 1, p.ID, "http://x/a.png", "")
	require.NoError(t, err)
	require.True(t, updated.HasOutput())
	assert.Equal(t, "http://x/a.png", *updated.OutputURL)
	assert.Equal(t, models.DefaultOutputType, *updated.OutputType)

	_, err = AttachOutput(ctx, 2, p.ID, "http://x/b.png", "image/png")
	assert.ErrorIs(t, err, ErrPromptNotFound)
}

func TestToPromptView(t *testing.T) {
	url, typ := "http://x/out.txt", "text/plain"
	p := &models.Prompt{
		ID:              "abc",
		OriginalPrompt:  "orig",
		GeneratedPrompt: "gen",
		TargetModel:     "Gemini",
		UsageCount:      3,
		Starred:         true,
		CreatedAt:       time.Date(2024, 1, 5, 23, 0, 0, 0, time.UTC),
		OutputURL:       &url,
		OutputType:      &typ,
	}

	view := ToPromptView(p)
	assert.Equal(t, "orig", view.Title)
	assert.Equal(t, "gen", view.Content)
	assert.Equal(t, "Gemini", view.Category)
	assert.Equal(t, []string{"Gemini"}, view.Tags)
	assert.Equal(t, "1/5/2024", view.CreatedAt)
	assert.Equal(t, url, view.OutputURL)
	assert.Equal(t, typ, view.OutputType)

	assert.Empty(t, ToPromptViews(nil))
}

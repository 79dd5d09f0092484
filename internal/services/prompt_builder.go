package services

import (
	"fmt"
	"strings"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/models"
)

// FallbackGeneratedPrompt is returned when the provider answers without text.
const FallbackGeneratedPrompt = "Failed to generate prompt"

const allModelsInstruction = `You are an expert prompt engineer. A user wants to refine this prompt: "%s".
Your task is to generate three improved versions, one for each major AI model.
Return ONLY the refined prompts, without any conversational text, explanations, or markdown formatting.
Structure your response as a clean block of text, with each prompt clearly labeled. For example:
For Gemini: [Your refined prompt for Gemini here]
For ChatGPT: [Your refined prompt for ChatGPT here]
For Claude: [Your refined prompt for Claude here]`

const singleModelInstruction = `You are an expert prompt engineer. A user wants to refine this prompt: "%s".
Your task is to generate one single, highly effective version of this prompt specifically for the %s language model.
Return ONLY the refined prompt text. Do not include any extra words, explanations, or markdown formatting like asterisks or hashtags.`

// BuildInstruction wraps the user's prompt in the meta-prompt sent to the
// text generation provider.
func BuildInstruction(prompt, targetModel string) string {
	if targetModel == models.TargetModelAll {
		return fmt.Sprintf(allModelsInstruction, prompt)
	}
	return fmt.Sprintf(singleModelInstruction, prompt, targetModel)
}

var markdownStripper = strings.NewReplacer("`", "", "*", "", "#", "")

// CleanGeneratedPrompt removes backticks, asterisks and hashes, then trims
// surrounding whitespace.
func CleanGeneratedPrompt(raw string) string {
	return strings.TrimSpace(markdownStripper.Replace(raw))
}

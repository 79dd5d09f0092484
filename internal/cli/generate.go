package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/models"
	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/client"
	"github.com/spf13/cobra"
)

type generateResult struct {
	GeneratedPrompt string `json:"generatedPrompt" yaml:"generatedPrompt"`
	PromptID        string `json:"promptId,omitempty" yaml:"promptId,omitempty"`
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		model string
		save  bool
		tags  []string
	)

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Rewrite a prompt for a target model",
		Long: `Rewrite a rough prompt idea into an optimized prompt.

With --model All the generator returns one labeled variant each for Gemini,
ChatGPT and Claude. --save stores the result in your vault.

Examples:
  promptvault generate "write a cover letter"
  promptvault generate --model Claude --save "summarize a paper"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				notify(cmd, "Please enter a prompt", "Enter the prompt you'd like to optimize.")
				return fmt.Errorf("prompt is required")
			}
			if !slices.Contains(models.TargetModels, model) {
				return fmt.Errorf("unknown model %q, expected one of %s", model, strings.Join(models.TargetModels, ", "))
			}

			// --save without a session fails before any request is made.
			var token string
			if save {
				var err error
				if token, err = a.requireToken(cmd, "save prompts"); err != nil {
					return err
				}
			}

			c := a.client()
			generated, err := c.Generate(cmd.Context(), prompt, model)
			if err != nil {
				notify(cmd, "Generation failed", describe(err))
				return err
			}
			res := generateResult{GeneratedPrompt: generated}

			if save {
				saved, err := c.SavePrompt(cmd.Context(), token, client.SaveRequest{
					OriginalPrompt:  prompt,
					GeneratedPrompt: generated,
					TargetModel:     model,
					Tags:            tags,
				})
				if err != nil {
					notify(cmd, "Failed to save prompt", describe(err))
					return err
				}
				res.PromptID = saved.PromptID
				notify(cmd, "Saved to vault", saved.Message+".")
			}

			if a.structured() {
				return outputTo(cmd.OutOrStdout(), a.outputFormat, res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.GeneratedPrompt)
			if res.PromptID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nid: %s\n", res.PromptID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", models.TargetModelAll, "target model: "+strings.Join(models.TargetModels, ", "))
	cmd.Flags().BoolVar(&save, "save", false, "save the result to the vault")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag for the saved prompt (repeatable)")
	return cmd
}

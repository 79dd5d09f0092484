package cli

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/models"
	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/client"
	"github.com/spf13/cobra"
)

func newVaultCmd(a *app) *cobra.Command {
	var filter client.ListFilter

	cmd := &cobra.Command{
		Use:   "vault",
		Short: "List the prompts in your vault",
		Long: `List your saved prompts, newest first.

--search matches the original prompt, the generated prompt and the target
model, ignoring case. --category restricts to one target model; "All" lists
every category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken(cmd, "view your vault")
			if err != nil {
				return err
			}
			if filter.Category == models.TargetModelAll {
				filter.Category = ""
			}

			list, err := a.client().ListPrompts(cmd.Context(), token, filter)
			if err != nil {
				notify(cmd, "Failed to load prompts", describe(err))
				return err
			}

			if a.structured() {
				return outputTo(cmd.OutOrStdout(), a.outputFormat, list)
			}
			out := cmd.OutOrStdout()
			if list.Total == 0 {
				fmt.Fprintln(out, "No prompts found")
				return nil
			}
			for i := range list.Prompts {
				printPrompt(out, &list.Prompts[i])
			}
			fmt.Fprintf(out, "\n%d prompt(s)\n", list.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "search text")
	cmd.Flags().StringVarP(&filter.Category, "category", "c", models.TargetModelAll, "category (target model)")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken(cmd, "view prompt details")
			if err != nil {
				return err
			}
			p, err := a.client().GetPrompt(cmd.Context(), token, args[0])
			if err != nil {
				notifyLoadFailure(cmd, err)
				return err
			}
			return a.renderPrompt(cmd, p)
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	var req client.CreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a prompt to your vault by hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken(cmd, "create prompts")
			if err != nil {
				return err
			}
			saved, err := a.client().CreatePrompt(cmd.Context(), token, req)
			if err != nil {
				notify(cmd, "Failed to create prompt", describe(err))
				return err
			}
			notify(cmd, "Prompt created", saved.Message+".")
			if a.structured() {
				return outputTo(cmd.OutOrStdout(), a.outputFormat, saved)
			}
			fmt.Fprintln(cmd.OutOrStdout(), saved.PromptID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "title")
	cmd.Flags().StringVar(&req.Content, "content", "", "prompt text")
	cmd.Flags().StringVar(&req.Category, "category", "", "category (target model)")
	cmd.Flags().StringSliceVar(&req.Tags, "tag", nil, "tag (repeatable)")
	cmd.Flags().BoolVar(&req.Starred, "starred", false, "star the prompt")
	_ = cmd.MarkFlagRequired("content")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newStarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "star <id>",
		Short: "Star or unstar a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken(cmd, "star prompts")
			if err != nil {
				return err
			}
			p, err := a.client().ToggleStar(cmd.Context(), token, args[0])
			if err != nil {
				notifyLoadFailure(cmd, err)
				return err
			}
			if p.Starred {
				notify(cmd, "Starred", "")
			} else {
				notify(cmd, "Unstarred", "")
			}
			return a.renderPrompt(cmd, p)
		},
	}
}

func newUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Print a prompt's text and count one use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken(cmd, "use prompts")
			if err != nil {
				return err
			}
			p, err := a.client().RecordUsage(cmd.Context(), token, args[0])
			if err != nil {
				notifyLoadFailure(cmd, err)
				return err
			}
			if a.structured() {
				return outputTo(cmd.OutOrStdout(), a.outputFormat, p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Content)
			return nil
		},
	}
}

func newUploadCmd(a *app) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "upload <id> <file>",
		Short: "Attach an output file to a prompt",
		Long: `Upload a file produced with a prompt and link it to that prompt.

The content type is taken from --type, or guessed from the file extension.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			promptID, path := args[0], args[1]

			f, err := os.Open(path)
			if err != nil {
				notify(cmd, "No file selected", "Please select a file to upload.")
				return err
			}
			defer f.Close()

			token, err := a.requireToken(cmd, "upload files")
			if err != nil {
				return err
			}

			if contentType == "" {
				contentType = mime.TypeByExtension(filepath.Ext(path))
			}

			c := a.client()
			if _, err := c.UploadOutput(cmd.Context(), token, promptID, filepath.Base(path), contentType, f); err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) && apiErr.IsNotFound() {
					notify(cmd, "Prompt not found", "The requested prompt could not be found.")
				} else {
					notify(cmd, "Upload failed", "There was an error uploading your file. Please try again.")
				}
				return err
			}
			notify(cmd, "Upload successful!", "Your output file has been uploaded and linked to this prompt.")

			p, err := c.GetPrompt(cmd.Context(), token, promptID)
			if err != nil {
				notifyLoadFailure(cmd, err)
				return err
			}
			return a.renderPrompt(cmd, p)
		},
	}

	cmd.Flags().StringVar(&contentType, "type", "", "content type of the file")
	return cmd
}

func (a *app) renderPrompt(cmd *cobra.Command, p *client.Prompt) error {
	if a.structured() {
		return outputTo(cmd.OutOrStdout(), a.outputFormat, p)
	}
	printPromptDetail(cmd.OutOrStdout(), p)
	return nil
}

func notifyLoadFailure(cmd *cobra.Command, err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.IsNotFound():
		notify(cmd, "Prompt not found", "The requested prompt could not be found.")
	case errors.Is(err, client.ErrSessionExpired):
		notify(cmd, "Authentication required", describe(err))
	default:
		notify(cmd, "Failed to load prompt", "There was an error loading the prompt details. Please try again.")
	}
}

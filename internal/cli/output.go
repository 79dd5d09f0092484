package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/client"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputYAML = "yaml"
	outputJSON = "json"
)

func setOutputFormat(a *app, format string) error {
	switch format {
	case outputText, outputYAML, outputJSON:
		a.outputFormat = format
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func (a *app) structured() bool {
	return a.outputFormat == outputYAML || a.outputFormat == outputJSON
}

// outputTo writes data as YAML or JSON.
func outputTo(w io.Writer, format string, data any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// notify prints a transient notice: a title and an optional description.
// Notices go to stderr so structured output on stdout stays parseable.
func notify(cmd *cobra.Command, title, description string) {
	w := cmd.ErrOrStderr()
	if description == "" {
		fmt.Fprintln(w, title)
		return
	}
	fmt.Fprintf(w, "%s %s\n", title, description)
}

func printPrompt(w io.Writer, p *client.Prompt) {
	star := " "
	if p.Starred {
		star = "*"
	}
	fmt.Fprintf(w, "%s [%s] %s\n", star, p.Category, p.ID)
	if p.Title != "" {
		fmt.Fprintf(w, "  Title:    %s\n", p.Title)
	}
	fmt.Fprintf(w, "  Tags:     %s\n", strings.Join(p.Tags, ", "))
	fmt.Fprintf(w, "  Used:     %d\n", p.UsageCount)
	fmt.Fprintf(w, "  Created:  %s\n", p.CreatedAt)
	if p.OutputURL != "" {
		fmt.Fprintf(w, "  Output:   %s (%s)\n", p.OutputURL, p.OutputType)
	}
}

func printPromptDetail(w io.Writer, p *client.Prompt) {
	printPrompt(w, p)
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Content)
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/txmux/tx/internal/editor"
	"github.com/txmux/tx/internal/layout"
)

var (
	flagSuggestProvider string
	flagSuggestModel    string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <description>",
	Short: "Generate a workspace layout from a description",
	Long: `Ask an LLM to propose a workspace layout from a natural language
description, e.g.:

  tx suggest "editor on the left, server and logs stacked on the right"

The proposal opens in the interactive editor for review — nothing is
compiled or saved until you save it there.`,
	Args: cobra.MinimumNArgs(1),
	RunE: instrumented("suggest", func(cmd *cobra.Command, args []string) error {
		if flagSuggestProvider != "" {
			cfg.Provider = flagSuggestProvider
		}
		if flagSuggestModel != "" {
			cfg.Model = flagSuggestModel
		}

		sg, err := getSuggester()
		if err != nil {
			return err
		}

		description := strings.Join(args, " ")
		fmt.Fprintf(os.Stderr, "Asking %s (%s)...\n", sg.Provider(), sg.Model())

		l, err := sg.Suggest(cmd.Context(), description)
		if err != nil {
			return fmt.Errorf("suggest: %w", err)
		}
		if l.BaseDir == "" {
			if cwd, err := os.Getwd(); err == nil {
				l.BaseDir = cwd
			}
		}

		ed := editor.Editor{Mode: layout.Collecting, Layout: l}
		res, err := ed.Run()
		if err != nil {
			return fmt.Errorf("editor: %w", err)
		}
		if !res.Saved {
			return nil
		}
		return saveWorkspace(cmd, res.Layout, true)
	}),
}

func init() {
	suggestCmd.Flags().StringVar(&flagSuggestProvider, "provider", "", "LLM provider: anthropic, openai (default: config)")
	suggestCmd.Flags().StringVar(&flagSuggestModel, "model", "", "LLM model name (default: config)")
	rootCmd.AddCommand(suggestCmd)
}

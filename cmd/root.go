package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/txmux/tx/internal/config"
	"github.com/txmux/tx/internal/mux"
	telem "github.com/txmux/tx/internal/otel"
	"github.com/txmux/tx/internal/store"
	"github.com/txmux/tx/internal/suggest"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

var (
	// Global flags.
	flagScriptsDir string
	flagLayoutsDir string
	flagEditor     string

	// Resolved configuration, available to every command after PersistentPreRunE.
	cfg *config.Config

	// Telemetry, no-op unless an OTLP endpoint is configured.
	tel *telem.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "tx",
	Short: "Named tmux workspace layouts",
	Long: `tx manages named multi-pane tmux workspace layouts.

A workspace is a base directory plus an ordered list of panes, each with an
optional working directory, startup command, and resize rule. Saving a
workspace compiles it to a replayable tmux setup script and a JSON
descriptor; loading it runs the script, which attaches to the session
(creating it first if needed).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if flagScriptsDir != "" {
			cfg.ScriptsDir = flagScriptsDir
		}
		if flagLayoutsDir != "" {
			cfg.LayoutsDir = flagLayoutsDir
		}
		if flagEditor != "" {
			cfg.Editor = flagEditor
		}

		telem.Version = Version
		tel, err = telem.Init(cmd.Context(), telem.OTELConfig{
			Endpoint: cfg.OTELEndpoint,
			Headers:  cfg.OTELHeaders,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
			tel = nil
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if tel != nil {
		tel.Shutdown(context.Background())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tx: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagScriptsDir, "scripts-dir", "", "directory for generated workspace scripts (default: config or ~/.local/share/tx/scripts)")
	rootCmd.PersistentFlags().StringVar(&flagLayoutsDir, "layouts-dir", "", "directory for workspace JSON descriptors (default: config or ~/.local/share/tx/layouts)")
	rootCmd.PersistentFlags().StringVar(&flagEditor, "editor", "", "external text editor (default: $TX_EDITOR, $EDITOR, vi)")
}

// instrumented wraps a command body so every invocation lands in the
// telemetry counter, partitioned by command name and outcome.
func instrumented(name string, fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if tel != nil {
			tel.Metrics.RecordInvocation(cmd.Context(), name, err)
		}
		return err
	}
}

// newStore builds the store from the resolved directories. Directory
// creation failures are reported but not fatal — individual operations
// fail on their own if a directory is truly unusable.
func newStore() *store.Store {
	s, err := store.New(cfg.ScriptsDir, cfg.LayoutsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return s
}

// getMultiplexer returns the tmux collaborator.
func getMultiplexer() (mux.Multiplexer, error) {
	return mux.NewTmux()
}

// openInEditor runs the external text editor on a path, inheriting the
// terminal, and blocks until it exits.
func openInEditor(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, cfg.Editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", cfg.Editor, err)
	}
	return nil
}

// getSuggester returns the configured LLM suggester.
func getSuggester() (suggest.Suggester, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key found. Set TX_API_KEY, ANTHROPIC_API_KEY, or OPENAI_API_KEY")
	}
	switch cfg.Provider {
	case "anthropic":
		return suggest.NewAnthropicSuggester(suggest.AnthropicConfig{
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		}), nil
	case "openai":
		model := cfg.Model
		if model == "claude-sonnet-4-5" {
			// Provider switched without a model override; use the
			// OpenAI default instead of the Anthropic one.
			model = "gpt-4o-mini"
		}
		return suggest.NewOpenAISuggester(suggest.OpenAIConfig{
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			Model:     model,
			MaxTokens: cfg.MaxTokens,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (supported: anthropic, openai)", cfg.Provider)
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [name]",
	Short: "Open workspace scripts in the external editor",
	Long: `Open the scripts directory, or one named workspace script, in the
external text editor ($TX_EDITOR, $EDITOR, or vi).

Hand-edits to a script survive until the workspace is next saved from the
interactive editor, which regenerates it from the descriptor.`,
	Args: cobra.MaximumNArgs(1),
	RunE: instrumented("config", func(cmd *cobra.Command, args []string) error {
		st := newStore()

		if len(args) == 0 {
			return openInEditor(cmd.Context(), cfg.ScriptsDir)
		}

		name := args[0]
		if !st.Exists(name) {
			return fmt.Errorf("workspace %q not found", name)
		}
		return openInEditor(cmd.Context(), st.ScriptPath(name))
	}),
}

func init() {
	rootCmd.AddCommand(configCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Start or attach to a workspace",
	Long: `Run the stored setup script for a workspace.

If a tmux session with the workspace name is already running, the script
just attaches to it. Otherwise it creates the session, replays the pane
splits, resizes, and startup commands, and attaches.`,
	Args: cobra.ExactArgs(1),
	RunE: instrumented("load", func(cmd *cobra.Command, args []string) error {
		return loadWorkspace(cmd, args[0])
	}),
}

func loadWorkspace(cmd *cobra.Command, name string) error {
	st := newStore()
	if !st.Exists(name) {
		return fmt.Errorf("workspace %q not found", name)
	}

	m, err := getMultiplexer()
	if err != nil {
		return err
	}

	if tel != nil {
		tel.Metrics.Loads.Add(cmd.Context(), 1)
	}
	return m.RunScript(cmd.Context(), st.ScriptPath(name))
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

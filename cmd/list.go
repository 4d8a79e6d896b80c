package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/txmux/tx/internal/editor"
)

var flagNoInteractive bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored workspaces",
	Long: `List all stored workspaces.

By default this opens an interactive picker: enter loads the selected
workspace, e edits it, d deletes it. Workspaces whose tmux session is
currently running are marked. With --no-interactive, names are printed
one per line (running sessions suffixed with *), suitable for scripting.`,
	Args: cobra.NoArgs,
	RunE: instrumented("list", func(cmd *cobra.Command, args []string) error {
		st := newStore()
		names, err := st.List()
		if err != nil {
			return err
		}

		// Running markers are best-effort: without a usable tmux we
		// still list what is stored.
		running := map[string]bool{}
		if m, err := getMultiplexer(); err == nil {
			if sessions, err := m.ListSessions(); err == nil {
				for _, s := range sessions {
					running[s] = true
				}
			}
		}

		if flagNoInteractive {
			for _, name := range names {
				if running[name] {
					fmt.Printf("%s *\n", name)
				} else {
					fmt.Println(name)
				}
			}
			return nil
		}

		res, err := editor.RunPicker(names, running)
		if err != nil {
			return fmt.Errorf("picker: %w", err)
		}

		switch res.Action {
		case editor.PickLoad:
			return loadWorkspace(cmd, res.Name)
		case editor.PickEdit:
			return editWorkspace(cmd, res.Name)
		case editor.PickDelete:
			return deleteWorkspace(res.Name)
		}
		return nil
	}),
}

func init() {
	listCmd.Flags().BoolVar(&flagNoInteractive, "no-interactive", false, "print names instead of opening the picker")
	rootCmd.AddCommand(listCmd)
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/txmux/tx/internal/editor"
	"github.com/txmux/tx/internal/layout"
	"github.com/txmux/tx/internal/store"
)

var flagEditScript bool

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a stored workspace",
	Long: `Open a stored workspace in the interactive editor.

Saving recompiles the setup script and rewrites the descriptor. With
--script the generated shell script is opened directly in the external
text editor instead; note that the next descriptor save regenerates it.`,
	Args: cobra.ExactArgs(1),
	RunE: instrumented("edit", func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if flagEditScript {
			st := newStore()
			if !st.Exists(name) {
				return fmt.Errorf("workspace %q not found", name)
			}
			return openInEditor(cmd.Context(), st.ScriptPath(name))
		}

		return editWorkspace(cmd, name)
	}),
}

func editWorkspace(cmd *cobra.Command, name string) error {
	st := newStore()
	l, err := st.Load(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("workspace %q not found", name)
		}
		return err
	}

	ed := editor.Editor{Mode: layout.Editing, Layout: l}
	res, err := ed.Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if !res.Saved {
		return nil
	}

	// Renaming through the editor behaves like rename: the new name must
	// be free, and the old files go away after the new ones are written.
	renamed := res.Layout.Name != name
	if renamed && st.Exists(res.Layout.Name) {
		return fmt.Errorf("workspace %q already exists", res.Layout.Name)
	}
	if err := saveWorkspace(cmd, res.Layout, false); err != nil {
		return err
	}
	if renamed {
		if err := st.Delete(name); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: removing old workspace %q: %v\n", name, err)
		}
	}
	return nil
}

func init() {
	editCmd.Flags().BoolVar(&flagEditScript, "script", false, "open the generated shell script in the external editor")
	rootCmd.AddCommand(editCmd)
}

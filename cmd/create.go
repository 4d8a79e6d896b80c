package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/txmux/tx/internal/compiler"
	"github.com/txmux/tx/internal/editor"
	"github.com/txmux/tx/internal/layout"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Interactively define a new workspace",
	Long: `Open the interactive editor to define a new workspace layout.

The base directory defaults to the current working directory. Saving
compiles the layout to a tmux setup script and writes it together with the
JSON descriptor; cancelling writes nothing.`,
	Args: cobra.NoArgs,
	RunE: instrumented("create", func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}

		ed := editor.Editor{Mode: layout.Collecting, Layout: layout.New("", cwd)}
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

// saveWorkspace compiles and persists a layout. When rejectExisting is set,
// a name collision aborts before anything is written.
func saveWorkspace(cmd *cobra.Command, l layout.Layout, rejectExisting bool) error {
	st := newStore()
	if rejectExisting && st.Exists(l.Name) {
		return fmt.Errorf("workspace %q already exists", l.Name)
	}

	script := compiler.Compile(l).Render()
	if tel != nil {
		tel.Metrics.Compiles.Add(cmd.Context(), 1)
	}
	if err := st.Save(l, script); err != nil {
		return err
	}
	if tel != nil {
		tel.Metrics.Saves.Add(cmd.Context(), 1)
	}

	fmt.Printf("Saved workspace %q\n", l.Name)
	fmt.Printf("  script:     %s\n", st.ScriptPath(l.Name))
	fmt.Printf("  descriptor: %s\n", st.LayoutPath(l.Name))
	return nil
}

func init() {
	rootCmd.AddCommand(createCmd)
}

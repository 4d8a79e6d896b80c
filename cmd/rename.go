package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/txmux/tx/internal/compiler"
	"github.com/txmux/tx/internal/store"
)

var renameCmd = &cobra.Command{
	Use:   "rename [old] [new]",
	Short: "Rename a workspace",
	Long: `Rename a stored workspace.

Missing arguments are prompted for. Both the script and the descriptor move
together; the script is regenerated so the tmux session name matches the
new workspace name.`,
	Args: cobra.MaximumNArgs(2),
	RunE: instrumented("rename", func(cmd *cobra.Command, args []string) error {
		var oldName, newName string
		if len(args) > 0 {
			oldName = args[0]
		}
		if len(args) > 1 {
			newName = args[1]
		}

		reader := bufio.NewReader(os.Stdin)
		var err error
		if oldName == "" {
			if oldName, err = prompt(reader, "Workspace to rename: "); err != nil {
				return err
			}
		}
		if newName == "" {
			if newName, err = prompt(reader, "New name: "); err != nil {
				return err
			}
		}
		if oldName == "" || newName == "" {
			return fmt.Errorf("both the old and the new name are required")
		}

		st := newStore()
		if err := st.Rename(oldName, newName); err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				return fmt.Errorf("workspace %q not found", oldName)
			case errors.Is(err, store.ErrExists):
				return fmt.Errorf("workspace %q already exists", newName)
			}
			return err
		}

		// Regenerate the script so the session name inside it matches.
		// Descriptor-less workspaces keep their moved script as-is.
		if l, err := st.Load(newName); err == nil {
			if err := st.Save(l, compiler.Compile(l).Render()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: regenerating script for %q: %v\n", newName, err)
			}
		}

		fmt.Printf("Renamed %q to %q\n", oldName, newName)
		return nil
	}),
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

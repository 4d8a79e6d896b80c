package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/txmux/tx/internal/store"
)

var flagDeleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored workspace",
	Long: `Delete a workspace's script and descriptor.

A running tmux session with the same name is left alone — only the stored
files are removed. Asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: instrumented("delete", func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if !flagDeleteYes {
			answer, err := prompt(bufio.NewReader(os.Stdin), fmt.Sprintf("Delete workspace %q? [y/N] ", name))
			if err != nil {
				return err
			}
			if answer != "y" && answer != "Y" {
				return nil
			}
		}

		return deleteWorkspace(name)
	}),
}

func deleteWorkspace(name string) error {
	st := newStore()
	if err := st.Delete(name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("workspace %q not found", name)
		}
		return err
	}
	fmt.Printf("Deleted workspace %q\n", name)
	return nil
}

func init() {
	deleteCmd.Flags().BoolVar(&flagDeleteYes, "yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

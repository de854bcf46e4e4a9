/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// sortCmd represents the sort command
var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort the items file into dependency order and save",
	Long: `Sort the items file into dependency order and save it.

Items end up grouped by dependency depth, prerequisites first, with
ties broken alphabetically by id. Hand-edited ordering is replaced, so
run this after manual edits to normalize the file.`,
	RunE: runSort,
}

func init() {
	rootCmd.AddCommand(sortCmd)
}

func runSort(cmd *cobra.Command, args []string) error {
	repo, ws, err := openRepository()
	if err != nil {
		return err
	}
	unlock, err := lockWorkspace(ws)
	if err != nil {
		return err
	}
	defer unlock()

	g, err := repo.Load()
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	if err := repo.Save(g); err != nil {
		return fmt.Errorf("sort items: %w", err)
	}

	cmd.Println("Successfully sorted and saved items.")
	warnIfUnhealthy(cmd, g)
	return nil
}

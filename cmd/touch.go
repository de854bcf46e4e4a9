/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// touchCmd represents the touch command
var touchCmd = &cobra.Command{
	Use:   "touch",
	Short: "Rewrite the items and logs files in canonical form",
	Long: `Rewrite the items and logs files in canonical form.

Both files are loaded and saved back, which normalizes formatting,
restores the banner headers and resolves ordering. Useful after hand
edits.`,
	RunE: runTouch,
}

func init() {
	rootCmd.AddCommand(touchCmd)
}

func runTouch(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("save items: %w", err)
	}

	logStore, _, err := openLogStore()
	if err != nil {
		return err
	}
	logs, err := logStore.Load()
	if err != nil {
		return fmt.Errorf("load logs: %w", err)
	}
	if err := logStore.Save(logs); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}

	cmd.Println("Touched items and logs files")
	return nil
}

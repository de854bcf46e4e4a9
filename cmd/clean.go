/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/store"
)

var (
	cleanYes  bool
	cleanKeep int
)

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Prune old backup files",
	Long: `Prune old backup files, keeping only the most recent few of each file.

Survivors are renumbered contiguously: the oldest kept backup becomes
.1.backup and the newest .<keep>.backup. Without --keep the configured
backup retention applies.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().IntVarP(&cleanKeep, "keep", "k", store.DefaultRetention, "Number of recent backups to keep")
}

func runClean(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	keep := cleanKeep
	if !cmd.Flags().Changed("keep") {
		keep = GetConfig().Backup.Retention
	}

	mgr := store.NewBackupManager(afero.NewOsFs(), keep)
	paths := []string{ws.ItemsPath(), ws.OccludedItemsPath(), ws.LogsPath(), ws.OccludedLogsPath()}

	total, toDelete := 0, 0
	for _, path := range paths {
		n := len(mgr.List(path))
		total += n
		if n > keep {
			toDelete += n - keep
		}
	}
	if total == 0 {
		cmd.Println("No backup files found.")
		return nil
	}

	cmd.Printf("Found %d backup file%s across all directories.\n", total, pluralSuffix(total))
	cmd.Printf("Will keep %d most recent backups of each file.\n", keep)
	if toDelete == 0 {
		cmd.Println("No files to delete.")
		return nil
	}
	cmd.Printf("Will delete %d old backup file%s.\n", toDelete, pluralSuffix(toDelete))

	if !cleanYes && !confirm("Do you want to proceed") {
		cmd.Println("Aborted. No changes made.")
		return nil
	}

	unlock, err := lockWorkspace(ws)
	if err != nil {
		return err
	}
	defer unlock()

	for _, path := range paths {
		if _, err := mgr.Renumber(path, keep); err != nil {
			return fmt.Errorf("clean backups for %s: %w", path, err)
		}
	}
	cmd.Println("Backup cleanup completed successfully!")
	return nil
}

/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// restoreCmd represents the restore command group
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Move occluded items or logs back into the active files",
	Long: `Move occluded items or logs back into the active files.

The inverse of 'gantry occlude': selection works the same way, but
candidates are drawn from the occluded partition.

Examples:
  gantry restore items write_report
  gantry restore logs -t important --dry-run`,
}

var restoreItemsCmd = &cobra.Command{
	Use:   "items [ids...]",
	Short: "Restore occluded items by id or tag",
	RunE:  runRestoreItems,
}

var restoreLogsCmd = &cobra.Command{
	Use:   "logs [sessions...]",
	Short: "Restore occluded log entries by session or tag",
	RunE:  runRestoreLogs,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.AddCommand(restoreItemsCmd)
	restoreCmd.AddCommand(restoreLogsCmd)

	for _, c := range []*cobra.Command{restoreItemsCmd, restoreLogsCmd} {
		c.Flags().StringArrayP("tag", "t", nil, "Select by tag (repeatable)")
		c.Flags().Bool("dry-run", false, "Show what would be restored without making changes")
	}
}

func runRestoreItems(cmd *cobra.Command, args []string) error {
	tags, _ := cmd.Flags().GetStringArray("tag")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

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

	affected, missing := g.FlipOcclusion(args, tags, false, dryRun)
	for _, id := range missing {
		cmd.PrintErrf("Warning: Item '%s' not found in occluded items\n", id)
	}
	if len(affected) == 0 {
		cmd.Println("No occluded items found to restore")
		return nil
	}

	if dryRun {
		if isJSON() {
			return printJSON(cmd, occludedResponse{Status: "dry-run", Affected: itemIDs(affected), Missing: missing, DryRun: true})
		}
		cmd.Println("The following items would be restored:")
		for _, item := range affected {
			cmd.Printf("  • %s: %s\n", item.ID, item.Title)
		}
		return nil
	}

	if err := repo.Save(g); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	if isJSON() {
		return printJSON(cmd, occludedResponse{Status: "restored", Affected: itemIDs(affected), Missing: missing})
	}
	cmd.Printf("Restored %d item%s\n", len(affected), pluralSuffix(len(affected)))
	return nil
}

func runRestoreLogs(cmd *cobra.Command, args []string) error {
	tags, _ := cmd.Flags().GetStringArray("tag")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	logStore, ws, err := openLogStore()
	if err != nil {
		return err
	}
	unlock, err := lockWorkspace(ws)
	if err != nil {
		return err
	}
	defer unlock()

	logs, err := logStore.Load()
	if err != nil {
		return fmt.Errorf("load logs: %w", err)
	}

	affected := logs.FlipOcclusion(args, tags, false, dryRun)
	if len(affected) == 0 {
		cmd.Println("No occluded logs found to restore")
		return nil
	}

	if dryRun {
		cmd.Println("The following logs would be restored:")
		for _, entry := range affected {
			cmd.Printf("  • %s (%s) %s\n", entry.Message, strings.Join(entry.Tags, ", "),
				entry.Timestamp.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	if err := logStore.Save(logs); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}
	if isJSON() {
		return printJSON(cmd, struct {
			Status   string             `json:"status"`
			Affected []logEntryResponse `json:"affected"`
		}{"restored", newLogEntryResponses(affected)})
	}
	cmd.Printf("Restored %d log%s\n", len(affected), pluralSuffix(len(affected)))
	return nil
}

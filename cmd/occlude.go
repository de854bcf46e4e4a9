/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// occludeCmd represents the occlude command group
var occludeCmd = &cobra.Command{
	Use:   "occlude",
	Short: "Move items or logs out of the active files",
	Long: `Move items or logs out of the active files.

Occluded entries live in the occlude/ directory of the workspace. They
stay loaded and queryable but no longer clutter the active files.
Occlusion is reversible with 'gantry restore'.

Examples:
  gantry occlude items write_report draft_intro
  gantry occlude items -t done -t shipped
  gantry occlude logs sprint-3 --dry-run`,
}

var occludeItemsCmd = &cobra.Command{
	Use:   "items [ids...]",
	Short: "Occlude items by id or tag",
	RunE:  runOccludeItems,
}

var occludeLogsCmd = &cobra.Command{
	Use:   "logs [sessions...]",
	Short: "Occlude log entries by session or tag",
	RunE:  runOccludeLogs,
}

func init() {
	rootCmd.AddCommand(occludeCmd)
	occludeCmd.AddCommand(occludeItemsCmd)
	occludeCmd.AddCommand(occludeLogsCmd)

	for _, c := range []*cobra.Command{occludeItemsCmd, occludeLogsCmd} {
		c.Flags().StringArrayP("tag", "t", nil, "Select by tag (repeatable)")
		c.Flags().Bool("dry-run", false, "Show what would be occluded without making changes")
	}
}

func runOccludeItems(cmd *cobra.Command, args []string) error {
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

	affected, missing := g.FlipOcclusion(args, tags, true, dryRun)
	for _, id := range missing {
		cmd.PrintErrf("Warning: Item '%s' not found in included items\n", id)
	}
	if len(affected) == 0 {
		cmd.Println("No included items found to occlude")
		return nil
	}

	if dryRun {
		if isJSON() {
			return printJSON(cmd, occludedResponse{Status: "dry-run", Affected: itemIDs(affected), Missing: missing, DryRun: true})
		}
		cmd.Println("The following items would be occluded:")
		for _, item := range affected {
			cmd.Printf("  • %s: %s\n", item.ID, item.Title)
		}
		return nil
	}

	if err := repo.Save(g); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	if isJSON() {
		return printJSON(cmd, occludedResponse{Status: "occluded", Affected: itemIDs(affected), Missing: missing})
	}
	cmd.Printf("Occluded %d item%s\n", len(affected), pluralSuffix(len(affected)))
	return nil
}

func runOccludeLogs(cmd *cobra.Command, args []string) error {
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

	affected := logs.FlipOcclusion(args, tags, true, dryRun)
	if len(affected) == 0 {
		cmd.Println("No include logs found to occlude")
		return nil
	}

	if dryRun {
		if isJSON() {
			return printJSON(cmd, struct {
				Status   string             `json:"status"`
				Affected []logEntryResponse `json:"affected"`
				DryRun   bool               `json:"dryRun"`
			}{"dry-run", newLogEntryResponses(affected), true})
		}
		cmd.Println("The following logs would be occluded:")
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
		}{"occluded", newLogEntryResponses(affected)})
	}
	cmd.Printf("Occluded %d log%s\n", len(affected), pluralSuffix(len(affected)))
	return nil
}

/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/internal/ui"
	"github.com/josephgoksu/gantry/models"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List items in dependency order",
	Long: `List items in dependency order, prerequisites first.

Occluded items are hidden unless --occluded is given. Filters combine,
so --status InProgress --tag work lists only in-progress work items.

Examples:
  gantry list
  gantry list --status NotStarted
  gantry list --tag work --chart career
  gantry list --occluded`,
	RunE: runList,
}

var (
	listStatus   string
	listTag      string
	listChart    string
	listOccluded bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", "only items with this status")
	listCmd.Flags().StringVar(&listTag, "tag", "", "only items carrying this tag")
	listCmd.Flags().StringVar(&listChart, "chart", "", "only items on this chart")
	listCmd.Flags().BoolVar(&listOccluded, "occluded", false, "list occluded items instead of active ones")
}

func runList(cmd *cobra.Command, args []string) error {
	repo, _, err := openRepository()
	if err != nil {
		return err
	}
	g, err := repo.Load()
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	sorted, err := g.TopologicalSort()
	if err != nil {
		return err
	}

	var statusFilter models.Status
	if listStatus != "" {
		statusFilter, err = models.ParseStatus(listStatus)
		if err != nil {
			return err
		}
	}

	var items []models.Item
	for _, item := range sorted {
		if item.Occlude != listOccluded {
			continue
		}
		if listStatus != "" && item.Status != statusFilter {
			continue
		}
		if listTag != "" && !item.HasTag(listTag) {
			continue
		}
		if listChart != "" && !item.HasChart(listChart) {
			continue
		}
		items = append(items, item)
	}

	if isJSON() {
		return printJSON(cmd, newItemResponses(items))
	}

	if len(items) == 0 {
		cmd.Println("No items found.")
		cmd.Println("Add one with: gantry add <id> \"Title\"")
		return nil
	}

	cmd.Print(ui.ItemTable(items))
	return nil
}

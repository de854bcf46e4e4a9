/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/models"
)

// insertCmd represents the insert command
var insertCmd = &cobra.Command{
	Use:   "insert <new-id> <before-id> <after-id>",
	Short: "Insert a new item between two existing items",
	Long: `Insert a new item between two existing items.

The new item goes before before-id and after after-id: before-id comes
to require the new item, and the new item requires after-id. A direct
dependency of before-id on after-id is rewired through the new item,
and the whole change is rolled back if it would create a cycle.

Examples:
  gantry insert review_draft submit_draft write_draft
  gantry insert test_cli ship_cli build_cli --duration 4h`,
	Args: cobra.ExactArgs(3),
	RunE: runInsert,
}

var (
	insertTitle    string
	insertDuration string
	insertPriority string
	insertCharts   string
	insertTags     string
)

func init() {
	rootCmd.AddCommand(insertCmd)

	insertCmd.Flags().StringVar(&insertTitle, "title", "", "title (defaults to the new id)")
	insertCmd.Flags().StringVar(&insertDuration, "duration", "", "estimated duration, e.g. 90m, 2h, 1d2h")
	insertCmd.Flags().StringVar(&insertPriority, "priority", "", "priority (Lowest, Low, Neutral, Unsure, Medium, High, Critical)")
	insertCmd.Flags().StringVar(&insertCharts, "charts", "", "comma-separated chart names")
	insertCmd.Flags().StringVar(&insertTags, "tags", "", "comma-separated tags")
}

func runInsert(cmd *cobra.Command, args []string) error {
	newID, beforeID, afterID := args[0], args[1], args[2]

	title := insertTitle
	if title == "" {
		title = newID
	}
	item, err := models.NewItem(newID, title)
	if err != nil {
		return err
	}
	if insertDuration != "" {
		duration, err := models.ParseDuration(insertDuration)
		if err != nil {
			return err
		}
		item.Duration = duration
	}
	if insertPriority != "" {
		priority, err := models.ParsePriority(insertPriority)
		if err != nil {
			return err
		}
		item.Priority = priority
	}
	item.Charts = splitList(insertCharts)
	item.Tags = splitList(insertTags)

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
	if err := g.VetNewItem(item.ID, item.Title); err != nil {
		return err
	}
	if err := g.InsertBetween(item, beforeID, afterID); err != nil {
		return err
	}
	if err := repo.Save(g); err != nil {
		return fmt.Errorf("save items: %w", err)
	}

	if isJSON() {
		inserted, _ := g.Get(item.ID)
		return printJSON(cmd, newItemResponse(inserted))
	}
	cmd.Printf("Inserted '%s' between '%s' and '%s'\n", newID, beforeID, afterID)
	warnIfUnhealthy(cmd, g)
	return nil
}

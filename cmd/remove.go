/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/models"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove an item and clean up relations to it",
	Long: `Remove an item by its exact id.

Other items' references to it are scrubbed unless --keep-relations is
given. Without --yes the item and the relations about to be touched are
shown and a confirmation prompt is displayed.

Examples:
  gantry remove old_idea
  gantry remove old_idea --yes
  gantry remove old_idea --keep-relations`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

var (
	removeYes           bool
	removeKeepRelations bool
)

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "remove without confirmation")
	removeCmd.Flags().BoolVar(&removeKeepRelations, "keep-relations", false, "keep other items' relations to the removed id")
}

func runRemove(cmd *cobra.Command, args []string) error {
	itemID := args[0]

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
	item, ok := g.Get(itemID)
	if !ok {
		return fmt.Errorf("item '%s' not found", itemID)
	}

	inbound := g.InboundReferences(itemID)

	if !removeYes {
		cmd.Println("\nItem to be removed:")
		cmd.Printf("  ID: %s\n", item.ID)
		cmd.Printf("  Title: %s\n", item.Title)
		cmd.Printf("  Status: %s\n", item.Status)
		cmd.Printf("  Priority: %s\n", item.Priority)
		cmd.Printf("  Duration: %s\n", item.Duration)
		cmd.Printf("  Charts: %s\n", joinOr(item.Charts, "None"))
		cmd.Printf("  Tags: %s\n", joinOr(item.Tags, "None"))

		if len(inbound) > 0 {
			counts := make(map[models.RelationType]int)
			for _, rels := range inbound {
				for _, rt := range rels {
					counts[rt]++
				}
			}
			suffix := ":"
			if removeKeepRelations {
				suffix = " (but not removed):"
			}
			cmd.Println("\nRelations that will be affected" + suffix)
			for _, rt := range models.AllRelationTypes {
				if counts[rt] > 0 {
					cmd.Printf("  %s: %d references removed\n", rt, counts[rt])
				}
			}
		} else {
			cmd.Println("\nNo relations will be affected.")
		}

		if !confirm(fmt.Sprintf("Remove '%s'", itemID)) {
			cmd.Println("Aborted. No changes made.")
			return nil
		}
	}

	g.Remove(itemID)
	if !removeKeepRelations {
		g.ScrubReferences(itemID)
	}
	if err := repo.Save(g); err != nil {
		return fmt.Errorf("save items: %w", err)
	}

	if isJSON() {
		return printJSON(cmd, struct {
			Status string `json:"status"`
			ID     string `json:"id"`
		}{"removed", itemID})
	}
	cmd.Printf("\nSuccessfully removed '%s' and cleaned up relations.\n", itemID)
	warnIfUnhealthy(cmd, g)
	return nil
}

// joinOr renders a list for display, with a fallback for empty lists.
func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	out := values[0]
	for _, v := range values[1:] {
		out += ", " + v
	}
	return out
}

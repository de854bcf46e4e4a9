/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/models"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <id> <title>",
	Short: "Add a new item to the graph",
	Long: `Add a new item to the graph.

IDs are lowercase letters, digits and underscores. The new id must not
already exist, and neither the id nor the title may appear inside
another item's title, since lookups match by substring.

Examples:
  gantry add learn_go "Learn the Go basics"
  gantry add build_cli "Build the CLI" --requires learn_go --priority high
  gantry add deploy "Deploy it" --duration 2d --tags work,infra`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

var (
	addStatus   string
	addPriority string
	addDuration string
	addCharts   string
	addTags     string
	addRequires string
	addAnyOf    string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addStatus, "status", "", "initial status (NotStarted, InProgress, Blocked, Completed)")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "priority (Lowest, Low, Neutral, Unsure, Medium, High, Critical)")
	addCmd.Flags().StringVar(&addDuration, "duration", "", "estimated duration, e.g. 90m, 2h, 1d2h")
	addCmd.Flags().StringVar(&addCharts, "charts", "", "comma-separated chart names")
	addCmd.Flags().StringVar(&addTags, "tags", "", "comma-separated tags")
	addCmd.Flags().StringVar(&addRequires, "requires", "", "comma-separated ids this item requires")
	addCmd.Flags().StringVar(&addAnyOf, "any-of", "", "comma-separated ids of which any one unblocks this item")
}

func runAdd(cmd *cobra.Command, args []string) error {
	id, title := args[0], args[1]

	item, err := models.NewItem(id, title)
	if err != nil {
		return err
	}
	if addStatus != "" {
		status, err := models.ParseStatus(addStatus)
		if err != nil {
			return err
		}
		item.Status = status
	}
	if addPriority != "" {
		priority, err := models.ParsePriority(addPriority)
		if err != nil {
			return err
		}
		item.Priority = priority
	}
	if addDuration != "" {
		duration, err := models.ParseDuration(addDuration)
		if err != nil {
			return err
		}
		item.Duration = duration
	}
	item.Charts = splitList(addCharts)
	item.Tags = splitList(addTags)
	if targets := splitList(addRequires); len(targets) > 0 {
		item = item.WithRelation(models.RelRequires, targets)
	}
	if targets := splitList(addAnyOf); len(targets) > 0 {
		item = item.WithRelation(models.RelAnyOf, targets)
	}

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
	g.Add(item)
	if err := g.VerifyAcyclic(); err != nil {
		return err
	}
	if err := repo.Save(g); err != nil {
		return fmt.Errorf("save items: %w", err)
	}

	if isJSON() {
		return printJSON(cmd, newItemResponse(item))
	}
	cmd.Printf("Added item '%s'\n", item.ID)
	warnIfUnhealthy(cmd, g)
	return nil
}

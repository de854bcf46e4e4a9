/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/models"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <query> <new-status>",
	Short: "Set the status of an item",
	Long: `Set the status of an item.

The query matches an exact id first, then the first item whose id or
title contains it. Statuses: NotStarted, InProgress, Blocked, Completed
(symbols ◯ ◑ ⊘ ✓ work too).

Examples:
  gantry status learn_go InProgress
  gantry status "quarterly report" Completed`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	status, err := models.ParseStatus(args[1])
	if err != nil {
		return err
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
	item, err := g.FindBySubstring(args[0])
	if err != nil {
		return err
	}

	g.Add(item.WithStatus(status))
	if err := repo.Save(g); err != nil {
		return fmt.Errorf("save items: %w", err)
	}

	if isJSON() {
		updated, _ := g.Get(item.ID)
		return printJSON(cmd, newItemResponse(updated))
	}
	cmd.Printf("Set status of item '%s' to %s\n", item.ID, status)
	warnIfUnhealthy(cmd, g)
	return nil
}

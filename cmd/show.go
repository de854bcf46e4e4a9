/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/graph"
	"github.com/josephgoksu/gantry/internal/ui"
	"github.com/josephgoksu/gantry/models"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <substring>",
	Short: "Show details of an item matching the substring",
	Long: `Show every field of the item matching the substring.

An exact id match wins; otherwise the first item whose id or title
contains the substring is shown. With --chart the substring searches
chart names instead, and with --log it searches log sessions and
messages.

Examples:
  gantry show learn_go
  gantry show "quarterly report"
  gantry show career --chart
  gantry show morning --log`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var (
	showInCharts bool
	showInLogs   bool
)

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showInCharts, "chart", false, "search in chart names")
	showCmd.Flags().BoolVar(&showInLogs, "log", false, "search in logs and log sessions")
}

func runShow(cmd *cobra.Command, args []string) error {
	substring := args[0]

	repo, _, err := openRepository()
	if err != nil {
		return err
	}
	g, err := repo.Load()
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	if !showInCharts && !showInLogs {
		item, err := g.FindBySubstring(substring)
		if err != nil {
			return err
		}
		if isJSON() {
			return printJSON(cmd, newItemResponse(item))
		}
		cmd.Print(ui.ItemDetail(item))
		return nil
	}

	if showInCharts {
		if err := showCharts(cmd, g, substring); err != nil {
			return err
		}
	}
	if showInLogs {
		if err := showLogs(cmd, substring); err != nil {
			return err
		}
	}
	return nil
}

// showCharts groups items under every chart whose name contains the
// substring.
func showCharts(cmd *cobra.Command, g *graph.Graph, substring string) error {
	query := strings.ToLower(substring)
	chartItems := make(map[string][]models.Item)
	for _, item := range g.Items() {
		for _, chart := range item.Charts {
			if strings.Contains(strings.ToLower(chart), query) {
				chartItems[chart] = append(chartItems[chart], item)
			}
		}
	}

	if isJSON() {
		resp := make(map[string][]itemResponse, len(chartItems))
		for chart, items := range chartItems {
			resp[chart] = newItemResponses(items)
		}
		return printJSON(cmd, resp)
	}

	if len(chartItems) == 0 {
		cmd.Printf("No items found in chart '%s'\n", substring)
		return nil
	}
	charts := make([]string, 0, len(chartItems))
	for chart := range chartItems {
		charts = append(charts, chart)
	}
	sort.Strings(charts)
	for _, chart := range charts {
		cmd.Printf("Chart '%s':\n", chart)
		for _, item := range chartItems[chart] {
			cmd.Printf("  - %s %s\n", item.ID, item.Title)
		}
	}
	return nil
}

// showLogs searches sessions first, then message text.
func showLogs(cmd *cobra.Command, substring string) error {
	logStore, _, err := openLogStore()
	if err != nil {
		return err
	}
	logs, err := logStore.Load()
	if err != nil {
		return fmt.Errorf("load logs: %w", err)
	}

	bySession := logs.BySession(substring)
	byText := logs.BySubstring(substring)

	if isJSON() {
		return printJSON(cmd, struct {
			Session []logEntryResponse `json:"session"`
			Matches []logEntryResponse `json:"matches"`
		}{newLogEntryResponses(bySession), newLogEntryResponses(byText)})
	}

	if len(bySession) > 0 {
		cmd.Printf("Logs for session '%s':\n", substring)
		for _, entry := range bySession {
			cmd.Printf("  - %s\n", ui.LogLine(entry))
		}
	} else {
		cmd.Printf("No logs found for session '%s'\n", substring)
	}
	if len(byText) > 0 {
		cmd.Printf("Logs matching '%s':\n", substring)
		for _, entry := range byText {
			cmd.Printf("  - %s\n", ui.LogLine(entry))
		}
	}
	return nil
}

/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/internal/ui"
	"github.com/josephgoksu/gantry/models"
)

var (
	logsSession string
	logsTags    []string
	logsAllTags bool
	logsSince   string
	logsUntil   string
	logsGrep    string
)

// logsCmd represents the logs command
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Query the activity log",
	Long: `Query the activity log.

Filters combine: an entry must match every filter given. Dates accept
YYYY-MM-DD or full RFC 3339 timestamps; --since and --until are
inclusive.

Examples:
  gantry logs --session sprint-3
  gantry logs -t planning -t ideas --all-tags
  gantry logs --since 2026-02-01 --grep parser`,
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().StringVarP(&logsSession, "session", "s", "", "Filter by session tag")
	logsCmd.Flags().StringArrayVarP(&logsTags, "tag", "t", nil, "Filter by tag (repeatable)")
	logsCmd.Flags().BoolVar(&logsAllTags, "all-tags", false, "Require every --tag instead of any")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Only entries at or after this date")
	logsCmd.Flags().StringVar(&logsUntil, "until", "", "Only entries at or before this date")
	logsCmd.Flags().StringVarP(&logsGrep, "grep", "g", "", "Only entries whose message contains this text")
}

func runLogs(cmd *cobra.Command, args []string) error {
	since, err := parseWhen(logsSince)
	if err != nil {
		return fmt.Errorf("invalid --since: %w", err)
	}
	until, err := parseWhen(logsUntil)
	if err != nil {
		return fmt.Errorf("invalid --until: %w", err)
	}

	logStore, _, err := openLogStore()
	if err != nil {
		return err
	}
	logs, err := logStore.Load()
	if err != nil {
		return fmt.Errorf("load logs: %w", err)
	}

	var matched []models.LogEntry
	for _, entry := range logs.Included() {
		if logsSession != "" && entry.Session != logsSession {
			continue
		}
		if len(logsTags) > 0 {
			if logsAllTags && !entry.HasAllTags(logsTags) {
				continue
			}
			if !logsAllTags && !entry.HasAnyTag(logsTags) {
				continue
			}
		}
		if !since.IsZero() && entry.Timestamp.Before(since) {
			continue
		}
		if !until.IsZero() && entry.Timestamp.After(until) {
			continue
		}
		if logsGrep != "" && !strings.Contains(strings.ToLower(entry.Message), strings.ToLower(logsGrep)) {
			continue
		}
		matched = append(matched, entry)
	}

	if isJSON() {
		return printJSON(cmd, newLogEntryResponses(matched))
	}
	if len(matched) == 0 {
		cmd.Println("No log entries found.")
		return nil
	}
	cmd.Print(ui.LogLines(matched))
	return nil
}

// parseWhen accepts a plain date or a full RFC 3339 timestamp.
func parseWhen(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a date (YYYY-MM-DD) or RFC 3339 timestamp", s)
	}
	return t.UTC(), nil
}

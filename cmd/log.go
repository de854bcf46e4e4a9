/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/models"
)

var (
	logSession string
	logTags    []string
	logMeta    []string
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log <message>",
	Short: "Append an entry to the activity log",
	Long: `Append a timestamped entry to the activity log.

Entries are grouped by session tag; related entries share a session so
they can be queried and occluded together. Without --session a fresh
session id is generated.

Examples:
  gantry log --session sprint-3 "Wired up the importer"
  gantry log -t planning -t ideas "Initial brainstorming session"
  gantry log --meta host=laptop "Rebuilt the index"`,
	Args: cobra.ExactArgs(1),
	RunE: runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVarP(&logSession, "session", "s", "", "Session tag for the entry (default: generated)")
	logCmd.Flags().StringArrayVarP(&logTags, "tag", "t", nil, "Additional tag (repeatable)")
	logCmd.Flags().StringArrayVar(&logMeta, "meta", nil, "Metadata key=value pair (repeatable)")
}

func runLog(cmd *cobra.Command, args []string) error {
	session := logSession
	if session == "" {
		session = uuid.NewString()
	}

	entry := models.NewLogEntry(session, args[0], logTags)
	if len(logMeta) > 0 {
		entry.Metadata = make(map[string]string, len(logMeta))
		for _, pair := range logMeta {
			key, value, ok := strings.Cut(pair, "=")
			if !ok || key == "" {
				return fmt.Errorf("invalid meta %q (want key=value)", pair)
			}
			entry.Metadata[key] = value
		}
	}

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
	logs.Add(entry)
	if err := logStore.Save(logs); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}

	if isJSON() {
		return printJSON(cmd, newLogEntryResponse(entry))
	}
	cmd.Printf("Log entry created with session tag '%s'\n", session)
	return nil
}

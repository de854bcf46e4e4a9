/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/flow"
)

var migrateOut string

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Export the workspace as an operation stream",
	Long: `Export the workspace as an operation stream.

Every item is expanded into the operations that recreate it: AddItem,
one SetField per scalar, one AddToSet per chart, tag, relation target
and time constraint. The records are appended to operations.jsonl so a
document engine can replay them when syncing devices.

The stream lands in --out, the configured flow.directory, or the
workspace root, in that order.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVarP(&migrateOut, "out", "o", "", "Directory to write operations.jsonl into")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
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
	ops, err := flow.MigrateGraph(g)
	if err != nil {
		return fmt.Errorf("expand items into operations: %w", err)
	}

	dir := migrateOut
	if dir == "" {
		dir = cfg.Flow.Directory
	}
	if dir == "" {
		dir = ws.Root
	}
	author := cfg.Flow.Author
	if author == "" {
		if host, err := os.Hostname(); err == nil {
			author = host
		} else {
			author = "gantry"
		}
	}

	client, err := flow.NewOsClient(dir, author)
	if err != nil {
		return fmt.Errorf("open operation stream: %w", err)
	}
	client.AppendAll(ops)
	if err := client.Flush(); err != nil {
		return fmt.Errorf("write operation stream: %w", err)
	}

	counts := make(map[flow.OpKind]int)
	for _, op := range ops {
		counts[op.Kind]++
	}

	if isJSON() {
		byKind := make(map[string]int, len(counts))
		for kind, n := range counts {
			byKind[string(kind)] = n
		}
		return printJSON(cmd, struct {
			Status string         `json:"status"`
			Path   string         `json:"path"`
			Total  int            `json:"total"`
			ByKind map[string]int `json:"byKind"`
		}{"migrated", client.Path(), len(ops), byKind})
	}

	cmd.Printf("Exported %d operation%s to %s\n", len(ops), pluralSuffix(len(ops)), client.Path())
	for _, kind := range []flow.OpKind{flow.OpAddItem, flow.OpSetField, flow.OpAddToSet, flow.OpRemoveFromSet, flow.OpRemoveItem} {
		if counts[kind] > 0 {
			cmd.Printf("  %s: %d\n", kind, counts[kind])
		}
	}
	return nil
}

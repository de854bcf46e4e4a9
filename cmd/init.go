/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/internal/config"
	"github.com/josephgoksu/gantry/store"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a gantry workspace in the current directory",
	Long: `Initialize a gantry workspace in the current directory.

This creates the .gantry directory with:
  • items.txt - your tasks, one per line, editable by hand
  • logs.txt - timestamped journal entries
  • occlude/ - finished or hidden items and logs, kept out of view
  • .gantry.yml - starter configuration

Run this before using other gantry commands. Use --workspace to
initialize somewhere other than ./.gantry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		root := cfg.Workspace.Directory
		if root == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get current directory: %w", err)
			}
			root = filepath.Join(cwd, store.DefaultDirName)
		}

		fs := afero.NewOsFs()
		ws := store.NewWorkspace(fs, root)
		ws.ItemsFile = cfg.Workspace.ItemsFile
		ws.LogsFile = cfg.Workspace.LogsFile

		if ws.Initialized() {
			cmd.Printf("✓ Workspace already initialized at %s\n", ws.Root)
			return nil
		}

		if _, err := ws.Init(); err != nil {
			return fmt.Errorf("initialize workspace: %w", err)
		}

		// Seed the starter config next to the data files.
		starter := *cfg
		if starter.Flow.Author == "" {
			if host, err := os.Hostname(); err == nil {
				starter.Flow.Author = host
			}
		}
		configPath := filepath.Join(ws.Root, configName+".yml")
		if _, err := config.WriteStarterConfig(fs, configPath, starter); err != nil {
			cmd.PrintErrf("Warning: Could not create starter config: %v\n", err)
		}

		// Keep generated files out of version control.
		gitignorePath := filepath.Join(ws.Root, ".gitignore")
		gitignoreContent := `# gantry generated files
*.backup
gantry.lock
`
		if exists, _ := afero.Exists(fs, gitignorePath); !exists {
			if err := afero.WriteFile(fs, gitignorePath, []byte(gitignoreContent), 0o644); err != nil {
				cmd.PrintErrf("Warning: Could not create .gitignore: %v\n", err)
			}
		}

		cmd.Println("✓ Workspace initialized")
		cmd.Println("")
		cmd.Println("Created:")
		cmd.Printf("  • %s\n", ws.ItemsPath())
		cmd.Printf("  • %s\n", ws.LogsPath())
		cmd.Printf("  • %s\n", filepath.Dir(ws.OccludedItemsPath()))
		cmd.Printf("  • %s\n", configPath)
		cmd.Println("")
		cmd.Println("Next steps:")
		cmd.Println("  gantry add learn_go \"Learn the Go basics\"")
		cmd.Println("  gantry add build_cli \"Build the CLI\" --requires learn_go")
		cmd.Println("  gantry list")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

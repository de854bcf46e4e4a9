/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/store"
)

var includesRecursive bool

// includesCmd represents the includes command
var includesCmd = &cobra.Command{
	Use:   "includes",
	Short: "Show the include structure of the items file",
	Long: `Show the include structure of the items file.

With --recursive the whole chain of #include directives is walked and
printed as a tree. Circular includes and missing files are annotated
instead of aborting the walk.`,
	RunE: runIncludes,
}

// addIncludeCmd represents the add-include command
var addIncludeCmd = &cobra.Command{
	Use:   "add-include <path>",
	Short: "Add an #include directive to the items file",
	Long: `Add an #include directive to the items file.

The directive is inserted after any directives already present, before
the first item line. Paths are stored as written and resolved relative
to the including file at load time.`,
	Args: cobra.ExactArgs(1),
	RunE: runAddInclude,
}

func init() {
	rootCmd.AddCommand(includesCmd)
	rootCmd.AddCommand(addIncludeCmd)
	includesCmd.Flags().BoolVarP(&includesRecursive, "recursive", "r", false, "Show recursive includes")
}

func runIncludes(cmd *cobra.Command, args []string) error {
	repo, ws, err := openRepository()
	if err != nil {
		return err
	}
	printIncludeTree(cmd, repo, ws.ItemsPath(), 0, make(map[string]bool))
	return nil
}

// printIncludeTree walks one include chain. The visited set is shared
// across the whole walk so a path reached twice is flagged as circular
// rather than expanded again.
func printIncludeTree(cmd *cobra.Command, repo *store.Repository, path string, depth int, visited map[string]bool) {
	indent := strings.Repeat("  ", depth)
	key := filepath.Clean(path)
	if visited[key] {
		cmd.Printf("%s└─ %s (circular include, skipping)\n", indent, path)
		return
	}
	visited[key] = true

	if exists, _ := afero.Exists(afero.NewOsFs(), path); !exists {
		cmd.Printf("%s└─ %s (file not found)\n", indent, path)
		return
	}
	cmd.Printf("%s└─ %s\n", indent, path)

	if !includesRecursive {
		return
	}
	children, err := repo.IncludesOf(path)
	if err != nil {
		return
	}
	for _, child := range children {
		printIncludeTree(cmd, repo, child, depth+1, visited)
	}
}

func runAddInclude(cmd *cobra.Command, args []string) error {
	repo, ws, err := openRepository()
	if err != nil {
		return err
	}
	unlock, err := lockWorkspace(ws)
	if err != nil {
		return err
	}
	defer unlock()

	added, err := repo.AddInclude(args[0])
	if err != nil {
		return err
	}
	if !added {
		cmd.Printf("Include directive for %s already present in %s\n", args[0], ws.ItemsPath())
		return nil
	}
	cmd.Printf("Added include directive for %s to %s\n", args[0], ws.ItemsPath())
	return nil
}

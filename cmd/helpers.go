package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/josephgoksu/gantry/graph"
	"github.com/josephgoksu/gantry/internal/logger"
	"github.com/josephgoksu/gantry/models"
	"github.com/josephgoksu/gantry/store"
)

func isJSON() bool {
	return viper.GetBool("output.json")
}

func isQuiet() bool {
	return viper.GetBool("output.quiet")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(cmd *cobra.Command, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(output))
	return nil
}

// openWorkspace locates the data directory and applies the configured file
// names to it.
func openWorkspace() (store.Workspace, error) {
	cfg := GetConfig()
	cwd, err := os.Getwd()
	if err != nil {
		return store.Workspace{}, fmt.Errorf("get current directory: %w", err)
	}
	// A missing home directory only removes one search candidate.
	home, _ := os.UserHomeDir()

	ws, err := store.Resolve(afero.NewOsFs(), cfg.Workspace.Directory, cwd, home)
	if err != nil {
		return store.Workspace{}, fmt.Errorf("no workspace found, run 'gantry init' first: %w", err)
	}
	ws.ItemsFile = cfg.Workspace.ItemsFile
	ws.LogsFile = cfg.Workspace.LogsFile
	logger.SetBasePath(ws.Root)
	return ws, nil
}

// openRepository returns the item repository for the resolved workspace.
func openRepository() (*store.Repository, store.Workspace, error) {
	ws, err := openWorkspace()
	if err != nil {
		return nil, store.Workspace{}, err
	}
	return ws.Repository(GetConfig().Backup.Retention), ws, nil
}

// openLogStore returns the log store for the resolved workspace.
func openLogStore() (*store.LogStore, store.Workspace, error) {
	ws, err := openWorkspace()
	if err != nil {
		return nil, store.Workspace{}, err
	}
	return ws.LogStore(GetConfig().Backup.Retention), ws, nil
}

// lockWorkspace takes the advisory lock that serializes mutating commands.
// The returned release function is idempotent.
func lockWorkspace(ws store.Workspace) (func(), error) {
	flk := flock.New(ws.LockPath())
	locked, err := flk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", ws.LockPath(), err)
	}
	if !locked {
		return nil, fmt.Errorf("workspace %s is locked by another gantry process", ws.Root)
	}
	return func() { _ = flk.Unlock() }, nil
}

// confirm prompts for a yes/no answer. Non-interactive runs decline, so
// scripted callers must pass --yes.
func confirm(label string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	// Handles both 'no' (promptui.ErrAbort) and actual errors
	if _, err := prompt.Run(); err != nil {
		return false
	}
	return true
}

// warnIfUnhealthy runs the fast structural checks after a save and points at
// doctor when something looks off.
func warnIfUnhealthy(cmd *cobra.Command, g *graph.Graph) {
	if isQuiet() || isJSON() {
		return
	}
	if n := graph.NewDoctor(g).QuickCheck(); n > 0 {
		cmd.PrintErrf("%d or more warnings. Run 'gantry doctor' for details.\n", n)
	}
}

// splitRelationArg parses a "type:target" flag value like "requires:install_go".
func splitRelationArg(arg string) (models.RelationType, string, error) {
	parts := strings.SplitN(arg, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid relation %q (want type:target)", arg)
	}
	rt, err := models.ParseRelationType(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("invalid relation %q: %w", arg, err)
	}
	return rt, parts[1], nil
}

// splitList splits a comma-separated flag value, dropping empty segments.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// pluralSuffix returns "s" for any count other than one.
func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func itemIDs(items []models.Item) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/josephgoksu/gantry/store"
)

// SetupTestWorkspace initializes a workspace under a temp directory and
// points the config at it via viper, which outranks flag and file values
// when InitConfig runs. Cleanup resets viper so tests stay independent.
func SetupTestWorkspace(t *testing.T) store.Workspace {
	t.Helper()

	root := filepath.Join(t.TempDir(), store.DefaultDirName)
	ws := store.NewWorkspace(afero.NewOsFs(), root)
	if _, err := ws.Init(); err != nil {
		t.Fatalf("init workspace: %v", err)
	}

	viper.Set("workspace.directory", root)
	viper.Set("output.quiet", false)
	viper.Set("output.json", false)
	t.Cleanup(viper.Reset)

	return ws
}

// ExecuteCommand runs the root command with args and returns the combined
// stdout and stderr output.
func ExecuteCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flag values survive between Execute calls on a shared command tree;
	// array flags would even accumulate. Reset so every call starts clean.
	resetFlags(rootCmd)

	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return b.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

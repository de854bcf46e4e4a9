package cmd

import (
	"testing"
)

func TestRestoreCommand_Structure(t *testing.T) {
	if restoreCmd == nil {
		t.Fatal("restoreCmd should not be nil")
	}

	subs := map[string]bool{}
	for _, sub := range restoreCmd.Commands() {
		subs[sub.Name()] = true
	}
	for _, name := range []string{"items", "logs"} {
		if !subs[name] {
			t.Errorf("expected restore subcommand %q to exist", name)
		}
	}
}

func TestRestoreCommand_Flags(t *testing.T) {
	for _, sub := range restoreCmd.Commands() {
		for _, flagName := range []string{"tag", "dry-run"} {
			if sub.Flags().Lookup(flagName) == nil {
				t.Errorf("expected flag %q on restore %s", flagName, sub.Name())
			}
		}
		if sub.Flags().ShorthandLookup("t") == nil {
			t.Errorf("expected short flag -t on restore %s", sub.Name())
		}
	}
}

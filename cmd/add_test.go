package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddCommand_Structure(t *testing.T) {
	if addCmd == nil {
		t.Fatal("addCmd should not be nil")
	}

	if addCmd.Use != "add <id> <title>" {
		t.Errorf("Use mismatch: got %q, want %q", addCmd.Use, "add <id> <title>")
	}
}

func TestAddCommand_Flags(t *testing.T) {
	expectedFlags := []string{
		"status",
		"priority",
		"duration",
		"charts",
		"tags",
		"requires",
		"any-of",
	}

	flags := addCmd.Flags()

	for _, flagName := range expectedFlags {
		if flags.Lookup(flagName) == nil {
			t.Errorf("expected flag %q to exist", flagName)
		}
	}
}

func TestAddCmd_CreatesItem(t *testing.T) {
	SetupTestWorkspace(t)

	out, err := ExecuteCommand(t, "add", "write_report", "Write the quarterly report")
	assert.NoError(t, err)
	assert.Contains(t, out, "Added item 'write_report'")

	out, err = ExecuteCommand(t, "list")
	assert.NoError(t, err)
	assert.Contains(t, out, "write_report")
	assert.Contains(t, out, "Write the quarterly report")
}

func TestAddCmd_RejectsDuplicateID(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_report", "Write the quarterly report")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "add", "write_report", "Another title entirely")
	assert.Error(t, err)
	assert.Contains(t, out, "duplicate item id")
}

func TestAddCmd_RejectsInvalidID(t *testing.T) {
	SetupTestWorkspace(t)

	out, err := ExecuteCommand(t, "add", "Not A Valid ID", "Some title")
	assert.Error(t, err)
	assert.Contains(t, out, "invalid item")
}

func TestAddCmd_RejectsUnknownStatus(t *testing.T) {
	SetupTestWorkspace(t)

	out, err := ExecuteCommand(t, "add", "write_report", "Write the report", "--status", "Paused")
	assert.Error(t, err)
	assert.Contains(t, out, "unknown status")
}

func TestAddCmd_WithRelationsAndTags(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "learn_go", "Learn the Go basics")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "add", "build_cli", "Build the CLI",
		"--requires", "learn_go", "--tags", "work,go", "--priority", "high")
	assert.NoError(t, err)
	assert.Contains(t, out, "Added item 'build_cli'")

	out, err = ExecuteCommand(t, "show", "build_cli")
	assert.NoError(t, err)
	assert.Contains(t, out, "learn_go")
	assert.Contains(t, out, "work")
}

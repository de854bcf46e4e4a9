package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListCmd_Empty(t *testing.T) {
	SetupTestWorkspace(t)

	// Capture output
	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	// Execute via Root to simulate real CLI usage
	rootCmd.SetArgs([]string{"list"})
	err := rootCmd.Execute()

	assert.NoError(t, err)
	output := b.String()

	assert.Contains(t, output, "No items found.")
	assert.Contains(t, output, "Add one with")
}

func TestListCmd_DependencyOrder(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "learn_go", "Learn the Go basics")
	assert.NoError(t, err)
	_, err = ExecuteCommand(t, "add", "build_cli", "Build the CLI", "--requires", "learn_go")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "list")
	assert.NoError(t, err)
	assert.Contains(t, out, "learn_go")
	assert.Contains(t, out, "build_cli")

	// Prerequisites come first.
	assert.Less(t, strings.Index(out, "learn_go"), strings.Index(out, "build_cli"))
}

func TestListCmd_StatusFilter(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_report", "Write the report")
	assert.NoError(t, err)
	_, err = ExecuteCommand(t, "add", "file_taxes", "File the taxes", "--status", "Completed")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "list", "--status", "Completed")
	assert.NoError(t, err)
	assert.Contains(t, out, "file_taxes")
	assert.NotContains(t, out, "write_report")
}

func TestListCmd_TagFilter(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_report", "Write the report", "--tags", "work")
	assert.NoError(t, err)
	_, err = ExecuteCommand(t, "add", "plan_trip", "Plan the trip", "--tags", "personal")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "list", "--tag", "personal")
	assert.NoError(t, err)
	assert.Contains(t, out, "plan_trip")
	assert.NotContains(t, out, "write_report")
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCmd_SetsByID(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_report", "Write the quarterly report")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "status", "write_report", "InProgress")
	assert.NoError(t, err)
	assert.Contains(t, out, "Set status of item 'write_report' to InProgress")
}

func TestStatusCmd_SetsBySubstring(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_report", "Write the quarterly report")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "status", "quarterly", "Completed")
	assert.NoError(t, err)
	assert.Contains(t, out, "Set status of item 'write_report' to Completed")

	out, err = ExecuteCommand(t, "list", "--status", "Completed")
	assert.NoError(t, err)
	assert.Contains(t, out, "write_report")
}

func TestStatusCmd_AcceptsSymbol(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_report", "Write the quarterly report")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "status", "write_report", "●")
	assert.NoError(t, err)
	assert.Contains(t, out, "Set status of item 'write_report' to Completed")
}

func TestStatusCmd_UnknownStatus(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_report", "Write the quarterly report")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "status", "write_report", "Paused")
	assert.Error(t, err)
	assert.Contains(t, out, "unknown status")
}

func TestStatusCmd_UnknownItem(t *testing.T) {
	SetupTestWorkspace(t)

	out, err := ExecuteCommand(t, "status", "ghost", "Completed")
	assert.Error(t, err)
	assert.Contains(t, out, "no item with id")
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShowCmd_ByID(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_report", "Write the quarterly report",
		"--priority", "high", "--tags", "work", "--charts", "career")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "show", "write_report")
	assert.NoError(t, err)
	assert.Contains(t, out, "Title: Write the quarterly report")
	assert.Contains(t, out, "ID: write_report")
	assert.Contains(t, out, "Priority: High")
	assert.Contains(t, out, "Tags: work")
	assert.Contains(t, out, "Charts: career")
}

func TestShowCmd_BySubstring(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_report", "Write the quarterly report")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "show", "quarterly")
	assert.NoError(t, err)
	assert.Contains(t, out, "ID: write_report")
}

func TestShowCmd_Charts(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_report", "Write the quarterly report", "--charts", "career")
	assert.NoError(t, err)
	_, err = ExecuteCommand(t, "add", "plan_trip", "Plan the trip", "--charts", "life")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "show", "career", "--chart")
	assert.NoError(t, err)
	assert.Contains(t, out, "Chart 'career':")
	assert.Contains(t, out, "write_report")
	assert.NotContains(t, out, "plan_trip")
}

func TestShowCmd_ChartsNoMatch(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_report", "Write the quarterly report")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "show", "career", "--chart")
	assert.NoError(t, err)
	assert.Contains(t, out, "No items found in chart 'career'")
}

func TestShowCmd_Logs(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "log", "Sketched the architecture", "--session", "sprint-1")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "show", "sprint-1", "--log")
	assert.NoError(t, err)
	assert.Contains(t, out, "Logs for session 'sprint-1':")
	assert.Contains(t, out, "Sketched the architecture")
}

func TestShowCmd_NotFound(t *testing.T) {
	SetupTestWorkspace(t)

	out, err := ExecuteCommand(t, "show", "ghost")
	assert.Error(t, err)
	assert.Contains(t, out, "no item with id")
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogCmd_WithSession(t *testing.T) {
	SetupTestWorkspace(t)

	out, err := ExecuteCommand(t, "log", "Sketched the architecture", "--session", "sprint-1")
	assert.NoError(t, err)
	assert.Contains(t, out, "Log entry created with session tag 'sprint-1'")

	out, err = ExecuteCommand(t, "logs", "--session", "sprint-1")
	assert.NoError(t, err)
	assert.Contains(t, out, "Sketched the architecture")
	assert.Contains(t, out, "sprint-1")
}

func TestLogCmd_GeneratesSession(t *testing.T) {
	SetupTestWorkspace(t)

	out, err := ExecuteCommand(t, "log", "Sketched the architecture")
	assert.NoError(t, err)
	assert.Contains(t, out, "Log entry created with session tag '")

	out, err = ExecuteCommand(t, "logs")
	assert.NoError(t, err)
	assert.Contains(t, out, "Sketched the architecture")
}

func TestLogCmd_InvalidMeta(t *testing.T) {
	SetupTestWorkspace(t)

	out, err := ExecuteCommand(t, "log", "Sketched the architecture", "--meta", "nokey")
	assert.Error(t, err)
	assert.Contains(t, out, "invalid meta")
}

func TestLogsCmd_TagFilters(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "log", "Sketched the architecture", "--session", "sprint-1", "-t", "design", "-t", "planning")
	assert.NoError(t, err)
	_, err = ExecuteCommand(t, "log", "Wired up the importer", "--session", "sprint-1", "-t", "code")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "logs", "-t", "design")
	assert.NoError(t, err)
	assert.Contains(t, out, "Sketched the architecture")
	assert.NotContains(t, out, "Wired up the importer")

	out, err = ExecuteCommand(t, "logs", "-t", "design", "-t", "code")
	assert.NoError(t, err)
	assert.Contains(t, out, "Sketched the architecture")
	assert.Contains(t, out, "Wired up the importer")

	out, err = ExecuteCommand(t, "logs", "-t", "design", "-t", "code", "--all-tags")
	assert.NoError(t, err)
	assert.Contains(t, out, "No log entries found.")
}

func TestLogsCmd_Grep(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "log", "Sketched the architecture", "--session", "sprint-1")
	assert.NoError(t, err)
	_, err = ExecuteCommand(t, "log", "Wired up the importer", "--session", "sprint-1")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "logs", "--grep", "IMPORTER")
	assert.NoError(t, err)
	assert.Contains(t, out, "Wired up the importer")
	assert.NotContains(t, out, "Sketched the architecture")
}

func TestLogsCmd_NoMatches(t *testing.T) {
	SetupTestWorkspace(t)

	out, err := ExecuteCommand(t, "logs", "--session", "nothing")
	assert.NoError(t, err)
	assert.Contains(t, out, "No log entries found.")
}

func TestLogsCmd_BadDate(t *testing.T) {
	SetupTestWorkspace(t)

	out, err := ExecuteCommand(t, "logs", "--since", "not-a-date")
	assert.Error(t, err)
	assert.Contains(t, out, "invalid --since")
}

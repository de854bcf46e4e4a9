package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertCmd_RewiresDependency(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_draft", "Write the draft")
	assert.NoError(t, err)
	_, err = ExecuteCommand(t, "add", "submit_draft", "Submit the draft", "--requires", "write_draft")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "insert", "review_draft", "submit_draft", "write_draft")
	assert.NoError(t, err)
	assert.Contains(t, out, "Inserted 'review_draft' between 'submit_draft' and 'write_draft'")

	// submit_draft now requires the new item instead of write_draft.
	out, err = ExecuteCommand(t, "show", "submit_draft")
	assert.NoError(t, err)
	assert.Contains(t, out, "review_draft")
	assert.NotContains(t, out, "REQUIRES: write_draft")

	// The new item sits between the two in the sorted listing.
	out, err = ExecuteCommand(t, "list")
	assert.NoError(t, err)
	assert.Contains(t, out, "review_draft")
}

func TestInsertCmd_MissingEndpoint(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_draft", "Write the draft")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "insert", "review_draft", "write_draft", "ghost")
	assert.Error(t, err)
	assert.Contains(t, out, "no item with id")
}

func TestInsertCmd_TitleDefaultsToID(t *testing.T) {
	SetupTestWorkspace(t)

	_, err := ExecuteCommand(t, "add", "write_draft", "Write the draft")
	assert.NoError(t, err)
	_, err = ExecuteCommand(t, "add", "submit_draft", "Submit the draft", "--requires", "write_draft")
	assert.NoError(t, err)

	_, err = ExecuteCommand(t, "insert", "review_draft", "submit_draft", "write_draft")
	assert.NoError(t, err)

	out, err := ExecuteCommand(t, "show", "review_draft")
	assert.NoError(t, err)
	assert.Contains(t, out, "Title: review_draft")
}

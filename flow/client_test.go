/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package flow

import (
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStampsSequenceAndIdentity(t *testing.T) {
	fs := afero.NewMemMapFs()
	c, err := NewClient(fs, "/ws/flow", "laptop")
	require.NoError(t, err)

	first := c.Apply(AddItem("task_1"))
	second := c.Apply(SetField("task_1", FieldTitle, StringValue("My Task")))

	assert.Equal(t, "laptop", first.Author)
	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, uint64(2), second.Seq)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, uint64(2), second.Horizon["laptop"],
		"a record's horizon includes the record itself")
	assert.Equal(t, uint64(1), first.Horizon["laptop"],
		"an earlier record must not see later sequence numbers")
}

func TestFlushAppendsJSONLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	c, err := NewClient(fs, "/ws/flow", "laptop")
	require.NoError(t, err)

	c.AppendAll([]Operation{
		AddItem("task_1"),
		AddToSet("task_1", SetTags, StringValue("urgent")),
	})
	assert.Equal(t, 2, c.Pending())
	require.NoError(t, c.Flush())
	assert.Equal(t, 0, c.Pending())

	content, err := afero.ReadFile(fs, "/ws/flow/operations.jsonl")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"AddItem"`)
	assert.Contains(t, lines[1], `"AddToSet"`)

	// A second flush with nothing pending leaves the file alone.
	require.NoError(t, c.Flush())
	after, err := afero.ReadFile(fs, "/ws/flow/operations.jsonl")
	require.NoError(t, err)
	assert.Equal(t, content, after)
}

func TestNewClientResumesSequence(t *testing.T) {
	fs := afero.NewMemMapFs()
	c, err := NewClient(fs, "/ws/flow", "laptop")
	require.NoError(t, err)
	c.Apply(AddItem("task_1"))
	c.Apply(SetField("task_1", FieldTitle, StringValue("T")))
	require.NoError(t, c.Flush())

	reopened, err := NewClient(fs, "/ws/flow", "laptop")
	require.NoError(t, err)
	rec := reopened.Apply(AddItem("task_2"))
	assert.Equal(t, uint64(3), rec.Seq, "sequence continues across restarts")
}

func TestRecordsSkipsTornLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	c, err := NewClient(fs, "/ws/flow", "laptop")
	require.NoError(t, err)
	c.Apply(AddItem("task_1"))
	require.NoError(t, c.Flush())

	// Simulate an interrupted append: a torn half record at the end.
	f, err := fs.OpenFile("/ws/flow/operations.jsonl", os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte(`{"id":"bro`))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records, err := c.Records()
	require.NoError(t, err)
	assert.Len(t, records, 1, "the torn line is skipped, the good one kept")
}

func TestInformedRemoveScopesToObservedAdds(t *testing.T) {
	fs := afero.NewMemMapFs()

	laptop, err := NewClient(fs, "/ws/flow", "laptop")
	require.NoError(t, err)
	seenAdd := laptop.Apply(AddToSet("task_1", SetTags, StringValue("urgent")))
	require.NoError(t, laptop.Flush())

	// The phone opens the shared stream after the laptop's add landed, so
	// its horizon covers that add.
	phone, err := NewClient(fs, "/ws/flow", "phone")
	require.NoError(t, err)
	remove := phone.Apply(RemoveFromSet("task_1", SetTags, StringValue("urgent"),
		[]uuid.UUID{seenAdd.ID}))

	// Meanwhile the laptop re-adds the tag without having synced.
	concurrentAdd := laptop.Apply(AddToSet("task_1", SetTags, StringValue("urgent")))

	assert.True(t, remove.HadSeen(seenAdd))
	assert.False(t, remove.HadSeen(concurrentAdd),
		"the un-synced add is outside the remover's horizon and must survive a merge")
	assert.Equal(t, []uuid.UUID{seenAdd.ID}, remove.Op.ObservedAddIDs,
		"the remove names exactly the adds it suppresses")
}

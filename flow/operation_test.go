/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package flow

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueWireForms(t *testing.T) {
	cases := []struct {
		value Value
		wire  string
	}{
		{StringValue("draft"), `{"String":"draft"}`},
		{IntValue(-3), `{"Int":-3}`},
		{BoolValue(true), `{"Bool":true}`},
		{NullValue(), `{"Null":null}`},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.value)
		require.NoError(t, err)
		assert.JSONEq(t, tc.wire, string(data))

		var back Value
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, tc.value, back)
	}
}

func TestValueRejectsUnknownTag(t *testing.T) {
	var v Value
	err := json.Unmarshal([]byte(`{"Float":1.5}`), &v)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	err = json.Unmarshal([]byte(`{"String":"a","Int":1}`), &v)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestOperationWireForms(t *testing.T) {
	observed := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	cases := []struct {
		op   Operation
		wire string
	}{
		{
			AddItem("learn_go"),
			`{"AddItem":{"item_id":"learn_go"}}`,
		},
		{
			RemoveItem("learn_go"),
			`{"RemoveItem":{"item_id":"learn_go"}}`,
		},
		{
			SetField("learn_go", "title", StringValue("Learn Go")),
			`{"SetField":{"item_id":"learn_go","field":"title","value":{"String":"Learn Go"}}}`,
		},
		{
			AddToSet("learn_go", "tags", StringValue("education")),
			`{"AddToSet":{"item_id":"learn_go","set_name":"tags","element":{"String":"education"}}}`,
		},
		{
			RemoveFromSet("learn_go", "tags", StringValue("education"), []uuid.UUID{observed}),
			`{"RemoveFromSet":{"item_id":"learn_go","set_name":"tags","element":{"String":"education"},"observed_add_ids":["6ba7b810-9dad-11d1-80b4-00c04fd430c8"]}}`,
		},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.op)
		require.NoError(t, err, "marshal %s", tc.op.Kind)
		assert.JSONEq(t, tc.wire, string(data))

		var back Operation
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, tc.op, back)
	}
}

func TestRemoveFromSetWithNoObservationsStaysEmpty(t *testing.T) {
	op := RemoveFromSet("x", "tags", StringValue("t"), nil)
	data, err := json.Marshal(op)
	require.NoError(t, err)
	// An empty observation list still appears on the wire; omitting it
	// would be indistinguishable from a remove that saw nothing.
	assert.Contains(t, string(data), `"observed_add_ids":[]`)
}

func TestOperationRejectsUnknownVariant(t *testing.T) {
	var op Operation
	err := json.Unmarshal([]byte(`{"RenameItem":{"item_id":"x"}}`), &op)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestRecordHadSeen(t *testing.T) {
	add := Record{ID: uuid.New(), Author: "laptop", Seq: 5, Op: AddToSet("x", "tags", StringValue("t"))}

	informed := Record{
		Author:  "phone",
		Seq:     2,
		Horizon: map[string]uint64{"phone": 2, "laptop": 5},
	}
	assert.True(t, informed.HadSeen(add))

	uninformed := Record{
		Author:  "phone",
		Seq:     3,
		Horizon: map[string]uint64{"phone": 3, "laptop": 4},
	}
	assert.False(t, uninformed.HadSeen(add),
		"an add past the remover's horizon must not count as seen")
}

func TestRecordLaterThan(t *testing.T) {
	earlier := Record{Author: "a", Timestamp: 100}
	later := Record{Author: "b", Timestamp: 200}
	assert.True(t, later.LaterThan(earlier))
	assert.False(t, earlier.LaterThan(later))

	tieA := Record{Author: "a", Timestamp: 100}
	tieB := Record{Author: "b", Timestamp: 100}
	assert.True(t, tieB.LaterThan(tieA), "author breaks timestamp ties")
	assert.False(t, tieA.LaterThan(tieB))
}

/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/

// Package flow turns graph edits into a small vocabulary of convergent
// operations suitable for replication across devices. Operations are
// causally annotated and appended to a per-workspace stream; merging the
// streams of several devices is the consuming document engine's job, not
// this package's.
package flow

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ErrInvalidOperation reports a value or operation that does not match the
// wire format.
var ErrInvalidOperation = errors.New("invalid operation")

// OpKind names one of the five primitive operation variants.
type OpKind string

const (
	OpAddItem       OpKind = "AddItem"
	OpRemoveItem    OpKind = "RemoveItem"
	OpSetField      OpKind = "SetField"
	OpAddToSet      OpKind = "AddToSet"
	OpRemoveFromSet OpKind = "RemoveFromSet"
)

// ValueKind tags the type a Value carries.
type ValueKind string

const (
	ValueNull   ValueKind = "Null"
	ValueBool   ValueKind = "Bool"
	ValueInt    ValueKind = "Int"
	ValueString ValueKind = "String"
)

// Value is the tagged scalar carried by SetField and the set operations.
// On the wire it is a single-key object naming the type, e.g.
// {"String":"draft"} or {"Null":null}.
type Value struct {
	Kind ValueKind
	Str  string
	Int  int64
	Bool bool
}

// NullValue returns the null value.
func NullValue() Value { return Value{Kind: ValueNull} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// IntValue wraps an integer.
func IntValue(n int64) Value { return Value{Kind: ValueInt, Int: n} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

func (v Value) String() string {
	switch v.Kind {
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueString:
		return v.Str
	default:
		return "null"
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNull:
		return []byte(`{"Null":null}`), nil
	case ValueBool:
		return json.Marshal(map[string]bool{string(ValueBool): v.Bool})
	case ValueInt:
		return json.Marshal(map[string]int64{string(ValueInt): v.Int})
	case ValueString:
		return json.Marshal(map[string]string{string(ValueString): v.Str})
	}
	return nil, fmt.Errorf("%w: unknown value kind %q", ErrInvalidOperation, v.Kind)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}
	if len(raw) != 1 {
		return fmt.Errorf("%w: value needs exactly one type tag", ErrInvalidOperation)
	}
	for tag, payload := range raw {
		switch ValueKind(tag) {
		case ValueNull:
			*v = NullValue()
		case ValueBool:
			var b bool
			if err := json.Unmarshal(payload, &b); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidOperation, err)
			}
			*v = BoolValue(b)
		case ValueInt:
			var n int64
			if err := json.Unmarshal(payload, &n); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidOperation, err)
			}
			*v = IntValue(n)
		case ValueString:
			var s string
			if err := json.Unmarshal(payload, &s); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidOperation, err)
			}
			*v = StringValue(s)
		default:
			return fmt.Errorf("%w: unknown value tag %q", ErrInvalidOperation, tag)
		}
	}
	return nil
}

// Operation is one primitive edit. Only the fields of its kind are
// meaningful; build operations through the constructors.
type Operation struct {
	Kind           OpKind
	ItemID         string
	Field          string
	Value          Value
	SetName        string
	Element        Value
	ObservedAddIDs []uuid.UUID
}

// AddItem creates an item.
func AddItem(itemID string) Operation {
	return Operation{Kind: OpAddItem, ItemID: itemID}
}

// RemoveItem removes an item.
func RemoveItem(itemID string) Operation {
	return Operation{Kind: OpRemoveItem, ItemID: itemID}
}

// SetField sets a scalar field, latest write winning on merge.
func SetField(itemID, field string, value Value) Operation {
	return Operation{Kind: OpSetField, ItemID: itemID, Field: field, Value: value}
}

// AddToSet adds an element to a collection field.
func AddToSet(itemID, setName string, element Value) Operation {
	return Operation{Kind: OpAddToSet, ItemID: itemID, SetName: setName, Element: element}
}

// RemoveFromSet removes an element, suppressing only the add operations
// the remover had observed. A concurrent add the remover never saw is not
// suppressed, so it survives the merge.
func RemoveFromSet(itemID, setName string, element Value, observedAddIDs []uuid.UUID) Operation {
	if observedAddIDs == nil {
		observedAddIDs = []uuid.UUID{}
	}
	return Operation{
		Kind:           OpRemoveFromSet,
		ItemID:         itemID,
		SetName:        setName,
		Element:        element,
		ObservedAddIDs: observedAddIDs,
	}
}

type itemPayload struct {
	ItemID string `json:"item_id"`
}

type setFieldPayload struct {
	ItemID string `json:"item_id"`
	Field  string `json:"field"`
	Value  Value  `json:"value"`
}

type addToSetPayload struct {
	ItemID  string `json:"item_id"`
	SetName string `json:"set_name"`
	Element Value  `json:"element"`
}

type removeFromSetPayload struct {
	ItemID         string      `json:"item_id"`
	SetName        string      `json:"set_name"`
	Element        Value       `json:"element"`
	ObservedAddIDs []uuid.UUID `json:"observed_add_ids"`
}

func (o Operation) MarshalJSON() ([]byte, error) {
	var payload any
	switch o.Kind {
	case OpAddItem, OpRemoveItem:
		payload = itemPayload{ItemID: o.ItemID}
	case OpSetField:
		payload = setFieldPayload{ItemID: o.ItemID, Field: o.Field, Value: o.Value}
	case OpAddToSet:
		payload = addToSetPayload{ItemID: o.ItemID, SetName: o.SetName, Element: o.Element}
	case OpRemoveFromSet:
		payload = removeFromSetPayload{
			ItemID:         o.ItemID,
			SetName:        o.SetName,
			Element:        o.Element,
			ObservedAddIDs: o.ObservedAddIDs,
		}
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidOperation, o.Kind)
	}
	return json.Marshal(map[string]any{string(o.Kind): payload})
}

func (o *Operation) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}
	if len(raw) != 1 {
		return fmt.Errorf("%w: operation needs exactly one variant tag", ErrInvalidOperation)
	}
	for tag, body := range raw {
		switch OpKind(tag) {
		case OpAddItem, OpRemoveItem:
			var p itemPayload
			if err := json.Unmarshal(body, &p); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidOperation, err)
			}
			*o = Operation{Kind: OpKind(tag), ItemID: p.ItemID}
		case OpSetField:
			var p setFieldPayload
			if err := json.Unmarshal(body, &p); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidOperation, err)
			}
			*o = SetField(p.ItemID, p.Field, p.Value)
		case OpAddToSet:
			var p addToSetPayload
			if err := json.Unmarshal(body, &p); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidOperation, err)
			}
			*o = AddToSet(p.ItemID, p.SetName, p.Element)
		case OpRemoveFromSet:
			var p removeFromSetPayload
			if err := json.Unmarshal(body, &p); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidOperation, err)
			}
			*o = RemoveFromSet(p.ItemID, p.SetName, p.Element, p.ObservedAddIDs)
		default:
			return fmt.Errorf("%w: unknown variant %q", ErrInvalidOperation, tag)
		}
	}
	return nil
}

// Record wraps an operation with its identity and causal context for
// storage and transmission.
type Record struct {
	ID     uuid.UUID `json:"id"`
	Author string    `json:"author"`
	Seq    uint64    `json:"seq"`
	// Timestamp is wall-clock unix milliseconds, used only for
	// latest-wins tiebreaking.
	Timestamp int64             `json:"timestamp"`
	Horizon   map[string]uint64 `json:"horizon"`
	Op        Operation         `json:"op"`
}

// HadSeen reports whether this record's author had observed other when the
// record was created.
func (r Record) HadSeen(other Record) bool {
	return r.Horizon[other.Author] >= other.Seq
}

// LaterThan orders records for latest-wins resolution: timestamp first,
// author as the tiebreaker.
func (r Record) LaterThan(other Record) bool {
	if r.Timestamp != other.Timestamp {
		return r.Timestamp > other.Timestamp
	}
	return r.Author > other.Author
}

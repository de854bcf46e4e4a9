/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package flow

import (
	"github.com/josephgoksu/gantry/graph"
	"github.com/josephgoksu/gantry/models"
)

// Field and set names used on the operation stream. Relation targets live
// in one set per relation type, named "relations.<TYPE>".
const (
	FieldTitle       = "title"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldDuration    = "duration"
	FieldUserComment = "userComment"
	FieldAutoComment = "autoComment"
	FieldOcclude     = "occlude"

	SetTags        = "tags"
	SetCharts      = "charts"
	SetConstraints = "timeConstraints"
)

// RelationSet returns the set name holding one relation type's targets.
func RelationSet(rt models.RelationType) string {
	return "relations." + string(rt)
}

// MigrateItem expands one item into the operation sequence that recreates
// it: AddItem first, one SetField per populated scalar, then one AddToSet
// per chart, tag, relation target and time constraint. Scalars left at
// their zero value are omitted; replaying the sequence on an empty
// document yields the item's defaults for them.
func MigrateItem(item models.Item) []Operation {
	ops := []Operation{
		AddItem(item.ID),
		SetField(item.ID, FieldTitle, StringValue(item.Title)),
		SetField(item.ID, FieldStatus, StringValue(item.Status.String())),
		SetField(item.ID, FieldPriority, StringValue(item.Priority.String())),
		SetField(item.ID, FieldDuration, StringValue(item.Duration.String())),
	}
	if item.UserComment != "" {
		ops = append(ops, SetField(item.ID, FieldUserComment, StringValue(item.UserComment)))
	}
	if item.AutoComment != "" {
		ops = append(ops, SetField(item.ID, FieldAutoComment, StringValue(item.AutoComment)))
	}
	if item.Occlude {
		ops = append(ops, SetField(item.ID, FieldOcclude, BoolValue(true)))
	}

	for _, chart := range item.Charts {
		ops = append(ops, AddToSet(item.ID, SetCharts, StringValue(chart)))
	}
	for _, tag := range item.Tags {
		ops = append(ops, AddToSet(item.ID, SetTags, StringValue(tag)))
	}
	for _, rt := range models.AllRelationTypes {
		for _, target := range item.Relations[rt] {
			ops = append(ops, AddToSet(item.ID, RelationSet(rt), StringValue(target)))
		}
	}
	for _, tc := range item.TimeConstraints {
		ops = append(ops, AddToSet(item.ID, SetConstraints, StringValue(tc.String())))
	}
	return ops
}

// MigrateGraph expands every item of the graph in dependency order, so
// replaying the stream creates prerequisites before their dependents.
func MigrateGraph(g *graph.Graph) ([]Operation, error) {
	sorted, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}
	var ops []Operation
	for _, item := range sorted {
		ops = append(ops, MigrateItem(item)...)
	}
	return ops, nil
}

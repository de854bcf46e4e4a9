/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Status is an item's lifecycle state.
type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusInProgress Status = "InProgress"
	StatusBlocked    Status = "Blocked"
	StatusCompleted  Status = "Completed"
)

var statusSymbols = map[Status]string{
	StatusNotStarted: "○",
	StatusInProgress: "◑",
	StatusBlocked:    "⊘",
	StatusCompleted:  "●",
}

// AllStatuses lists statuses in lifecycle order.
var AllStatuses = []Status{StatusNotStarted, StatusInProgress, StatusBlocked, StatusCompleted}

// Symbol returns the one-rune marker used in the text format.
func (s Status) Symbol() string { return statusSymbols[s] }

func (s Status) String() string { return string(s) }

// StatusFromSymbol resolves a text-format marker to its status.
func StatusFromSymbol(sym string) (Status, bool) {
	for st, symbol := range statusSymbols {
		if symbol == sym {
			return st, true
		}
	}
	return "", false
}

// ParseStatus accepts a status name (case-insensitive) or its symbol.
func ParseStatus(s string) (Status, error) {
	if st, ok := StatusFromSymbol(s); ok {
		return st, nil
	}
	for _, st := range AllStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", parseErr(ErrUnknownSymbol, s, "unknown status")
}

// Priority is an item's ordered urgency level.
type Priority int

const (
	PriorityLowest Priority = iota
	PriorityLow
	PriorityNeutral
	PriorityUnsure
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

var priorityNames = map[Priority]string{
	PriorityLowest:   "Lowest",
	PriorityLow:      "Low",
	PriorityNeutral:  "Neutral",
	PriorityUnsure:   "Unsure",
	PriorityMedium:   "Medium",
	PriorityHigh:     "High",
	PriorityCritical: "Critical",
}

var prioritySymbols = map[Priority]string{
	PriorityLowest:   ",,,",
	PriorityLow:      "...",
	PriorityNeutral:  "",
	PriorityUnsure:   "?",
	PriorityMedium:   "!",
	PriorityHigh:     "!!",
	PriorityCritical: "!!!",
}

// prioritySuffixes is ordered longest-first so that "!!!" is never read as
// "!!" followed by "!".
var prioritySuffixes = []Priority{
	PriorityCritical, PriorityHigh, PriorityMedium,
	PriorityUnsure, PriorityLow, PriorityLowest,
}

func (p Priority) String() string { return priorityNames[p] }

// Symbol returns the text-format suffix, empty for Neutral.
func (p Priority) Symbol() string { return prioritySymbols[p] }

// ParsePriority accepts a priority name (case-insensitive) or its symbol.
func ParsePriority(s string) (Priority, error) {
	for _, p := range prioritySuffixes {
		if prioritySymbols[p] == s {
			return p, nil
		}
	}
	for p, name := range priorityNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}
	return PriorityNeutral, parseErr(ErrUnknownSymbol, s, "unknown priority")
}

// splitPriority separates an id token from its trailing priority symbol.
func splitPriority(token string) (string, Priority) {
	for _, p := range prioritySuffixes {
		if sym := prioritySymbols[p]; strings.HasSuffix(token, sym) {
			return strings.TrimSuffix(token, sym), p
		}
	}
	return token, PriorityNeutral
}

// RelationType names a directed edge class between items.
type RelationType string

const (
	RelRequires     RelationType = "REQUIRES"
	RelAnyOf        RelationType = "ANYOF"
	RelSupercharges RelationType = "SUPERCHARGES"
	RelIndicates    RelationType = "INDICATES"
	RelTogether     RelationType = "TOGETHER"
	RelConflicts    RelationType = "CONFLICTS"
	RelBlocks       RelationType = "BLOCKS"
	RelSufficient   RelationType = "SUFFICIENT"
)

// AllRelationTypes is the canonical serialization order.
var AllRelationTypes = []RelationType{
	RelRequires, RelAnyOf, RelSupercharges, RelIndicates,
	RelTogether, RelConflicts, RelBlocks, RelSufficient,
}

var relationSymbols = map[RelationType]string{
	RelRequires:     "⊢",
	RelAnyOf:        "⋲",
	RelSupercharges: "≫",
	RelIndicates:    "∴",
	RelTogether:     "∪",
	RelConflicts:    "⊟",
	RelBlocks:       "►",
	RelSufficient:   "≻",
}

// relationInverses pairs each directed relation with its reverse reading.
// SUPERCHARGES, INDICATES, TOGETHER and CONFLICTS have no inverse.
var relationInverses = map[RelationType]RelationType{
	RelRequires:   RelBlocks,
	RelBlocks:     RelRequires,
	RelAnyOf:      RelSufficient,
	RelSufficient: RelAnyOf,
}

func (r RelationType) String() string { return string(r) }

// Symbol returns the one-rune marker used in the text format.
func (r RelationType) Symbol() string { return relationSymbols[r] }

// Inverse returns the semantic inverse relation, if the type has one.
func (r RelationType) Inverse() (RelationType, bool) {
	inv, ok := relationInverses[r]
	return inv, ok
}

// RelationFromSymbol resolves a text-format marker to its relation type.
func RelationFromSymbol(sym string) (RelationType, bool) {
	for r, symbol := range relationSymbols {
		if symbol == sym {
			return r, true
		}
	}
	return "", false
}

// ParseRelationType accepts a relation name (case-insensitive) or its symbol.
func ParseRelationType(s string) (RelationType, error) {
	if r, ok := RelationFromSymbol(s); ok {
		return r, nil
	}
	for _, r := range AllRelationTypes {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", parseErr(ErrUnknownSymbol, s, "unknown relation type")
}

var validate *validator.Validate

var itemIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

func init() {
	validate = validator.New()
	// ids are lowercase/digits/underscore so they survive the line grammar
	_ = validate.RegisterValidation("itemid", func(fl validator.FieldLevel) bool {
		return itemIDPattern.MatchString(fl.Field().String())
	})
}

// ValidateStruct runs validator tags on any model value.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidItemID reports whether id fits the identifier charset.
func ValidItemID(id string) bool { return itemIDPattern.MatchString(id) }

// Item is one node in the dependency graph. Items are treated as immutable
// values: the With*/Add*/Remove* helpers return modified deep copies and
// never touch the receiver.
type Item struct {
	ID              string `validate:"required,itemid"`
	Title           string
	Status          Status
	Priority        Priority
	Duration        Duration
	Charts          []string
	Tags            []string
	Relations       map[RelationType][]string
	TimeConstraints []TimeConstraint
	UserComment     string
	AutoComment     string
	Occlude         bool
}

// NewItem builds a validated item with the given identity and defaults
// (NotStarted, Neutral, 1d).
func NewItem(id, title string) (Item, error) {
	item := Item{
		ID:       id,
		Title:    title,
		Status:   StatusNotStarted,
		Priority: PriorityNeutral,
		Duration: MustDuration("1d"),
	}
	if err := ValidateStruct(item); err != nil {
		return Item{}, fmt.Errorf("invalid item %q: %w", id, err)
	}
	return item, nil
}

// Clone returns a deep copy sharing no slices or maps with the receiver.
func (it Item) Clone() Item {
	out := it
	out.Duration = it.Duration.clone()
	out.Charts = cloneStrings(it.Charts)
	out.Tags = cloneStrings(it.Tags)
	if it.Relations != nil {
		out.Relations = make(map[RelationType][]string, len(it.Relations))
		for rt, targets := range it.Relations {
			out.Relations[rt] = cloneStrings(targets)
		}
	}
	if it.TimeConstraints != nil {
		out.TimeConstraints = make([]TimeConstraint, len(it.TimeConstraints))
		copy(out.TimeConstraints, it.TimeConstraints)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// WithStatus returns a copy with the status replaced.
func (it Item) WithStatus(s Status) Item {
	out := it.Clone()
	out.Status = s
	return out
}

// WithPriority returns a copy with the priority replaced.
func (it Item) WithPriority(p Priority) Item {
	out := it.Clone()
	out.Priority = p
	return out
}

// WithTitle returns a copy with the title replaced.
func (it Item) WithTitle(title string) Item {
	out := it.Clone()
	out.Title = title
	return out
}

// WithDuration returns a copy with the duration replaced.
func (it Item) WithDuration(d Duration) Item {
	out := it.Clone()
	out.Duration = d.clone()
	return out
}

// WithOcclude returns a copy with the occlusion flag replaced.
func (it Item) WithOcclude(occlude bool) Item {
	out := it.Clone()
	out.Occlude = occlude
	return out
}

// WithUserComment returns a copy with the user comment replaced.
func (it Item) WithUserComment(comment string) Item {
	out := it.Clone()
	out.UserComment = comment
	return out
}

// WithAutoComment returns a copy with the auto comment replaced.
func (it Item) WithAutoComment(comment string) Item {
	out := it.Clone()
	out.AutoComment = comment
	return out
}

// WithRelation returns a copy with the target list for one relation type
// replaced wholesale. An empty list removes the relation entry.
func (it Item) WithRelation(rt RelationType, targets []string) Item {
	out := it.Clone()
	if out.Relations == nil {
		out.Relations = make(map[RelationType][]string)
	}
	if len(targets) == 0 {
		delete(out.Relations, rt)
	} else {
		out.Relations[rt] = cloneStrings(targets)
	}
	return out
}

// AddRelationTarget returns a copy with target appended to the relation's
// list, if not already present.
func (it Item) AddRelationTarget(rt RelationType, target string) Item {
	for _, t := range it.Relations[rt] {
		if t == target {
			return it.Clone()
		}
	}
	out := it.Clone()
	if out.Relations == nil {
		out.Relations = make(map[RelationType][]string)
	}
	out.Relations[rt] = append(out.Relations[rt], target)
	return out
}

// RemoveRelationTarget returns a copy with target removed from the
// relation's list; the entry disappears when its list empties.
func (it Item) RemoveRelationTarget(rt RelationType, target string) Item {
	out := it.Clone()
	targets := out.Relations[rt]
	kept := targets[:0]
	for _, t := range targets {
		if t != target {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(out.Relations, rt)
	} else {
		out.Relations[rt] = kept
	}
	return out
}

// RelationTargets returns a copy of the target list for one relation type.
func (it Item) RelationTargets(rt RelationType) []string {
	return cloneStrings(it.Relations[rt])
}

// HasRelationTarget reports whether the relation lists the given target.
func (it Item) HasRelationTarget(rt RelationType, target string) bool {
	for _, t := range it.Relations[rt] {
		if t == target {
			return true
		}
	}
	return false
}

// AddTag returns a copy with the tag appended, if not already present.
func (it Item) AddTag(tag string) Item {
	out := it.Clone()
	for _, t := range out.Tags {
		if t == tag {
			return out
		}
	}
	out.Tags = append(out.Tags, tag)
	return out
}

// RemoveTag returns a copy with the tag removed.
func (it Item) RemoveTag(tag string) Item {
	out := it.Clone()
	kept := out.Tags[:0]
	for _, t := range out.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	out.Tags = kept
	return out
}

// HasTag reports whether the item carries the tag.
func (it Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the item carries at least one of the tags.
func (it Item) HasAnyTag(tags []string) bool {
	for _, tag := range tags {
		if it.HasTag(tag) {
			return true
		}
	}
	return false
}

// AddChart returns a copy with the chart appended, if not already present.
func (it Item) AddChart(chart string) Item {
	out := it.Clone()
	for _, c := range out.Charts {
		if c == chart {
			return out
		}
	}
	out.Charts = append(out.Charts, chart)
	return out
}

// RemoveChart returns a copy with the chart removed.
func (it Item) RemoveChart(chart string) Item {
	out := it.Clone()
	kept := out.Charts[:0]
	for _, c := range out.Charts {
		if c != chart {
			kept = append(kept, c)
		}
	}
	out.Charts = kept
	return out
}

// HasChart reports whether the item belongs to the chart.
func (it Item) HasChart(chart string) bool {
	for _, c := range it.Charts {
		if c == chart {
			return true
		}
	}
	return false
}

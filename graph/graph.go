/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/

// Package graph holds the in-memory dependency graph: an id-keyed index of
// items with cycle-checked mutation, deterministic topological ordering and
// health diagnostics. The REQUIRES and ANYOF edge set must stay acyclic;
// every mutation that could break that is checked here before callers
// persist, and rolled back when it would.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/josephgoksu/gantry/models"
)

// dependencyRelations are the edge types that order the graph.
var dependencyRelations = []models.RelationType{models.RelRequires, models.RelAnyOf}

// Graph is an id-keyed collection of items. It is not safe for concurrent
// use; callers serialize access per workspace.
type Graph struct {
	items map[string]models.Item
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{items: make(map[string]models.Item)}
}

// Add inserts or overwrites an item by id.
func (g *Graph) Add(item models.Item) {
	g.items[item.ID] = item
}

// AddNew inserts an item, rejecting ids already present.
func (g *Graph) AddNew(item models.Item) error {
	if _, exists := g.items[item.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
	}
	g.items[item.ID] = item
	return nil
}

// VetNewItem checks a prospective id and title against every existing item.
// Beyond exact id duplication it rejects an id that occurs inside another
// item's title and a title contained in another item's title, since either
// would make substring lookup ambiguous.
func (g *Graph) VetNewItem(id, title string) error {
	lowID := strings.ToLower(id)
	lowTitle := strings.ToLower(title)
	for _, existingID := range g.IDs() {
		existing := g.items[existingID]
		if existing.ID == id {
			return fmt.Errorf("%w: %s (existing item: %s - %s)",
				ErrDuplicateID, id, existing.ID, existing.Title)
		}
		existingTitle := strings.ToLower(existing.Title)
		if strings.Contains(existingTitle, lowID) {
			return fmt.Errorf("%w: id %q occurs in title of %s - %s",
				ErrTitleCollision, id, existing.ID, existing.Title)
		}
		if lowTitle != "" && strings.Contains(existingTitle, lowTitle) {
			return fmt.Errorf("%w: title %q occurs in title of %s - %s",
				ErrTitleCollision, title, existing.ID, existing.Title)
		}
	}
	return nil
}

// Get returns the item with the exact id.
func (g *Graph) Get(id string) (models.Item, bool) {
	item, ok := g.items[id]
	return item, ok
}

// Remove deletes an item by id, returning the removed item.
func (g *Graph) Remove(id string) (models.Item, bool) {
	item, ok := g.items[id]
	if ok {
		delete(g.items, id)
	}
	return item, ok
}

// Len returns the number of items, both partitions included.
func (g *Graph) Len() int { return len(g.items) }

// IDs returns all item ids in ascending order.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.items))
	for id := range g.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Items returns all items ordered by id.
func (g *Graph) Items() []models.Item {
	items := make([]models.Item, 0, len(g.items))
	for _, id := range g.IDs() {
		items = append(items, g.items[id])
	}
	return items
}

// Included returns the items not occluded, ordered by id.
func (g *Graph) Included() []models.Item {
	return g.filter(func(it models.Item) bool { return !it.Occlude })
}

// Occluded returns the occluded items, ordered by id.
func (g *Graph) Occluded() []models.Item {
	return g.filter(func(it models.Item) bool { return it.Occlude })
}

func (g *Graph) filter(match func(models.Item) bool) []models.Item {
	var out []models.Item
	for _, id := range g.IDs() {
		if item := g.items[id]; match(item) {
			out = append(out, item)
		}
	}
	return out
}

// FlipOcclusion moves items between the active and occluded partitions.
// Items are selected by id or by tag, but only out of the partition
// opposite to toOccluded; ids that match nothing there are returned as
// missing. The flipped copies are returned in id order. With dryRun set
// the selection and return value are identical but the graph is left
// untouched, so previews show exactly what a live run would do.
func (g *Graph) FlipOcclusion(ids, tags []string, toOccluded, dryRun bool) (affected []models.Item, missing []string) {
	selected := make(map[string]bool)
	for _, id := range ids {
		item, ok := g.items[id]
		if !ok || item.Occlude == toOccluded {
			missing = append(missing, id)
			continue
		}
		selected[id] = true
	}
	if len(tags) > 0 {
		for id, item := range g.items {
			if item.Occlude == toOccluded || selected[id] {
				continue
			}
			if item.HasAnyTag(tags) {
				selected[id] = true
			}
		}
	}

	for _, id := range g.IDs() {
		if !selected[id] {
			continue
		}
		flipped := g.items[id].WithOcclude(toOccluded)
		if !dryRun {
			g.items[id] = flipped
		}
		affected = append(affected, flipped)
	}
	return affected, missing
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	out := New()
	for id, item := range g.items {
		out.items[id] = item.Clone()
	}
	return out
}

// Merge copies every item of other into g, overwriting ids already present.
// Later-loaded files win, which is what include resolution relies on.
func (g *Graph) Merge(other *Graph) {
	for id, item := range other.items {
		g.items[id] = item.Clone()
	}
}

// FindBySubstring resolves a query to one item: an exact id match wins,
// otherwise the first item (in id order) whose id or title contains the
// query case-insensitively.
func (g *Graph) FindBySubstring(query string) (models.Item, error) {
	if item, ok := g.items[query]; ok {
		return item, nil
	}
	needle := strings.ToLower(query)
	for _, id := range g.IDs() {
		item := g.items[id]
		if strings.Contains(strings.ToLower(item.ID), needle) ||
			strings.Contains(strings.ToLower(item.Title), needle) {
			return item, nil
		}
	}
	return models.Item{}, &NotFoundError{Query: query}
}

// dependencyTargets lists an item's REQUIRES and ANYOF targets that exist
// in the graph. Targets pointing at missing items are ignored here; the
// doctor reports them as dangling references.
func (g *Graph) dependencyTargets(item models.Item) []string {
	var targets []string
	for _, rel := range dependencyRelations {
		for _, target := range item.Relations[rel] {
			if _, ok := g.items[target]; ok {
				targets = append(targets, target)
			}
		}
	}
	return targets
}

// VerifyAcyclic checks the REQUIRES/ANYOF subgraph and returns a CycleError
// naming the first cycle found, or nil.
func (g *Graph) VerifyAcyclic() error {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current path
		black = 2 // fully explored
	)
	color := make(map[string]int, len(g.items))
	var stack []string

	var visit func(id string) *CycleError
	visit = func(id string) *CycleError {
		color[id] = gray
		stack = append(stack, id)
		for _, target := range g.dependencyTargets(g.items[id]) {
			switch color[target] {
			case gray:
				// slice the current path from the repeated node on
				start := 0
				for i, node := range stack {
					if node == target {
						start = i
						break
					}
				}
				members := append(append([]string{}, stack[start:]...), target)
				return &CycleError{Members: members}
			case white:
				if cycle := visit(target); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return nil
	}

	for _, id := range g.IDs() {
		if color[id] == white {
			if cycle := visit(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// TopologicalSort returns every item ordered so that each REQUIRES/ANYOF
// target precedes its dependents. Within that constraint the order is fully
// deterministic: ascending dependency depth, then id.
func (g *Graph) TopologicalSort() ([]models.Item, error) {
	if err := g.VerifyAcyclic(); err != nil {
		return nil, err
	}

	depths := make(map[string]int, len(g.items))
	var depthOf func(id string) int
	depthOf = func(id string) int {
		if d, ok := depths[id]; ok {
			return d
		}
		depths[id] = 0 // settle before recursing; the graph is acyclic here
		max := 0
		for _, target := range g.dependencyTargets(g.items[id]) {
			if d := depthOf(target) + 1; d > max {
				max = d
			}
		}
		depths[id] = max
		return max
	}

	items := g.Items()
	sort.SliceStable(items, func(i, j int) bool {
		di, dj := depthOf(items[i].ID), depthOf(items[j].ID)
		if di != dj {
			return di < dj
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// InsertBetween adds newItem into the dependency chain between two existing
// items: newItem depends on afterID, and beforeID depends on newItem. When
// beforeID depended on afterID directly, that link is rewired through the
// new item; the BLOCKS inverses are kept in step. The whole change is
// rolled back if it would introduce a cycle.
func (g *Graph) InsertBetween(newItem models.Item, beforeID, afterID string) error {
	before, ok := g.items[beforeID]
	if !ok {
		return &NotFoundError{Query: beforeID}
	}
	after, ok := g.items[afterID]
	if !ok {
		return &NotFoundError{Query: afterID}
	}
	if _, exists := g.items[newItem.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, newItem.ID)
	}

	inserted := newItem.
		WithRelation(models.RelRequires, []string{afterID}).
		WithRelation(models.RelBlocks, []string{beforeID})

	rewired := before
	if rewired.HasRelationTarget(models.RelRequires, afterID) {
		rewired = rewired.RemoveRelationTarget(models.RelRequires, afterID)
	}
	rewired = rewired.AddRelationTarget(models.RelRequires, inserted.ID)

	rewiredAfter := after
	if rewiredAfter.HasRelationTarget(models.RelBlocks, beforeID) {
		rewiredAfter = rewiredAfter.RemoveRelationTarget(models.RelBlocks, beforeID)
	}
	rewiredAfter = rewiredAfter.AddRelationTarget(models.RelBlocks, inserted.ID)

	g.items[inserted.ID] = inserted
	g.items[beforeID] = rewired
	g.items[afterID] = rewiredAfter

	if err := g.VerifyAcyclic(); err != nil {
		delete(g.items, inserted.ID)
		g.items[beforeID] = before
		g.items[afterID] = after
		return err
	}
	return nil
}

// InboundReferences maps each item that points at id to the relation types
// doing so.
func (g *Graph) InboundReferences(id string) map[string][]models.RelationType {
	refs := make(map[string][]models.RelationType)
	for _, otherID := range g.IDs() {
		if otherID == id {
			continue
		}
		other := g.items[otherID]
		for _, rel := range models.AllRelationTypes {
			if other.HasRelationTarget(rel, id) {
				refs[otherID] = append(refs[otherID], rel)
			}
		}
	}
	return refs
}

// ScrubReferences removes every relation target pointing at id from all
// other items and returns the ids that were modified, in order.
func (g *Graph) ScrubReferences(id string) []string {
	var modified []string
	for _, otherID := range g.IDs() {
		if otherID == id {
			continue
		}
		other := g.items[otherID]
		changed := false
		for _, rel := range models.AllRelationTypes {
			if other.HasRelationTarget(rel, id) {
				other = other.RemoveRelationTarget(rel, id)
				changed = true
			}
		}
		if changed {
			g.items[otherID] = other
			modified = append(modified, otherID)
		}
	}
	return modified
}

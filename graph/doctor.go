/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/josephgoksu/gantry/models"
)

// IssueType classifies a graph health finding.
type IssueType string

const (
	// DanglingReference is a relation target that does not exist.
	DanglingReference IssueType = "dangling_reference"
	// IncompleteChain is a REQUIRES/BLOCKS or ANYOF/SUFFICIENT pair whose
	// inverse side is missing.
	IncompleteChain IssueType = "incomplete_chain"
)

// AllIssueTypes lists the checks the doctor knows how to run and fix.
var AllIssueTypes = []IssueType{DanglingReference, IncompleteChain}

// ParseIssueType resolves a user-supplied issue type name.
func ParseIssueType(s string) (IssueType, error) {
	for _, t := range AllIssueTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid issue type %q", s)
}

// Issue is one finding, with enough structure to apply its fix directly.
type Issue struct {
	Type         IssueType
	ItemID       string
	Message      string
	RelatedIDs   []string
	SuggestedFix string

	fix relationFix
}

// relationFix is the concrete mutation that resolves an issue: add or
// remove one relation target on one item.
type relationFix struct {
	itemID string
	rel    models.RelationType
	target string
	add    bool
}

// Doctor inspects a graph for consistency problems and can repair the ones
// it reports.
type Doctor struct {
	graph  *Graph
	issues []Issue
	fixed  []Issue
}

// NewDoctor wraps a graph for diagnosis. Fixes mutate the wrapped graph;
// persisting them is the caller's job.
func NewDoctor(g *Graph) *Doctor {
	return &Doctor{graph: g}
}

// QuickCheck runs only the reference check and returns the issue count.
func (d *Doctor) QuickCheck() int {
	d.issues = nil
	d.checkReferences()
	return len(d.issues)
}

// FullDiagnosis runs every check and returns the findings.
func (d *Doctor) FullDiagnosis() []Issue {
	d.issues = nil
	d.checkReferences()
	d.checkChains()
	return d.issues
}

// Issues returns the findings from the last check.
func (d *Doctor) Issues() []Issue { return d.issues }

// IssuesByType filters the last findings by type.
func (d *Doctor) IssuesByType(t IssueType) []Issue {
	var out []Issue
	for _, issue := range d.issues {
		if issue.Type == t {
			out = append(out, issue)
		}
	}
	return out
}

// FixedIssues returns everything repaired so far.
func (d *Doctor) FixedIssues() []Issue { return d.fixed }

// Fix repairs current issues, optionally narrowed by type and/or item id
// (empty values match everything). Fixed issues move from Issues to
// FixedIssues; the repaired graph still needs saving by the caller.
func (d *Doctor) Fix(issueType IssueType, itemID string) []Issue {
	var fixed []Issue
	var remaining []Issue
	for _, issue := range d.issues {
		if issueType != "" && issue.Type != issueType {
			remaining = append(remaining, issue)
			continue
		}
		if itemID != "" && issue.ItemID != itemID {
			remaining = append(remaining, issue)
			continue
		}
		if d.applyFix(issue.fix) {
			fixed = append(fixed, issue)
		} else {
			remaining = append(remaining, issue)
		}
	}
	d.issues = remaining
	d.fixed = append(d.fixed, fixed...)
	return fixed
}

func (d *Doctor) applyFix(fix relationFix) bool {
	item, ok := d.graph.Get(fix.itemID)
	if !ok {
		return false
	}
	if fix.add {
		if item.HasRelationTarget(fix.rel, fix.target) {
			return false
		}
		d.graph.Add(item.AddRelationTarget(fix.rel, fix.target))
		return true
	}
	if !item.HasRelationTarget(fix.rel, fix.target) {
		return false
	}
	d.graph.Add(item.RemoveRelationTarget(fix.rel, fix.target))
	return true
}

// checkReferences reports relation targets that point at missing items.
func (d *Doctor) checkReferences() {
	for _, item := range d.graph.Items() {
		for _, rel := range models.AllRelationTypes {
			for _, target := range item.Relations[rel] {
				if _, ok := d.graph.Get(target); ok {
					continue
				}
				relName := strings.ToLower(string(rel))
				d.issues = append(d.issues, Issue{
					Type:       DanglingReference,
					ItemID:     item.ID,
					Message:    fmt.Sprintf("references non-existent item '%s' in %s relation", target, relName),
					RelatedIDs: []string{target},
					SuggestedFix: fmt.Sprintf("gantry modify %s --remove-relation %s:%s",
						item.ID, relName, target),
					fix: relationFix{itemID: item.ID, rel: rel, target: target},
				})
			}
		}
	}
}

// checkChains reports one-sided REQUIRES/BLOCKS and ANYOF/SUFFICIENT pairs.
// The fix adds the missing inverse on the other item.
func (d *Doctor) checkChains() {
	d.checkInversePairs(models.RelBlocks, models.RelRequires,
		"blocks '%s' but isn't required by it")
	d.checkInversePairs(models.RelRequires, models.RelBlocks,
		"requires '%s' but isn't blocked by it")
	d.checkInversePairs(models.RelSufficient, models.RelAnyOf,
		"is sufficient for '%s' but doesn't have an any-of relation with it")
	d.checkInversePairs(models.RelAnyOf, models.RelSufficient,
		"has an any-of relation with '%s' but isn't sufficient for it")
}

func (d *Doctor) checkInversePairs(rel, inverse models.RelationType, format string) {
	for _, item := range d.graph.Items() {
		for _, target := range item.Relations[rel] {
			other, ok := d.graph.Get(target)
			if !ok || other.HasRelationTarget(inverse, item.ID) {
				continue
			}
			d.issues = append(d.issues, Issue{
				Type:       IncompleteChain,
				ItemID:     item.ID,
				Message:    fmt.Sprintf("item "+format, target),
				RelatedIDs: []string{target},
				SuggestedFix: fmt.Sprintf("gantry modify %s --add-relation %s:%s",
					target, strings.ToLower(string(inverse)), item.ID),
				fix: relationFix{itemID: target, rel: inverse, target: item.ID, add: true},
			})
		}
	}
}

// SortIssues orders findings by item id then message for stable output.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].ItemID != issues[j].ItemID {
			return issues[i].ItemID < issues[j].ItemID
		}
		return issues[i].Message < issues[j].Message
	})
}

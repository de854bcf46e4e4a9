/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// LogEntry is one timestamped journal line. Entries are immutable values;
// occlusion produces a replacement entry with the flag flipped.
type LogEntry struct {
	Session   string
	Timestamp time.Time
	Message   string
	Tags      []string
	Metadata  map[string]string
	Occlude   bool
}

// Field names are alphabetical so marshalled lines match the historical
// sorted-key output.
type logEntryJSON struct {
	Message   string            `json:"m"`
	Meta      map[string]string `json:"meta,omitempty"`
	Session   string            `json:"s"`
	Timestamp string            `json:"t"`
	Tags      []string          `json:"tags"`
}

// NewLogEntry stamps a new entry with the current UTC time.
func NewLogEntry(session, message string, tags []string) LogEntry {
	return LogEntry{
		Session:   session,
		Timestamp: time.Now().UTC(),
		Message:   message,
		Tags:      cloneStrings(tags),
	}
}

// ParseLogEntry parses one JSONL line. The required keys are "s", "t", "m"
// and "tags"; "meta" is optional. The occlude flag records which file the
// line came from.
func ParseLogEntry(line string, occlude bool) (LogEntry, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return LogEntry{}, fmt.Errorf("invalid log line: %w", err)
	}
	for _, key := range []string{"s", "t", "m", "tags"} {
		if _, ok := raw[key]; !ok {
			return LogEntry{}, fmt.Errorf("invalid log line: missing key %q", key)
		}
	}
	var decoded logEntryJSON
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		return LogEntry{}, fmt.Errorf("invalid log line: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, decoded.Timestamp)
	if err != nil {
		return LogEntry{}, fmt.Errorf("invalid log timestamp %q: %w", decoded.Timestamp, err)
	}
	return LogEntry{
		Session:   decoded.Session,
		Timestamp: ts.UTC(),
		Message:   decoded.Message,
		Tags:      decoded.Tags,
		Metadata:  decoded.Meta,
		Occlude:   occlude,
	}, nil
}

// Line renders the JSONL form. The occlude flag is not written; it only
// dictates which file the line is saved to.
func (e LogEntry) Line() string {
	tags := cloneStrings(e.Tags)
	if tags == nil {
		tags = []string{}
	}
	sort.Strings(tags)
	out, _ := json.Marshal(logEntryJSON{
		Message:   e.Message,
		Meta:      e.Metadata,
		Session:   e.Session,
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
		Tags:      tags,
	})
	return string(out)
}

// WithOcclude returns a copy with the occlusion flag replaced.
func (e LogEntry) WithOcclude(occlude bool) LogEntry {
	out := e
	out.Tags = cloneStrings(e.Tags)
	if e.Metadata != nil {
		out.Metadata = make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			out.Metadata[k] = v
		}
	}
	out.Occlude = occlude
	return out
}

// HasTag reports whether the entry carries the tag.
func (e LogEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the entry carries at least one of the tags.
func (e LogEntry) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if e.HasTag(t) {
			return true
		}
	}
	return false
}

// HasAllTags reports whether the entry carries every one of the tags.
func (e LogEntry) HasAllTags(tags []string) bool {
	for _, t := range tags {
		if !e.HasTag(t) {
			return false
		}
	}
	return true
}

// LogCollection keeps entries ordered by timestamp and answers the common
// queries over them.
type LogCollection struct {
	entries []LogEntry
}

// NewLogCollection builds a collection from any entry order.
func NewLogCollection(entries ...LogEntry) *LogCollection {
	c := &LogCollection{entries: append([]LogEntry(nil), entries...)}
	c.sort()
	return c
}

func (c *LogCollection) sort() {
	sort.SliceStable(c.entries, func(i, j int) bool {
		return c.entries[i].Timestamp.Before(c.entries[j].Timestamp)
	})
}

// Add inserts one entry at its timestamp position.
func (c *LogCollection) Add(entry LogEntry) {
	idx := sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].Timestamp.After(entry.Timestamp)
	})
	c.entries = append(c.entries, LogEntry{})
	copy(c.entries[idx+1:], c.entries[idx:])
	c.entries[idx] = entry
}

// AddAll appends many entries and restores timestamp order.
func (c *LogCollection) AddAll(entries []LogEntry) {
	c.entries = append(c.entries, entries...)
	c.sort()
}

// Len returns the number of entries, both partitions included.
func (c *LogCollection) Len() int { return len(c.entries) }

// Entries returns a copy of all entries in timestamp order.
func (c *LogCollection) Entries() []LogEntry {
	return append([]LogEntry(nil), c.entries...)
}

// Included returns the entries not occluded.
func (c *LogCollection) Included() []LogEntry {
	return c.filter(func(e LogEntry) bool { return !e.Occlude })
}

// Occluded returns the occluded entries.
func (c *LogCollection) Occluded() []LogEntry {
	return c.filter(func(e LogEntry) bool { return e.Occlude })
}

// BySession returns entries with the given session tag.
func (c *LogCollection) BySession(session string) []LogEntry {
	return c.filter(func(e LogEntry) bool { return e.Session == session })
}

// ByTags returns entries matching the tags; all of them when requireAll is
// set, any of them otherwise.
func (c *LogCollection) ByTags(tags []string, requireAll bool) []LogEntry {
	if requireAll {
		return c.filter(func(e LogEntry) bool { return e.HasAllTags(tags) })
	}
	return c.filter(func(e LogEntry) bool { return e.HasAnyTag(tags) })
}

// ByDateRange returns entries with start <= timestamp <= end. A zero end
// means now.
func (c *LogCollection) ByDateRange(start, end time.Time) []LogEntry {
	if end.IsZero() {
		end = time.Now().UTC()
	}
	return c.filter(func(e LogEntry) bool {
		return !e.Timestamp.Before(start) && !e.Timestamp.After(end)
	})
}

// BySubstring returns entries whose message contains the query,
// case-insensitively.
func (c *LogCollection) BySubstring(query string) []LogEntry {
	query = strings.ToLower(query)
	return c.filter(func(e LogEntry) bool {
		return strings.Contains(strings.ToLower(e.Message), query)
	})
}

func (c *LogCollection) filter(match func(LogEntry) bool) []LogEntry {
	var out []LogEntry
	for _, e := range c.entries {
		if match(e) {
			out = append(out, e)
		}
	}
	return out
}

// flipWhere moves matching entries into the given partition by replacing
// them with flipped copies. Candidates are drawn only from the opposite
// partition. In dry-run mode nothing is replaced; the returned entries are
// the same either way so previews match live runs.
func (c *LogCollection) flipWhere(toOccluded bool, match func(LogEntry) bool, dryRun bool) []LogEntry {
	var affected []LogEntry
	for i, e := range c.entries {
		if e.Occlude == toOccluded || !match(e) {
			continue
		}
		flipped := e.WithOcclude(toOccluded)
		if !dryRun {
			c.entries[i] = flipped
		}
		affected = append(affected, flipped)
	}
	return affected
}

// FlipOcclusion moves entries between the active and occluded partitions.
// Entries are selected by session or by tag, drawn only from the partition
// opposite to toOccluded. The flipped copies are returned in timestamp
// order; with dryRun set the collection is left untouched.
func (c *LogCollection) FlipOcclusion(sessions, tags []string, toOccluded, dryRun bool) []LogEntry {
	wanted := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		wanted[s] = true
	}
	return c.flipWhere(toOccluded, func(e LogEntry) bool {
		return wanted[e.Session] || e.HasAnyTag(tags)
	}, dryRun)
}

// OccludeBySession occludes included entries with the given session.
func (c *LogCollection) OccludeBySession(session string, dryRun bool) []LogEntry {
	return c.flipWhere(true, func(e LogEntry) bool { return e.Session == session }, dryRun)
}

// OccludeByTags occludes included entries carrying any of the tags.
func (c *LogCollection) OccludeByTags(tags []string, dryRun bool) []LogEntry {
	return c.flipWhere(true, func(e LogEntry) bool { return e.HasAnyTag(tags) }, dryRun)
}

// OccludeByDateRange occludes included entries inside the range.
func (c *LogCollection) OccludeByDateRange(start, end time.Time, dryRun bool) []LogEntry {
	if end.IsZero() {
		end = time.Now().UTC()
	}
	return c.flipWhere(true, func(e LogEntry) bool {
		return !e.Timestamp.Before(start) && !e.Timestamp.After(end)
	}, dryRun)
}

// IncludeBySession restores occluded entries with the given session.
func (c *LogCollection) IncludeBySession(session string, dryRun bool) []LogEntry {
	return c.flipWhere(false, func(e LogEntry) bool { return e.Session == session }, dryRun)
}

// IncludeByTags restores occluded entries carrying any of the tags.
func (c *LogCollection) IncludeByTags(tags []string, dryRun bool) []LogEntry {
	return c.flipWhere(false, func(e LogEntry) bool { return e.HasAnyTag(tags) }, dryRun)
}

// IncludeByDateRange restores occluded entries inside the range.
func (c *LogCollection) IncludeByDateRange(start, end time.Time, dryRun bool) []LogEntry {
	if end.IsZero() {
		end = time.Now().UTC()
	}
	return c.flipWhere(false, func(e LogEntry) bool {
		return !e.Timestamp.Before(start) && !e.Timestamp.After(end)
	}, dryRun)
}

// OcclusionAnalysis summarizes occlusion candidates for previews.
type OcclusionAnalysis struct {
	Total     int
	BySession map[string]int
	ByTag     map[string]int
}

// AnalyzeLogCandidates aggregates candidate counts by session and tag
// without touching the collection.
func AnalyzeLogCandidates(entries []LogEntry) OcclusionAnalysis {
	analysis := OcclusionAnalysis{
		Total:     len(entries),
		BySession: make(map[string]int),
		ByTag:     make(map[string]int),
	}
	for _, e := range entries {
		analysis.BySession[e.Session]++
		for _, t := range e.Tags {
			analysis.ByTag[t]++
		}
	}
	return analysis
}

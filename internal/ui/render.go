package ui

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/gantry/models"
)

// ItemTable renders items as a fixed-width table, one row per item, in the
// order given. Callers pass topologically sorted items so the table reads
// top to bottom as "do this first".
func ItemTable(items []models.Item) string {
	table := Table{
		Headers:  []string{" ", "ID", "Priority", "Duration", "Title", "Tags"},
		MaxWidth: 40,
	}
	for _, item := range items {
		table.Rows = append(table.Rows, []string{
			item.Status.Symbol(),
			item.ID,
			item.Priority.String(),
			item.Duration.String(),
			item.Title,
			strings.Join(item.Tags, ","),
		})
	}
	return table.Render()
}

// ItemDetail renders every field of one item as label/value lines.
func ItemDetail(item models.Item) string {
	var sb strings.Builder
	field := func(label, value string) {
		sb.WriteString(StyleLabel.Render(label+":") + " " + value + "\n")
	}

	field("Title", StyleTitle.Render(item.Title))
	field("ID", item.ID)
	field("Status", StatusBadge(item.Status))
	field("Priority", PriorityStyle(item.Priority).Render(item.Priority.String()))
	field("Duration", item.Duration.String())
	field("Charts", joinOrNone(item.Charts))
	field("Tags", joinOrNone(item.Tags))

	if len(item.TimeConstraints) > 0 {
		var parts []string
		for _, tc := range item.TimeConstraints {
			parts = append(parts, tc.String())
		}
		field("Time Constraints", strings.Join(parts, ", "))
	}

	var relations []string
	for _, rt := range models.AllRelationTypes {
		if targets := item.Relations[rt]; len(targets) > 0 {
			relations = append(relations,
				fmt.Sprintf("    %s %s: %s", rt.Symbol(), rt, strings.Join(targets, ", ")))
		}
	}
	if len(relations) > 0 {
		sb.WriteString(StyleLabel.Render("Relations:") + "\n")
		sb.WriteString(strings.Join(relations, "\n") + "\n")
	}

	if item.UserComment != "" {
		field("Comment", item.UserComment)
	}
	if item.AutoComment != "" {
		field("Auto Comment", StyleSubtle.Render(item.AutoComment))
	}
	if item.Occlude {
		field("Occluded", StyleWarning.Render("yes"))
	}
	return sb.String()
}

// LogLines renders log entries one per line, timestamp first. Timestamps are
// shown in UTC, matching what the log files store.
func LogLines(entries []models.LogEntry) string {
	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(LogLine(entry) + "\n")
	}
	return sb.String()
}

// LogLine renders a single log entry.
func LogLine(entry models.LogEntry) string {
	line := StyleSubtle.Render(entry.Timestamp.UTC().Format("2006-01-02 15:04:05")) +
		"  " + StylePrimary.Render(entry.Session) +
		"  " + entry.Message
	if len(entry.Tags) > 0 {
		line += "  " + StyleSubtle.Render("("+strings.Join(entry.Tags, ", ")+")")
	}
	return line
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return StyleSubtle.Render("None")
	}
	return strings.Join(values, ", ")
}

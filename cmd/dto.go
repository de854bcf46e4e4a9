package cmd

import (
	"time"

	"github.com/josephgoksu/gantry/models"
)

type itemResponse struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Status          string              `json:"status"`
	Priority        string              `json:"priority"`
	Duration        string              `json:"duration"`
	Charts          []string            `json:"charts,omitempty"`
	Tags            []string            `json:"tags,omitempty"`
	Relations       map[string][]string `json:"relations,omitempty"`
	TimeConstraints []string            `json:"timeConstraints,omitempty"`
	UserComment     string              `json:"userComment,omitempty"`
	AutoComment     string              `json:"autoComment,omitempty"`
	Occluded        bool                `json:"occluded,omitempty"`
}

func newItemResponse(item models.Item) itemResponse {
	resp := itemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Status:      item.Status.String(),
		Priority:    item.Priority.String(),
		Duration:    item.Duration.String(),
		Charts:      item.Charts,
		Tags:        item.Tags,
		UserComment: item.UserComment,
		AutoComment: item.AutoComment,
		Occluded:    item.Occlude,
	}
	if len(item.Relations) > 0 {
		resp.Relations = make(map[string][]string, len(item.Relations))
		for rt, targets := range item.Relations {
			resp.Relations[rt.String()] = targets
		}
	}
	for _, tc := range item.TimeConstraints {
		resp.TimeConstraints = append(resp.TimeConstraints, tc.String())
	}
	return resp
}

func newItemResponses(items []models.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newItemResponse(item))
	}
	return out
}

type logEntryResponse struct {
	Session   string            `json:"session"`
	Timestamp string            `json:"timestamp"`
	Message   string            `json:"message"`
	Tags      []string          `json:"tags,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Occluded  bool              `json:"occluded,omitempty"`
}

func newLogEntryResponse(entry models.LogEntry) logEntryResponse {
	return logEntryResponse{
		Session:   entry.Session,
		Timestamp: entry.Timestamp.UTC().Format(time.RFC3339Nano),
		Message:   entry.Message,
		Tags:      entry.Tags,
		Metadata:  entry.Metadata,
		Occluded:  entry.Occlude,
	}
}

func newLogEntryResponses(entries []models.LogEntry) []logEntryResponse {
	out := make([]logEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, newLogEntryResponse(entry))
	}
	return out
}

type occludedResponse struct {
	Status   string   `json:"status"`
	Affected []string `json:"affected"`
	Missing  []string `json:"missing,omitempty"`
	DryRun   bool     `json:"dryRun,omitempty"`
}

type issueResponse struct {
	Type         string   `json:"type"`
	ItemID       string   `json:"itemId"`
	Message      string   `json:"message"`
	RelatedIDs   []string `json:"relatedIds,omitempty"`
	SuggestedFix string   `json:"suggestedFix,omitempty"`
}

package models

import "log/slog"

// SourceIssue is the issue being transferred. Empty Title or Body are treated as absent.
type SourceIssue struct {
	NodeID string `json:"nodeId"`
	Number int    `json:"number,omitempty"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body,omitempty"`
	Author string `json:"author"`
}

// TriggerLabel is the label whose application triggered the run.
type TriggerLabel struct {
	Name string `json:"name"`
}

// Event is the context resolved from a triggering event.
type Event struct {
	Repository *SourceRepository
	Issue      *SourceIssue
	Label      *TriggerLabel
}

// LogValue omits the issue title and body; the workflow logs a truncated body at debug level.
func (e *Event) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 4)
	if e.Repository != nil {
		attrs = append(attrs, slog.String("repository", e.Repository.FullName()))
	}
	if e.Issue != nil {
		attrs = append(attrs, slog.String("issue", e.Issue.NodeID), slog.String("author", e.Issue.Author))
	}
	if e.Label != nil {
		attrs = append(attrs, slog.String("label", e.Label.Name))
	}
	return slog.GroupValue(attrs...)
}

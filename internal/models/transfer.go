package models

import "strconv"

// DefaultLabelColor is applied when a label spec carries no color.
const DefaultLabelColor = "e327ae"

// TransferResult is the identity of the issue in the target repository.
type TransferResult struct {
	NewIssueNumber int    `json:"newIssueNumber"`
	NewIssueURL    string `json:"newIssueUrl"`
}

// StubIssue is the placeholder left behind in the source repository.
type StubIssue struct {
	Number int `json:"number"`
}

// Label is a repository label.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Outputs are the values a run exposes to its caller. Zero values were never produced.
type Outputs struct {
	NewIssueNumber  int    `json:"new_issue_number,omitempty"`
	NewIssueURL     string `json:"new_issue_url,omitempty"`
	DestinationRepo string `json:"destination_repo,omitempty"`
	StubIssueNumber int    `json:"stub_issue_number,omitempty"`
}

// Map returns the outputs that were set, keyed by output name.
func (o Outputs) Map() map[string]string {
	m := make(map[string]string, 4)
	if o.NewIssueNumber != 0 {
		m["new_issue_number"] = strconv.Itoa(o.NewIssueNumber)
	}
	if o.NewIssueURL != "" {
		m["new_issue_url"] = o.NewIssueURL
	}
	if o.DestinationRepo != "" {
		m["destination_repo"] = o.DestinationRepo
	}
	if o.StubIssueNumber != 0 {
		m["stub_issue_number"] = strconv.Itoa(o.StubIssueNumber)
	}
	return m
}

package runtime

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/isometry/gh-transfer-issue/internal/transfer"
	"github.com/sethvargo/go-githubactions"
)

// Present reports an outcome to the Actions runner and returns the error that must fail the job.
// Outputs produced before a failure are still written.
func Present(action *githubactions.Action, outcome *transfer.Outcome) error {
	outputs := outcome.Outputs.Map()
	for _, k := range slices.Sorted(maps.Keys(outputs)) {
		action.SetOutput(k, outputs[k])
	}

	switch outcome.Status {
	case transfer.StatusSkipped:
		action.Noticef("%s", outcome.Notice)
		return nil
	case transfer.StatusTransferred:
		action.AddStepSummary(StepSummary(outcome))
		return nil
	}
	action.Errorf("%s", outcome.Err)
	return outcome.Err
}

// StepSummary renders a transferred outcome as the job summary markdown.
func StepSummary(outcome *transfer.Outcome) string {
	var b strings.Builder
	b.WriteString("### Issue transferred\n\n")
	b.WriteString("| | |\n|---|---|\n")
	if e := outcome.Event; e != nil && e.Repository != nil && e.Issue != nil {
		source := e.Repository.FullName()
		if e.Issue.Number != 0 {
			source = fmt.Sprintf("%s#%d", source, e.Issue.Number)
		}
		fmt.Fprintf(&b, "| Source | %s |\n", source)
	}
	if t, r := outcome.Target, outcome.Result; t != nil && r != nil {
		fmt.Fprintf(&b, "| Destination | [%s#%d](%s) |\n", t.FullName(), r.NewIssueNumber, r.NewIssueURL)
	}
	if outcome.Stub != nil {
		fmt.Fprintf(&b, "| Stub | #%d (closed, locked) |\n", outcome.Stub.Number)
	}
	if outcome.Label != nil {
		fmt.Fprintf(&b, "| Label | `%s` |\n", outcome.Label.Name)
	}
	return b.String()
}

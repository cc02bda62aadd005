package transfer

import (
	"fmt"
	"regexp"
)

// ShouldTransfer reports whether an issue body passes the body pattern.
// An empty body or an empty pattern always passes; an invalid pattern never does.
func ShouldTransfer(body, pattern string) (bool, error) {
	if pattern == "" {
		return shouldTransfer(body, nil), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, err
	}
	return shouldTransfer(body, re), nil
}

func shouldTransfer(body string, re *regexp.Regexp) bool {
	return body == "" || re == nil || re.MatchString(body)
}

func skipNotice(pattern string) string {
	return fmt.Sprintf(`Issue not transferred because body doesn't match "%s"`, pattern)
}

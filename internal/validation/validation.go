// Package validation holds pure input validators shared by the HTTP
// handlers. Nothing here touches the store or performs I/O.
package validation

import (
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Password checks the password policy. The returned message is safe to
// show to the user when ok is false.
func Password(s string) (ok bool, message string) {
	if len(s) < 6 {
		return false, "Password must be at least 6 characters long"
	}
	return true, ""
}

// BoardTitle reports whether s is a usable board title: non-blank after
// trimming and at most 100 characters.
func BoardTitle(s string) bool {
	return strings.TrimSpace(s) != "" && len(s) <= 100
}

// TaskTitle reports whether s is a usable task title: non-blank after
// trimming and at most 200 characters.
func TaskTitle(s string) bool {
	return strings.TrimSpace(s) != "" && len(s) <= 200
}

// dueDateLayouts are the accepted due-date forms, tried in order.
var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
}

// DueDate reports whether s is an acceptable due date. The field is
// optional, so the empty string is valid; otherwise s must parse as a
// real calendar date.
func DueDate(s string) bool {
	if s == "" {
		return true
	}
	for _, layout := range dueDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

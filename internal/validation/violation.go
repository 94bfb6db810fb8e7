package validation

import "strings"

// Violation ties a human readable message to the request field that caused it.
// Field uses the JSON path of the request, e.g. "addresses[1].street".
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is the result of validating a request; empty means valid.
type Violations []Violation

// Error implements error so a rejected request can flow through the usual error returns.
func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, violation := range v {
		parts = append(parts, violation.Field+": "+violation.Message)
	}
	return strings.Join(parts, "; ")
}

// Valid reports whether no rule failed.
func (v Violations) Valid() bool {
	return len(v) == 0
}

// For returns the messages reported for a field path, in rule order.
func (v Violations) For(field string) []string {
	var messages []string
	for _, violation := range v {
		if violation.Field == field {
			messages = append(messages, violation.Message)
		}
	}
	return messages
}

// Err returns v as an error, or nil when there is nothing to report.
func (v Violations) Err() error {
	if v.Valid() {
		return nil
	}
	return v
}

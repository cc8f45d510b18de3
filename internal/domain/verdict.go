package domain

import "fmt"

// RuleID identifies the rule that produced a violation
type RuleID string

// Violation is a single rule hit reported back to the submitter
type Violation struct {
	RuleID  RuleID `json:"rule"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.RuleID, v.Message)
}

// SanitizationVerdict is the immutable outcome of scanning submitted code.
// SanitizedCode is non-nil iff Accepted.
type SanitizationVerdict struct {
	Accepted      bool
	Violations    []Violation
	SanitizedCode *string
}

// FieldVerdict is the immutable outcome of validating title and description
type FieldVerdict struct {
	Accepted              bool
	Violations            []Violation
	NormalizedTitle       string
	NormalizedDescription *string
}

// Messages flattens violations into their human readable messages
func Messages(violations []Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Message)
	}
	return out
}

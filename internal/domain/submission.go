package domain

import (
	"time"
)

// Submission represents an untrusted game submission. It is transient and
// never persisted as-is.
type Submission struct {
	Title           string
	Description     *string
	RawCode         string
	CreatorIdentity *string
	SubmittedAt     time.Time
}

// NewSubmission creates a new submission stamped with the current time
func NewSubmission(title string, description *string, rawCode string, creator *string) *Submission {
	return &Submission{
		Title:           title,
		Description:     description,
		RawCode:         rawCode,
		CreatorIdentity: creator,
		SubmittedAt:     time.Now(),
	}
}

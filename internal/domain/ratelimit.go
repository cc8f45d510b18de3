package domain

import "time"

// RateLimitEntry records the last admitted submission for a source
type RateLimitEntry struct {
	SourceKey          string    `json:"sourceKey"`
	LastSubmissionTime time.Time `json:"lastSubmissionTime"`
}

package config

import (
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Port         int
	ServiceName  string
	MaxBodyBytes int64
}

func NewHTTPConfig(v *viper.Viper) *HTTPConfig {
	return &HTTPConfig{
		Port:         v.GetInt("HTTP_PORT"),
		ServiceName:  v.GetString("SERVICE_NAME"),
		MaxBodyBytes: v.GetInt64("MAX_BODY_BYTES"),
	}
}

type SubmissionConfig struct {
	RateWindow        time.Duration
	CompactThreshold  int
	CompactAge        time.Duration
	RatingDebounce    time.Duration
	ReconcileInterval time.Duration
	ReconcileGrace    time.Duration
}

func NewSubmissionConfig(v *viper.Viper) *SubmissionConfig {
	return &SubmissionConfig{
		RateWindow:        v.GetDuration("SUBMISSION_RATE_WINDOW"),
		CompactThreshold:  v.GetInt("SUBMISSION_COMPACT_THRESHOLD"),
		CompactAge:        v.GetDuration("SUBMISSION_COMPACT_AGE"),
		RatingDebounce:    v.GetDuration("RATING_DEBOUNCE"),
		ReconcileInterval: v.GetDuration("RECONCILE_INTERVAL"),
		ReconcileGrace:    v.GetDuration("RECONCILE_GRACE"),
	}
}

// DefaultSubmissionConfig mirrors the reader defaults
func DefaultSubmissionConfig() *SubmissionConfig {
	return &SubmissionConfig{
		RateWindow:        60 * time.Second,
		CompactThreshold:  100,
		CompactAge:        300 * time.Second,
		RatingDebounce:    5 * time.Second,
		ReconcileInterval: 10 * time.Minute,
		ReconcileGrace:    time.Hour,
	}
}

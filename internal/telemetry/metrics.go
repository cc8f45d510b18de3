package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"gitlab.com/clawgames.net/internal/domain"
)

const instrumentationName = "gitlab.com/clawgames.net/submission"

// Outcome labels
const (
	OutcomeAdmitted     = "admitted"
	OutcomeInvalid      = "invalid"
	OutcomeViolation    = "violation"
	OutcomeThrottled    = "throttled"
	OutcomeUnauthorized = "unauthorized"
	OutcomeFailed       = "failed"
	OutcomeDebounced    = "debounced"
	OutcomeNotFound     = "not_found"
	OutcomeRecorded     = "recorded"
)

// Metrics counts admission outcomes. A nil *Metrics records nothing.
type Metrics struct {
	submissions metric.Int64Counter
	violations  metric.Int64Counter
	ratings     metric.Int64Counter
	orphans     metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	submissions, err := meter.Int64Counter("clawgames.submissions",
		metric.WithDescription("Game submissions by admission outcome"))
	if err != nil {
		return nil, err
	}
	violations, err := meter.Int64Counter("clawgames.scanner.violations",
		metric.WithDescription("Denylist rule matches in rejected submissions"))
	if err != nil {
		return nil, err
	}
	ratings, err := meter.Int64Counter("clawgames.ratings",
		metric.WithDescription("Rating submissions by outcome"))
	if err != nil {
		return nil, err
	}
	orphans, err := meter.Int64Counter("clawgames.artifacts.orphans_removed",
		metric.WithDescription("Stored artifacts removed because no record references them"))
	if err != nil {
		return nil, err
	}
	return &Metrics{
		submissions: submissions,
		violations:  violations,
		ratings:     ratings,
		orphans:     orphans,
	}, nil
}

// NewGlobalMetrics uses the globally installed meter provider
func NewGlobalMetrics() (*Metrics, error) {
	return NewMetrics(otel.Meter(instrumentationName))
}

func (m *Metrics) RecordSubmission(ctx context.Context, path string, outcome string) {
	if m == nil {
		return
	}
	m.submissions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("path", path),
		attribute.String("outcome", outcome),
	))
}

func (m *Metrics) RecordViolations(ctx context.Context, violations []domain.Violation) {
	if m == nil {
		return
	}
	for _, v := range violations {
		m.violations.Add(ctx, 1, metric.WithAttributes(attribute.String("rule", string(v.RuleID))))
	}
}

func (m *Metrics) RecordRating(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.ratings.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *Metrics) RecordOrphansRemoved(ctx context.Context, n int) {
	if m == nil || n == 0 {
		return
	}
	m.orphans.Add(ctx, int64(n))
}

package submission

import (
	"context"
	"errors"
	"time"

	"github.com/weatherops/weather-automation-api/internal/models"
)

type Submitter interface {
	Submit(ctx context.Context, identity models.UserIdentity, data models.SubmissionData) (Result, error)
}

type metricsCollector interface {
	ObserveLatency(operation string, duration time.Duration)
	IncrementCounter(metric string, labels ...string)
}

// MetricsDecorator counts submission outcomes and observes latency.
type MetricsDecorator struct {
	next      Submitter
	collector metricsCollector
}

func NewMetricsDecorator(next Submitter, collector metricsCollector) *MetricsDecorator {
	return &MetricsDecorator{next: next, collector: collector}
}

func (m *MetricsDecorator) Submit(ctx context.Context, identity models.UserIdentity, data models.SubmissionData) (Result, error) {
	start := time.Now()
	result, err := m.next.Submit(ctx, identity, data)
	m.collector.ObserveLatency("submission", time.Since(start))

	m.collector.IncrementCounter("submissions", outcomeLabel(result, err))

	return result, err
}

func outcomeLabel(result Result, err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return string(result.Status)
	case errors.Is(err, ErrAuthenticationRequired):
		return "unauthenticated"
	case errors.As(err, &verr):
		return "invalid"
	default:
		return "fatal"
	}
}

package weather

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/weatherops/weather-automation-api/internal/models"
)

type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped client
}

func NewBreakerClient(name string, wrapped client,
	interval, timeout time.Duration, repeatNumber uint32,
) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= repeatNumber
		},
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerClient) Fetch(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Fetch(ctx, city)
	})
	if err != nil {
		return models.WeatherSnapshot{},
			errors.New(b.name + " unavailable: " + err.Error())
	}
	snapshot, ok := result.(models.WeatherSnapshot)
	if !ok {
		return models.WeatherSnapshot{},
			errors.New(b.name + " returned unexpected result type")
	}
	return snapshot, nil
}

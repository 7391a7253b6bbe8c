package weather

import (
	"context"
	"log"
	"net/http"

	"github.com/weatherops/weather-automation-api/internal/models"
)

type client interface {
	Fetch(ctx context.Context, city string) (models.WeatherSnapshot, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Resolver answers weather lookups and never fails: when the live client is
// missing or errors, the deterministic fallback takes over.
type Resolver struct {
	logger   *log.Logger
	live     client
	fallback *Fallback
}

// NewResolver creates a resolver. live may be nil when no provider key is
// configured; every lookup then uses the fallback.
func NewResolver(logger *log.Logger, live client, fallback *Fallback) *Resolver {
	return &Resolver{logger: logger, live: live, fallback: fallback}
}

func (r *Resolver) GetByCity(ctx context.Context, city string) models.WeatherSnapshot {
	if r.live != nil {
		snapshot, err := r.live.Fetch(ctx, city)
		if err == nil {
			return snapshot
		}
		r.logger.Printf("live weather lookup failed for %q, using fallback: %v", city, err)
	}

	return r.fallback.Snapshot(city)
}

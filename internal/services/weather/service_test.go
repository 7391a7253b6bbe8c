package weather

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/weatherops/weather-automation-api/internal/models"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Fetch(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	args := m.Called(ctx, city)

	snapshot, ok := args.Get(0).(models.WeatherSnapshot)
	if !ok {
		return models.WeatherSnapshot{}, args.Error(1)
	}

	return snapshot, args.Error(1)
}

func TestResolver_GetByCity(t *testing.T) {
	ctx := context.Background()
	discardLogger := log.New(io.Discard, "", 0)
	fallback := NewFallback(func() time.Time { return time.UnixMilli(5) })

	liveSnapshot := models.WeatherSnapshot{
		City: "Lviv", Temperature: 15, Condition: "Sunny",
		AirQuality: "Good", AirQualityIndex: 1,
	}

	t.Run("LiveSuccess", func(t *testing.T) {
		live := &mockClient{}
		live.On("Fetch", mock.Anything, "Lviv").Return(liveSnapshot, nil).Once()

		t.Cleanup(func() {
			live.AssertExpectations(t)
		})

		resolver := NewResolver(discardLogger, live, fallback)

		assert.Equal(t, liveSnapshot, resolver.GetByCity(ctx, "Lviv"))
	})

	t.Run("LiveFailureFallsBack", func(t *testing.T) {
		live := &mockClient{}
		live.On("Fetch", mock.Anything, "Lviv").
			Return(models.WeatherSnapshot{}, errors.New("provider down")).Once()

		t.Cleanup(func() {
			live.AssertExpectations(t)
		})

		resolver := NewResolver(discardLogger, live, fallback)
		got := resolver.GetByCity(ctx, "Lviv")

		assert.Equal(t, fallback.Snapshot("Lviv"), got)
		assert.Equal(t, "Lviv", got.City)
	})

	t.Run("NoLiveClientConfigured", func(t *testing.T) {
		resolver := NewResolver(discardLogger, nil, fallback)
		got := resolver.GetByCity(ctx, "Odesa")

		assert.Equal(t, fallback.Snapshot("Odesa"), got)
	})
}

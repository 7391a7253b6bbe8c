package weather

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherops/weather-automation-api/internal/models"
)

const currentBody = `{
	"location": {"name": "Kyiv"},
	"current": {
		"temp_c": 17.6,
		"condition": {"text": "Partly cloudy"},
		"air_quality": {"us-epa-index": 3}
	}
}`

func TestWeatherAPIClient_Fetch(t *testing.T) {
	discardLogger := log.New(io.Discard, "", 0)

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "kyiv", r.URL.Query().Get("q"))
			assert.Equal(t, "yes", r.URL.Query().Get("aqi"))
			assert.Equal(t, "key123", r.URL.Query().Get("key"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(currentBody))
		}))
		defer server.Close()

		c := NewWeatherAPIClient("key123", server.URL, server.Client(), discardLogger)

		got, err := c.Fetch(context.Background(), "kyiv")
		require.NoError(t, err)

		// Caller-supplied name wins over the provider's canonicalized one.
		assert.Equal(t, models.WeatherSnapshot{
			City:            "kyiv",
			Temperature:     18,
			Condition:       "Partly cloudy",
			AirQuality:      "Unhealthy for Sensitive Groups",
			AirQualityIndex: 3,
		}, got)
	})

	t.Run("OutOfRangeIndexDefaultsToGood", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"location":{"name":"X"},"current":{"temp_c":1,"condition":{"text":"Clear"},"air_quality":{"us-epa-index":9}}}`))
		}))
		defer server.Close()

		c := NewWeatherAPIClient("k", server.URL, server.Client(), discardLogger)

		got, err := c.Fetch(context.Background(), "X")
		require.NoError(t, err)
		assert.Equal(t, 1, got.AirQualityIndex)
		assert.Equal(t, "Good", got.AirQuality)
	})

	t.Run("Non200Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "invalid key", http.StatusUnauthorized)
		}))
		defer server.Close()

		c := NewWeatherAPIClient("bad", server.URL, server.Client(), discardLogger)

		_, err := c.Fetch(context.Background(), "kyiv")
		assert.Error(t, err)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not-json"))
		}))
		defer server.Close()

		c := NewWeatherAPIClient("k", server.URL, server.Client(), discardLogger)

		_, err := c.Fetch(context.Background(), "kyiv")
		assert.Error(t, err)
	})
}

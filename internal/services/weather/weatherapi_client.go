package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"

	"github.com/weatherops/weather-automation-api/internal/models"
)

type currentResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
		AirQuality struct {
			UsEpaIndex int `json:"us-epa-index"`
		} `json:"air_quality"`
	} `json:"current"`
}

type ClientWeatherAPI struct {
	APIKey string
	apiURL string
	client HTTPClient
	logger *log.Logger
}

func NewWeatherAPIClient(apiKey, apiURL string, httpClient HTTPClient, logger *log.Logger) *ClientWeatherAPI {
	return &ClientWeatherAPI{APIKey: apiKey, apiURL: apiURL, client: httpClient, logger: logger}
}

func (s *ClientWeatherAPI) Fetch(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	reqURL := fmt.Sprintf("%s?key=%s&q=%s&aqi=yes", s.apiURL, s.APIKey, url.QueryEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.WeatherSnapshot{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return models.WeatherSnapshot{}, err
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			s.logger.Printf("failed to close response body: %v", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return models.WeatherSnapshot{}, fmt.Errorf("weather API error: status %s", resp.Status)
	}

	var raw currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.WeatherSnapshot{}, err
	}

	if raw.Location.Name != "" && raw.Location.Name != city {
		s.logger.Printf("provider canonicalized %q to %q, keeping caller name", city, raw.Location.Name)
	}

	index := raw.Current.AirQuality.UsEpaIndex
	if index < 1 || index > 6 {
		index = 1
	}

	// The caller-supplied city name stays canonical in the snapshot.
	return models.WeatherSnapshot{
		City:            city,
		Temperature:     int(math.Round(raw.Current.TempC)),
		Condition:       raw.Current.Condition.Text,
		AirQuality:      models.AirQualityLabel(index),
		AirQualityIndex: index,
	}, nil
}

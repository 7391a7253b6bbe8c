package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/weatherops/weather-automation-api/internal/kvstore"
	"github.com/weatherops/weather-automation-api/internal/models"
)

const (
	envelopeSource    = "weather-automation-app"
	envelopeEventType = "weather_data"
)

var (
	ErrNotConfigured = errors.New("webhook URL is not configured")
	ErrInvalidURL    = errors.New("webhook URL must be a valid http or https URL")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Envelope is the fixed-shape payload POSTed to the configured webhook.
type Envelope struct {
	Timestamp string       `json:"timestamp"`
	Source    string       `json:"source"`
	EventType string       `json:"event_type"`
	Data      EnvelopeData `json:"data"`
	Metadata  Metadata     `json:"metadata"`
}

type EnvelopeData struct {
	City            string `json:"city"`
	Temperature     int    `json:"temperature"`
	Condition       string `json:"condition"`
	AirQuality      string `json:"air_quality"`
	AirQualityIndex int    `json:"air_quality_index"`
	ReportTime      string `json:"report_time"`
}

type Metadata struct {
	AppName string `json:"app_name"`
	Version string `json:"version"`
}

// Config is the per-client webhook configuration kept in the kv store.
type Config struct {
	URL        string `json:"url"`
	LastSentAt string `json:"last_sent_at,omitempty"`
}

type Service struct {
	client  HTTPClient
	store   kvstore.Store
	logger  *log.Logger
	appName string
	version string
	now     func() time.Time
}

func NewService(client HTTPClient, store kvstore.Store, logger *log.Logger, appName, version string) *Service {
	return &Service{
		client:  client,
		store:   store,
		logger:  logger,
		appName: appName,
		version: version,
		now:     time.Now,
	}
}

// ValidateURL gates configuration save. It does not gate Send: a URL that was
// valid at save time is used as-is.
func ValidateURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Send POSTs one envelope and reports delivery. Any transport error or
// non-2xx status yields false; there is no retry.
func (s *Service) Send(ctx context.Context, targetURL string, snapshot models.WeatherSnapshot) bool {
	capture := s.now().UTC().Format(time.RFC3339)

	payload, err := json.Marshal(Envelope{
		Timestamp: capture,
		Source:    envelopeSource,
		EventType: envelopeEventType,
		Data: EnvelopeData{
			City:            snapshot.City,
			Temperature:     snapshot.Temperature,
			Condition:       snapshot.Condition,
			AirQuality:      snapshot.AirQuality,
			AirQualityIndex: snapshot.AirQualityIndex,
			ReportTime:      capture,
		},
		Metadata: Metadata{AppName: s.appName, Version: s.version},
	})
	if err != nil {
		s.logger.Printf("failed to marshal webhook envelope: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(payload))
	if err != nil {
		s.logger.Printf("failed to build webhook request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Printf("webhook POST to %s failed: %v", targetURL, err)
		return false
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			s.logger.Printf("failed to close response body: %v", err)
		}
	}(resp.Body)

	return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
}

// SendConfigured delivers a snapshot to the client's saved webhook URL and
// records the send time on success.
func (s *Service) SendConfigured(ctx context.Context, clientID string, snapshot models.WeatherSnapshot) (bool, error) {
	cfg, err := s.GetConfig(ctx, clientID)
	if err != nil {
		return false, err
	}

	delivered := s.Send(ctx, cfg.URL, snapshot)
	if delivered {
		sentAt := s.now().UTC().Format(time.RFC3339)
		if err := s.store.Set(ctx, lastSentKey(clientID), sentAt); err != nil {
			s.logger.Printf("failed to record webhook send time: %v", err)
		}
	}

	return delivered, nil
}

func (s *Service) SaveConfig(ctx context.Context, clientID, rawURL string) error {
	if !ValidateURL(rawURL) {
		return ErrInvalidURL
	}
	return s.store.Set(ctx, urlKey(clientID), rawURL)
}

func (s *Service) GetConfig(ctx context.Context, clientID string) (Config, error) {
	configured, err := s.store.Get(ctx, urlKey(clientID))
	if errors.Is(err, kvstore.ErrNotFound) {
		return Config{}, ErrNotConfigured
	}
	if err != nil {
		return Config{}, err
	}

	cfg := Config{URL: configured}
	if lastSent, err := s.store.Get(ctx, lastSentKey(clientID)); err == nil {
		cfg.LastSentAt = lastSent
	}

	return cfg, nil
}

// ResetConfig clears the URL and the last-sent marker together.
func (s *Service) ResetConfig(ctx context.Context, clientID string) error {
	return s.store.Delete(ctx, urlKey(clientID), lastSentKey(clientID))
}

func urlKey(clientID string) string {
	return fmt.Sprintf("webhook:%s:url", clientID)
}

func lastSentKey(clientID string) string {
	return fmt.Sprintf("webhook:%s:last_sent", clientID)
}

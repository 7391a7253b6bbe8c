package emailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/weatherops/weather-automation-api/internal/config"
)

// ErrMissingAPIKey means the transactional email provider credentials are
// absent from the environment. This is a startup configuration error, not a
// per-request one.
var ErrMissingAPIKey = errors.New("email provider API key is not configured")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResendClient dispatches mail through the Resend HTTP API.
type ResendClient struct {
	apiKey string
	apiURL string
	from   string
	client HTTPClient
	logger *log.Logger
}

func NewResendClient(cfg *config.Config, httpClient HTTPClient, logger *log.Logger) (*ResendClient, error) {
	if cfg.Email.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &ResendClient{
		apiKey: cfg.Email.APIKey,
		apiURL: cfg.Email.APIURL,
		from:   cfg.Email.From,
		client: httpClient,
		logger: logger,
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// Send delivers one message and returns the provider-assigned message id.
func (c *ResendClient) Send(ctx context.Context, to, subject, html string) (string, error) {
	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Printf("email provider call failed: %v", err)
		return "", err
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Printf("failed to close response body: %v", err)
		}
	}(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Printf("email provider rejected message: status %s body %s", resp.Status, body)
		return "", fmt.Errorf("email provider error: status %s", resp.Status)
	}

	var raw sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}

	return raw.ID, nil
}

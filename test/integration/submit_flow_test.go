//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postSubmission(t *testing.T, payload map[string]string, identity bool) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(
		context.Background(),
		http.MethodPost,
		testServerURL+"/api/weather-request",
		bytes.NewReader(body),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if identity {
		req.Header.Set("X-User-ID", "it-user")
		req.Header.Set("X-User-Email", "it-user@example.com")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestSubmitFlow(t *testing.T) {
	require.NoError(t, resetTables(db))

	validPayload := map[string]string{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
		"city":  "Kyiv",
	}

	t.Run("rejects anonymous caller", func(t *testing.T) {
		resp := postSubmission(t, validPayload, false)
		defer func() {
			assert.NoError(t, resp.Body.Close())
		}()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, 0, countRequests(t, "it-user", "Kyiv"))
	})

	t.Run("rejects malformed email with field errors", func(t *testing.T) {
		resp := postSubmission(t, map[string]string{
			"name":  "Ada Lovelace",
			"email": "not-an-email",
			"city":  "Kyiv",
		}, true)
		defer func() {
			assert.NoError(t, resp.Body.Close())
		}()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Please enter a valid email address", body.Errors["email"])
		assert.Equal(t, 0, countRequests(t, "it-user", "Kyiv"))
	})

	t.Run("persists request and dispatches email", func(t *testing.T) {
		resp := postSubmission(t, validPayload, true)
		defer func() {
			assert.NoError(t, resp.Body.Close())
		}()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Status    string `json:"status"`
			RequestID string `json:"request_id"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "success", body.Status)
		assert.NotEmpty(t, body.RequestID)

		assert.Equal(t, 1, countRequests(t, "it-user", "Kyiv"))

		emails := recordedEmails()
		require.Len(t, emails, 1)
		assert.Contains(t, emails[0], "ada@example.com")
		assert.Contains(t, emails[0], "Weather Update for Kyiv")
	})

	t.Run("resubmission stores a second row", func(t *testing.T) {
		resp := postSubmission(t, validPayload, true)
		defer func() {
			assert.NoError(t, resp.Body.Close())
		}()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 2, countRequests(t, "it-user", "Kyiv"))
	})

	t.Run("history lists the caller's requests", func(t *testing.T) {
		req, err := http.NewRequestWithContext(
			context.Background(), http.MethodGet, testServerURL+"/api/weather-requests", nil)
		require.NoError(t, err)
		req.Header.Set("X-User-ID", "it-user")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, resp.Body.Close())
		}()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Requests []struct {
				City string `json:"city"`
			} `json:"requests"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body.Requests, 2)
	})
}

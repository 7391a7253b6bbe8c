package email_test

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/weatherops/weather-automation-api/internal/models"
	"github.com/weatherops/weather-automation-api/internal/services/email"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, to, subject, html string) (string, error) {
	args := m.Called(ctx, to, subject, html)
	return args.String(0), args.Error(1)
}

var snapshot = models.WeatherSnapshot{
	City:            "Kyiv",
	Temperature:     21,
	Condition:       "Partly Cloudy",
	AirQuality:      "Moderate",
	AirQualityIndex: 2,
}

func TestService_SendWeatherUpdate(t *testing.T) {
	discardLogger := log.New(io.Discard, "", 0)

	t.Run("Success", func(t *testing.T) {
		m := &mockSender{}
		m.On("Send",
			mock.Anything,
			"user@example.com",
			"Weather Update for Kyiv",
			mock.MatchedBy(func(body string) bool {
				return strings.Contains(body, "Kyiv") &&
					strings.Contains(body, "21") &&
					strings.Contains(body, "Partly Cloudy") &&
					strings.Contains(body, "Moderate")
			}),
		).Return("msg_42", nil).Once()

		t.Cleanup(func() {
			m.AssertExpectations(t)
		})

		svc := email.NewService(m, "../../../templates", "Asia/Kolkata", discardLogger)
		result := svc.SendWeatherUpdate(context.Background(), "Ada", "user@example.com", "Kyiv", snapshot)

		assert.True(t, result.Success)
		assert.Equal(t, "msg_42", result.ProviderMessageID)
		assert.Empty(t, result.ErrorMessage)
	})

	t.Run("SenderError", func(t *testing.T) {
		m := &mockSender{}
		m.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("provider down")).Once()

		t.Cleanup(func() {
			m.AssertExpectations(t)
		})

		svc := email.NewService(m, "../../../templates", "Asia/Kolkata", discardLogger)
		result := svc.SendWeatherUpdate(context.Background(), "Ada", "user@example.com", "Kyiv", snapshot)

		assert.False(t, result.Success)
		assert.Contains(t, result.ErrorMessage, "provider down")
	})

	t.Run("MissingTemplate", func(t *testing.T) {
		m := &mockSender{}

		t.Cleanup(func() {
			m.AssertNumberOfCalls(t, "Send", 0)
		})

		svc := email.NewService(m, t.TempDir(), "Asia/Kolkata", discardLogger)
		result := svc.SendWeatherUpdate(context.Background(), "Ada", "user@example.com", "Kyiv", snapshot)

		assert.False(t, result.Success)
		assert.NotEmpty(t, result.ErrorMessage)
	})
}

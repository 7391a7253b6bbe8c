package voice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherops/weather-automation-api/internal/models"
	"github.com/weatherops/weather-automation-api/internal/services/voice"
)

type fakeEngine struct {
	spoken []string
}

func (e *fakeEngine) StartListening() error { return nil }
func (e *fakeEngine) StopListening() error  { return nil }
func (e *fakeEngine) StopSpeaking() error   { return nil }

func (e *fakeEngine) Speak(text string) error {
	e.spoken = append(e.spoken, text)
	return nil
}

func TestParseIntent(t *testing.T) {
	cases := []struct {
		transcript string
		want       voice.Intent
	}{
		{"tell me the weather", voice.IntentWeatherQuery},
		{"what's the TEMPERATURE today", voice.IntentWeatherQuery},
		{"weather report please", voice.IntentWeatherQuery},
		{"hello there", voice.IntentGreeting},
		{"hi", voice.IntentGreeting},
		{"play some music", voice.IntentUnknown},
		{"", voice.IntentUnknown},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, voice.ParseIntent(tc.transcript), tc.transcript)
	}
}

func TestAssistant_RespondTo(t *testing.T) {
	snapshot := &models.WeatherSnapshot{
		City: "Kyiv", Temperature: 21, Condition: "Partly Cloudy",
		AirQuality: "Moderate", AirQualityIndex: 2,
	}

	a := voice.NewAssistant(&fakeEngine{})

	t.Run("WeatherQueryWithSnapshot", func(t *testing.T) {
		got := a.RespondTo("weather report", snapshot)
		assert.Contains(t, got, "Kyiv")
		assert.Contains(t, got, "21 degrees")
		assert.Contains(t, got, "Partly Cloudy")
		assert.Contains(t, got, "Moderate")
	})

	t.Run("WeatherQueryWithoutSnapshot", func(t *testing.T) {
		got := a.RespondTo("weather report", nil)
		assert.Contains(t, got, "No weather data available")
	})

	t.Run("Greeting", func(t *testing.T) {
		assert.Contains(t, a.RespondTo("hello", snapshot), "weather assistant")
	})

	t.Run("Unknown", func(t *testing.T) {
		assert.Contains(t, a.RespondTo("sing a song", snapshot), "Try saying")
	})
}

func TestAssistant_HandleCommandSpeaksResponse(t *testing.T) {
	engine := &fakeEngine{}
	a := voice.NewAssistant(engine)

	require.NoError(t, a.HandleCommand("hi", nil))
	require.Len(t, engine.spoken, 1)
	assert.Contains(t, engine.spoken[0], "Hello")
}

package voice

import (
	"fmt"
	"strings"

	"github.com/weatherops/weather-automation-api/internal/models"
)

// Intent is the closed set of recognized voice commands.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentWeatherQuery
	IntentGreeting
)

// Engine is the host speech capability. Implementations live outside the
// core; the assistant only needs these four actions.
type Engine interface {
	StartListening() error
	StopListening() error
	Speak(text string) error
	StopSpeaking() error
}

// ParseIntent maps a transcript to an intent.
func ParseIntent(transcript string) Intent {
	command := strings.ToLower(transcript)

	switch {
	case strings.Contains(command, "weather"),
		strings.Contains(command, "temperature"),
		strings.Contains(command, "report"):
		return IntentWeatherQuery
	case strings.Contains(command, "hello"), strings.Contains(command, "hi"):
		return IntentGreeting
	default:
		return IntentUnknown
	}
}

// Assistant turns transcripts into spoken responses. The response text logic
// is independent of the engine so it stays testable.
type Assistant struct {
	engine Engine
}

func NewAssistant(engine Engine) *Assistant {
	return &Assistant{engine: engine}
}

// RespondTo builds the response text for a transcript. snapshot may be nil
// when no weather has been resolved yet.
func (a *Assistant) RespondTo(transcript string, snapshot *models.WeatherSnapshot) string {
	switch ParseIntent(transcript) {
	case IntentWeatherQuery:
		if snapshot == nil {
			return "No weather data available. Please check a city's weather first."
		}
		return weatherReport(*snapshot)
	case IntentGreeting:
		return "Hello! I'm your weather assistant. Ask me about the weather!"
	default:
		return "I can help you with weather information. Try saying 'tell me the weather' or 'weather report'."
	}
}

// HandleCommand speaks the response for a transcript through the engine.
func (a *Assistant) HandleCommand(transcript string, snapshot *models.WeatherSnapshot) error {
	return a.engine.Speak(a.RespondTo(transcript, snapshot))
}

func weatherReport(s models.WeatherSnapshot) string {
	return fmt.Sprintf(
		"Current weather for %s: Temperature is %d degrees Celsius. Weather condition: %s. Air quality is %s, index %d.",
		s.City, s.Temperature, s.Condition, s.AirQuality, s.AirQualityIndex,
	)
}

package weather

import (
	"strings"
	"time"
	"unicode/utf16"

	"github.com/weatherops/weather-automation-api/internal/models"
)

var fallbackConditions = [...]string{
	"Clear",
	"Partly Cloudy",
	"Cloudy",
	"Light Rain",
	"Heavy Rain",
	"Sunny",
	"Overcast",
	"Foggy",
}

// fallbackAirQuality is indexed 1-based by the derived index.
var fallbackAirQuality = [...]string{
	"Good",
	"Good",
	"Moderate",
	"Moderate",
	"Unhealthy for Sensitive Groups",
	"Unhealthy",
}

// Fallback derives pseudo-weather from the city name when the live provider
// is unavailable. Condition and air quality depend only on the name; the
// temperature carries a small clock-based perturbation.
type Fallback struct {
	now func() time.Time
}

func NewFallback(now func() time.Time) *Fallback {
	if now == nil {
		now = time.Now
	}
	return &Fallback{now: now}
}

func (f *Fallback) Snapshot(city string) models.WeatherSnapshot {
	h := cityHash(strings.ToLower(city))

	temperature := int(abs32(h%30)) + 5 + int(f.now().UnixMilli()%10) - 5
	if temperature < 0 {
		temperature = 0
	}

	index := int(abs32(h%6)) + 1

	return models.WeatherSnapshot{
		City:            city,
		Temperature:     temperature,
		Condition:       fallbackConditions[abs32(h%8)],
		AirQuality:      fallbackAirQuality[index-1],
		AirQualityIndex: index,
	}
}

// cityHash is the classic rolling string hash over UTF-16 code units,
// wrapped to 32 bits. Astral-plane characters hash as surrogate pairs.
func cityHash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(u)
	}
	return h
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

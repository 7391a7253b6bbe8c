package models

// AirQualityLabels maps the 1-6 air quality index reported by the provider
// to a human readable rating. Index 0 is unused.
var AirQualityLabels = [...]string{
	"",
	"Good",
	"Moderate",
	"Unhealthy for Sensitive Groups",
	"Unhealthy",
	"Very Unhealthy",
	"Hazardous",
}

// AirQualityLabel returns the rating for an index, defaulting to Good when
// the index falls outside 1-6.
func AirQualityLabel(index int) string {
	if index < 1 || index >= len(AirQualityLabels) {
		return AirQualityLabels[1]
	}
	return AirQualityLabels[index]
}

// WeatherSnapshot is one immutable weather and air quality reading for a city.
type WeatherSnapshot struct {
	City            string `json:"city"`
	Temperature     int    `json:"temperature"`
	Condition       string `json:"condition"`
	AirQuality      string `json:"air_quality"`
	AirQualityIndex int    `json:"air_quality_index"`
}

package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/weatherops/weather-automation-api/internal/models"
)

type Sender interface {
	Send(ctx context.Context, to, subject, html string) (string, error)
}

// Service renders and dispatches the weather confirmation email. It never
// panics past its boundary; callers always receive a dispatch result.
type Service struct {
	emailer      Sender
	templatesDir string
	location     *time.Location
	logger       *log.Logger
	now          func() time.Time
}

func NewService(emailer Sender, templatesDir, timezone string, logger *log.Logger) *Service {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Printf("unknown timezone %q, report times fall back to UTC: %v", timezone, err)
		location = time.UTC
	}

	return &Service{
		emailer:      emailer,
		templatesDir: templatesDir,
		location:     location,
		logger:       logger,
		now:          time.Now,
	}
}

type updateTemplateData struct {
	Name            string
	City            string
	Temperature     int
	Condition       string
	AirQuality      string
	AirQualityIndex int
	ReportTime      string
}

func (s *Service) SendWeatherUpdate(
	ctx context.Context,
	name, to, city string,
	snapshot models.WeatherSnapshot,
) models.EmailDispatchResult {
	tmpl, err := template.ParseFiles(s.templatesDir + "/weather_update.html")
	if err != nil {
		return failure(err)
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, updateTemplateData{
		Name:            name,
		City:            city,
		Temperature:     snapshot.Temperature,
		Condition:       snapshot.Condition,
		AirQuality:      snapshot.AirQuality,
		AirQualityIndex: snapshot.AirQualityIndex,
		ReportTime:      s.now().In(s.location).Format("January 2, 2006, 3:04 PM"),
	})
	if err != nil {
		return failure(err)
	}

	subject := fmt.Sprintf("Weather Update for %s", city)

	messageID, err := s.emailer.Send(ctx, to, subject, body.String())
	if err != nil {
		s.logger.Printf("weather update email to %s failed: %v", to, err)
		return failure(err)
	}

	return models.EmailDispatchResult{Success: true, ProviderMessageID: messageID}
}

func failure(err error) models.EmailDispatchResult {
	return models.EmailDispatchResult{Success: false, ErrorMessage: err.Error()}
}

package submission

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/weatherops/weather-automation-api/internal/models"
	"github.com/weatherops/weather-automation-api/internal/validation"
)

// Status is the terminal outcome of one submission. Fatal outcomes are
// reported through the error return instead.
type Status string

const (
	// StatusSuccess: record saved and confirmation email delivered.
	StatusSuccess Status = "success"
	// StatusPartialSuccess: record saved but the email dispatch failed.
	StatusPartialSuccess Status = "partial_success"
)

// ErrAuthenticationRequired stops a submission before any side effect when no
// caller identity is present.
var ErrAuthenticationRequired = errors.New("authentication required")

// ValidationError carries per-field messages; it also stops the submission
// before any external call.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "submission validation failed"
}

type weatherResolver interface {
	GetByCity(ctx context.Context, city string) models.WeatherSnapshot
}

type requestRepository interface {
	Create(ctx context.Context, req models.WeatherRequest) (models.WeatherRequest, error)
}

type emailSender interface {
	SendWeatherUpdate(ctx context.Context, name, to, city string, snapshot models.WeatherSnapshot) models.EmailDispatchResult
}

// Result is returned for the two non-fatal terminal outcomes.
type Result struct {
	Status         Status
	Request        models.WeatherRequest
	Snapshot       models.WeatherSnapshot
	EmailMessageID string
	EmailError     string
}

// Service sequences one submission: authentication gate, validation, weather
// resolution, persistence, then email dispatch.
type Service struct {
	resolver weatherResolver
	repo     requestRepository
	email    emailSender
	logger   *log.Logger
}

func NewService(resolver weatherResolver, repo requestRepository, email emailSender, logger *log.Logger) *Service {
	return &Service{
		resolver: resolver,
		repo:     repo,
		email:    email,
		logger:   logger,
	}
}

// Validate checks all fields at once and returns nil when the submission is
// acceptable.
func Validate(data models.SubmissionData) *ValidationError {
	fields := map[string]string{}

	if msg := validation.Name(data.Name); msg != "" {
		fields["name"] = msg
	}
	if msg := validation.Email(data.Email); msg != "" {
		fields["email"] = msg
	}
	if msg := validation.City(data.City); msg != "" {
		fields["city"] = msg
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Submit runs one submission to a terminal outcome. A persistence failure is
// fatal and suppresses the email attempt; an email failure after a successful
// insert keeps the record and reports partial success.
func (s *Service) Submit(ctx context.Context, identity models.UserIdentity, data models.SubmissionData) (Result, error) {
	if identity.ID == "" {
		return Result{}, ErrAuthenticationRequired
	}

	if verr := Validate(data); verr != nil {
		return Result{}, verr
	}

	snapshot := s.resolver.GetByCity(ctx, data.City)

	stored, err := s.repo.Create(ctx, models.WeatherRequest{
		RequesterID: identity.ID,
		Name:        data.Name,
		Email:       data.Email,
		City:        data.City,
		Snapshot:    snapshot,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to save weather request: %w", err)
	}

	dispatch := s.email.SendWeatherUpdate(ctx, data.Name, data.Email, data.City, snapshot)
	if !dispatch.Success {
		// The record stays saved; no rollback on email failure.
		s.logger.Printf("weather request %s saved but email dispatch failed: %s", stored.ID, dispatch.ErrorMessage)
		return Result{
			Status:     StatusPartialSuccess,
			Request:    stored,
			Snapshot:   snapshot,
			EmailError: dispatch.ErrorMessage,
		}, nil
	}

	return Result{
		Status:         StatusSuccess,
		Request:        stored,
		Snapshot:       snapshot,
		EmailMessageID: dispatch.ProviderMessageID,
	}, nil
}

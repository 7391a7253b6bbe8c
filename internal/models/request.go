package models

import "time"

// UserIdentity is the resolved caller identity. Sign-in flows live outside
// this service; handlers only receive the already-authenticated id and email.
type UserIdentity struct {
	ID    string
	Email string
}

// SubmissionData is the form payload for a weather request.
type SubmissionData struct {
	Name  string `json:"name" form:"name" binding:"required"`
	Email string `json:"email" form:"email" binding:"required"`
	City  string `json:"city" form:"city" binding:"required"`
}

// WeatherRequest is a persisted submission together with the snapshot that
// was resolved for it. Rows are append-only.
type WeatherRequest struct {
	ID          string
	RequesterID string
	Name        string
	Email       string
	City        string
	Snapshot    WeatherSnapshot
	CreatedAt   time.Time
}

// EmailDispatchResult reports one attempt to send a confirmation email.
// It is consumed by the orchestrator and never persisted.
type EmailDispatchResult struct {
	Success           bool
	ProviderMessageID string
	ErrorMessage      string
}

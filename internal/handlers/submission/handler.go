package submission

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/weatherops/weather-automation-api/internal/handlers/middleware"
	"github.com/weatherops/weather-automation-api/internal/models"
	"github.com/weatherops/weather-automation-api/internal/services/submission"
)

const timeoutDuration = 10 * time.Second

type requestLister interface {
	ListByRequester(ctx context.Context, requesterID string) ([]models.WeatherRequest, error)
}

type Handler struct {
	Service submission.Submitter
	Lister  requestLister
	logger  *log.Logger
}

func NewHandler(svc submission.Submitter, lister requestLister, logger *log.Logger) *Handler {
	return &Handler{Service: svc, Lister: lister, logger: logger}
}

type submitResponse struct {
	Status     submission.Status      `json:"status"`
	RequestID  string                 `json:"request_id"`
	Snapshot   models.WeatherSnapshot `json:"snapshot"`
	EmailError string                 `json:"email_error,omitempty"`
}

// Submit
// @Summary Submit a weather request
// @Description Validates the submission, resolves weather for the city, persists the request and emails a confirmation.
// @Tags submission
// @Accept json
// @Produce json
// @Param request body models.SubmissionData true "Submission"
// @Success 200 {object} submitResponse
// @Failure 400
// @Failure 401
// @Failure 500
// @Router /weather-request [post]
func (h *Handler) Submit(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	var data models.SubmissionData
	if err := c.ShouldBind(&data); err != nil {
		// A parse failure means the payload never carried the fields; only a
		// binding-validation failure gets translated into field messages.
		var bindErrs validator.ValidationErrors
		if errors.As(err, &bindErrs) {
			if verr := submission.Validate(data); verr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
				return
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	result, err := h.Service.Submit(ctx, identity, data)

	var verr *submission.ValidationError
	switch {
	case errors.Is(err, submission.ErrAuthenticationRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		return
	case err != nil:
		h.logger.Printf("submission failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process your request. Please try again."})
		return
	}

	c.JSON(http.StatusOK, submitResponse{
		Status:     result.Status,
		RequestID:  result.Request.ID,
		Snapshot:   result.Snapshot,
		EmailError: result.EmailError,
	})
}

// History
// @Summary List the caller's weather requests
// @Tags submission
// @Produce json
// @Success 200
// @Failure 500
// @Router /weather-requests [get]
func (h *Handler) History(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	requests, err := h.Lister.ListByRequester(ctx, identity.ID)
	if err != nil {
		h.logger.Printf("failed to list weather requests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": toHistory(requests)})
}

type historyEntry struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	City      string                 `json:"city"`
	Snapshot  models.WeatherSnapshot `json:"snapshot"`
	CreatedAt time.Time              `json:"created_at"`
}

func toHistory(requests []models.WeatherRequest) []historyEntry {
	entries := make([]historyEntry, 0, len(requests))
	for _, req := range requests {
		entries = append(entries, historyEntry{
			ID:        req.ID,
			Name:      req.Name,
			Email:     req.Email,
			City:      req.City,
			Snapshot:  req.Snapshot,
			CreatedAt: req.CreatedAt,
		})
	}
	return entries
}

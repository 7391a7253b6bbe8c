package webhook

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weatherops/weather-automation-api/internal/handlers/middleware"
	"github.com/weatherops/weather-automation-api/internal/models"
	"github.com/weatherops/weather-automation-api/internal/services/webhook"
)

const timeoutDuration = 10 * time.Second

type webhookService interface {
	SaveConfig(ctx context.Context, clientID, rawURL string) error
	GetConfig(ctx context.Context, clientID string) (webhook.Config, error)
	ResetConfig(ctx context.Context, clientID string) error
	SendConfigured(ctx context.Context, clientID string, snapshot models.WeatherSnapshot) (bool, error)
}

type weatherResolver interface {
	GetByCity(ctx context.Context, city string) models.WeatherSnapshot
}

type metricsCollector interface {
	IncrementCounter(metric string, labels ...string)
}

type Handler struct {
	Service   webhookService
	Weather   weatherResolver
	collector metricsCollector
	logger    *log.Logger
}

func NewHandler(svc webhookService, weather weatherResolver, collector metricsCollector, logger *log.Logger) *Handler {
	return &Handler{Service: svc, Weather: weather, collector: collector, logger: logger}
}

type configRequest struct {
	URL string `json:"url" form:"url" binding:"required"`
}

// SaveConfig
// @Summary Save the webhook URL
// @Description Stores the caller's webhook endpoint. Only http and https URLs are accepted.
// @Tags webhook
// @Accept json
// @Param config body configRequest true "Webhook configuration"
// @Success 200
// @Failure 400
// @Router /webhook/config [post]
func (h *Handler) SaveConfig(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	var req configRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a webhook URL"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	if err := h.Service.SaveConfig(ctx, identity.ID, req.URL); err != nil {
		if errors.Is(err, webhook.ErrInvalidURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Printf("failed to save webhook config: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook URL saved successfully"})
}

// GetConfig
// @Summary Read the webhook configuration
// @Tags webhook
// @Produce json
// @Success 200 {object} webhook.Config
// @Failure 404
// @Router /webhook/config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	cfg, err := h.Service.GetConfig(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, webhook.ErrNotConfigured) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Webhook URL is not configured"})
			return
		}
		h.logger.Printf("failed to read webhook config: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// ResetConfig
// @Summary Clear the webhook configuration
// @Description Removes the stored URL and last-sent marker together.
// @Tags webhook
// @Success 200
// @Router /webhook/config [delete]
func (h *Handler) ResetConfig(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	if err := h.Service.ResetConfig(ctx, identity.ID); err != nil {
		h.logger.Printf("failed to reset webhook config: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook configuration has been reset"})
}

type sendRequest struct {
	City string `json:"city" form:"city" binding:"required"`
}

// Send
// @Summary Send a weather snapshot to the configured webhook
// @Description Resolves weather for the city and POSTs the envelope once. No retry on failure.
// @Tags webhook
// @Accept json
// @Produce json
// @Param request body sendRequest true "City to report"
// @Success 200
// @Failure 400
// @Router /webhook/send [post]
func (h *Handler) Send(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	var req sendRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	snapshot := h.Weather.GetByCity(ctx, req.City)

	delivered, err := h.Service.SendConfigured(ctx, identity.ID, snapshot)
	if err != nil {
		if errors.Is(err, webhook.ErrNotConfigured) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please configure a webhook URL first"})
			return
		}
		h.logger.Printf("webhook send failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if delivered {
		h.collector.IncrementCounter("webhook_send", "delivered")
	} else {
		h.collector.IncrementCounter("webhook_send", "failed")
	}

	c.JSON(http.StatusOK, gin.H{"delivered": delivered, "snapshot": snapshot})
}

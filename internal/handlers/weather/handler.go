package weather

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weatherops/weather-automation-api/internal/models"
)

const timeoutDuration = 10 * time.Second

type weatherResolver interface {
	GetByCity(ctx context.Context, city string) models.WeatherSnapshot
}

type Handler struct {
	Service weatherResolver
}

func NewHandler(svc weatherResolver) *Handler {
	return &Handler{Service: svc}
}

// GetWeather
// @Summary Get current weather
// @Description Returns the current weather and air quality for a given city.
// @Tags weather
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} models.WeatherSnapshot
// @Failure 400
// @Router /weather [get]
func (h *Handler) GetWeather(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city query parameter is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	c.JSON(http.StatusOK, h.Service.GetByCity(ctx, city))
}
